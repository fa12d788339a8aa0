package context

import (
	"nexus/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// SetSession stores the caller's session on the echo.Context.
func SetSession(c echo.Context, session *entity.Session) {
	c.Set(string(KeySession), session)
}

// GetSession returns the session resolved by the session middleware, if any.
func GetSession(c echo.Context) (*entity.Session, bool) {
	session, ok := c.Get(string(KeySession)).(*entity.Session)

	return session, ok && session != nil
}
