package middleware

import (
	"nexus/config"
	deliverycontext "nexus/internal/delivery/context"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/errors"
	"nexus/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionMiddleware resolves the session cookie into a server-side session.
type SessionMiddleware struct {
	sessions   usecase.SessionUsecase
	cookieName string
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(sessions usecase.SessionUsecase, cfg *config.Config) *SessionMiddleware {
	return &SessionMiddleware{
		sessions:   sessions,
		cookieName: cfg.Session.CookieName,
	}
}

// RequireSession rejects the request with ErrNotLoggedIn unless the cookie maps to a live session.
// The session is available to handlers through deliverycontext.GetSession.
func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			return domainerrors.ErrNotLoggedIn
		}

		session, err := m.sessions.CurrentSession(c.Request().Context(), cookie.Value)
		if err != nil {
			return errors.WithStack(err)
		}

		deliverycontext.SetSession(c, session)

		return next(c)
	}
}
