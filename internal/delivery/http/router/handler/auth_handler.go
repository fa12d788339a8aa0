package handler

import (
	"log/slog"
	"net/http"
	"time"

	"nexus/config"
	deliverycontext "nexus/internal/delivery/context"
	"nexus/internal/delivery/http/response"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/errors"
	"nexus/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	UserUC    usecase.UserUsecase
	SessionUC usecase.SessionUsecase
	Config    *config.Config
	Logger    *slog.Logger
}

// AuthHandler serves signup, login, profile and logout.
type AuthHandler struct {
	userUC    usecase.UserUsecase
	sessionUC usecase.SessionUsecase
	cookie    *config.SessionConfig
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		userUC:    params.UserUC,
		sessionUC: params.SessionUC,
		cookie:    params.Config.Session,
		logger:    params.Logger,
	}
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MeResponse is returned by GET /api/auth/me.
type MeResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Signup handles the user registration request.
func (h *AuthHandler) Signup(c echo.Context) error {
	req, ok, err := bindCredentials(c)
	if !ok {
		return err
	}

	user, err := h.userUC.RegisterUser(c.Request().Context(), &usecase.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newUserResponse(user), "Signup successful!")
}

// Login authenticates the caller and sets the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid request body")
	}

	output, err := h.sessionUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(h.sessionCookie(output.Token, output.Session.ExpiresAt))

	return response.Success(c, http.StatusOK, newUserResponse(output.User), "Login successful!")
}

// Me greets the logged-in caller. Requires SessionMiddleware.RequireSession.
func (h *AuthHandler) Me(c echo.Context) error {
	session, ok := deliverycontext.GetSession(c)
	if !ok {
		return domainerrors.ErrNotLoggedIn
	}

	return response.Success(c, http.StatusOK, MeResponse{
		UserID:   session.UserID.String(),
		Username: session.Username,
	}, "Welcome,"+session.Username)
}

// Logout ends the session. It always succeeds for the caller.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookie.CookieName); err == nil && cookie.Value != "" {
		if err := h.sessionUC.Logout(c.Request().Context(), cookie.Value); err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
				Warn("Failed to invalidate session on logout", slog.Any("error", err))
		}
	}

	c.SetCookie(h.expiredCookie())

	return response.Success(c, http.StatusOK, nil, "Logged out!")
}

func (h *AuthHandler) sessionCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
