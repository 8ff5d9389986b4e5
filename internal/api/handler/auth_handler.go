package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username"  validate:"required"`
	Password string `json:"password"  validate:"required,min=4"`
	Email    string `json:"email"     validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type validateResponse struct {
	Valid bool         `json:"valid"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new member account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, "all fields are required")
		}
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates a user and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		// An unknown username reads the same as a wrong password.
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Logout closes the current session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	if !h.authService.Logout(c.Request().Context(), token) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// Validate reports whether the presented token is an active session.
//
// @Summary      Validate the session token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  validateResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/validate [get]
func (h *AuthHandler) Validate(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), token)
	if err != nil {
		return c.JSON(http.StatusOK, validateResponse{Valid: false})
	}
	return c.JSON(http.StatusOK, validateResponse{Valid: true, User: user})
}

// Me returns the user behind the current session.
//
// @Summary      Get the current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{User: user})
}
