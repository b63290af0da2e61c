package handler

import (
	"context"      // provides context with cancellation for DB calls
	"database/sql" // SQL database interactions
	"errors"
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/internhub/desk-reservation/internal/config"     // app configuration
	"github.com/internhub/desk-reservation/internal/middleware" // cookie name constants
	"github.com/internhub/desk-reservation/internal/repository" // DB repositories
	"github.com/internhub/desk-reservation/internal/utils"      // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type userResp struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Register creates an intern account and opens a session in one step.
// Registration is intern-only; admins come from the bootstrap path.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing fields"})
	}
	if !domainAllowed(req.Email, h.Cfg.AllowedEmailDomains) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Registration restricted to office email domains"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, "intern", h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	if err := setSessionCookie(c, h.Cfg, uid, req.Email, "intern"); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	return c.JSON(http.StatusOK, userResp{ID: uid, Name: req.Name, Email: req.Email, Role: "intern"})
}

// Login verifies credentials and sets the role-named session cookie.  Unknown
// email and wrong password are indistinguishable to the client.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing fields"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid credentials"})
	}

	if err := setSessionCookie(c, h.Cfg, u.ID, u.Email, u.Role); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	return c.JSON(http.StatusOK, userResp{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
}

// Logout clears both possible session cookies unconditionally, which is
// safe when the caller's role is unknown.
func (h *AuthHandler) Logout(c echo.Context) error {
	clearSessionCookies(c, h.Cfg)
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// Me returns the identity attached by the session middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user": echo.Map{
			"id":    c.Get("user_id"),
			"email": c.Get("email"),
			"role":  c.Get("role"),
		},
	})
}

// domainAllowed checks the registration allow-list.  An empty list allows
// every domain.
func domainAllowed(email string, domains []string) bool {
	if len(domains) == 0 {
		return true
	}
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	for _, d := range domains {
		if domain == d {
			return true
		}
	}
	return false
}

// setSessionCookie issues a session token and attaches it as an HTTP-only
// cookie whose name depends on the user's role.
func setSessionCookie(c echo.Context, cfg config.Config, userID uint64, email, role string) error {
	tok, err := utils.NewSessionToken(cfg.JWTSecret, userID, email, role, cfg.SessionTTLDays)
	if err != nil {
		return err
	}
	name := middleware.InternCookie
	if role == "admin" {
		name = middleware.AdminCookie
	}
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.Exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.Env == "prod",
	})
	return nil
}

// clearSessionCookies expires both role cookies.
func clearSessionCookies(c echo.Context, cfg config.Config) {
	for _, name := range []string{middleware.InternCookie, middleware.AdminCookie} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   cfg.Env == "prod",
		})
	}
}
