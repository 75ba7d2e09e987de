// internal/api/v2/auth.go
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/koreality/koreality-go/internal/errors"
	"github.com/koreality/koreality-go/internal/security"
)

// initAuthRoutes registers the OAuth sign-in endpoints. Routes are no-ops
// returning 503 when auth is not configured.
func (c *Controller) initAuthRoutes() {
	c.Group.GET("/auth/login", c.AuthLogin)
	c.Group.GET("/auth/callback", c.AuthCallback)
	c.Group.POST("/auth/logout", c.AuthLogout)
	c.Group.GET("/auth/session", c.AuthSession)
}

// requireAuthConfigured short-circuits auth handlers when OAuth is disabled.
func (c *Controller) requireAuthConfigured(ctx echo.Context) error {
	if c.OAuth == nil {
		return c.HandleError(ctx, errors.Newf("authentication is not configured").
			Category(errors.CategoryAuth).
			Component("api").
			Build(), "Authentication unavailable", http.StatusServiceUnavailable)
	}
	return nil
}

// AuthLogin redirects the browser to the OAuth provider.
func (c *Controller) AuthLogin(ctx echo.Context) error {
	if err := c.requireAuthConfigured(ctx); err != nil {
		return err
	}

	state := security.GenerateState()
	if err := c.Cookies.SetOAuthState(ctx, state); err != nil {
		return c.HandleError(ctx, err, "Failed to start sign-in", http.StatusInternalServerError)
	}

	return ctx.Redirect(http.StatusTemporaryRedirect, c.OAuth.AuthCodeURL(state))
}

// AuthCallback completes the provider redirect: verifies the state token,
// exchanges the code and opens a session.
func (c *Controller) AuthCallback(ctx echo.Context) error {
	if err := c.requireAuthConfigured(ctx); err != nil {
		return err
	}

	expected := c.Cookies.OAuthState(ctx)
	if expected == "" || expected != ctx.QueryParam("state") {
		return c.HandleError(ctx, errors.Newf("oauth state mismatch").
			Category(errors.CategoryAuth).
			Component("api").
			Build(), "Sign-in failed", http.StatusBadRequest)
	}

	code := ctx.QueryParam("code")
	if code == "" {
		return c.HandleError(ctx, errors.Newf("missing authorization code").
			Category(errors.CategoryAuth).
			Component("api").
			Build(), "Sign-in failed", http.StatusBadRequest)
	}

	token, user, err := c.OAuth.Exchange(ctx.Request().Context(), code)
	if err != nil {
		return c.HandleError(ctx, err, "Sign-in failed", http.StatusBadGateway)
	}

	if err := c.Cookies.SetSessionToken(ctx, token); err != nil {
		return c.HandleError(ctx, err, "Failed to store session", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, user)
}

// AuthLogout ends the current session.
func (c *Controller) AuthLogout(ctx echo.Context) error {
	if err := c.requireAuthConfigured(ctx); err != nil {
		return err
	}

	if token := c.Cookies.SessionToken(ctx); token != "" {
		c.OAuth.SignOut(token)
	}
	if err := c.Cookies.ClearSession(ctx); err != nil {
		return c.HandleError(ctx, err, "Failed to clear session", http.StatusInternalServerError)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AuthSession returns the signed-in user, or 401 when no session exists.
func (c *Controller) AuthSession(ctx echo.Context) error {
	if err := c.requireAuthConfigured(ctx); err != nil {
		return err
	}

	token := c.Cookies.SessionToken(ctx)
	if token == "" {
		return ctx.JSON(http.StatusUnauthorized, map[string]any{"user": nil})
	}

	user, found := c.OAuth.Session(token)
	if !found {
		return ctx.JSON(http.StatusUnauthorized, map[string]any{"user": nil})
	}

	return ctx.JSON(http.StatusOK, user)
}
