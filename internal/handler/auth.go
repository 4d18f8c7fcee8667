package handler

import (
	"encoding/json"
	"net/http"

	"github.com/catapp/backend/internal/model"
	"github.com/catapp/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// ObtainToken godoc
// @Summary Obtain an API token
// @Description Exchanges credentials for the account's token. An expired token is replaced; a live one is returned as is.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.TokenRequest true "Username and password"
// @Success 200 {object} model.TokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api-token-auth/ [post]
// @Router /api/v1/auth/token [post]
func (h *AuthHandler) ObtainToken(c *gin.Context) {
	loginID, password, ok := h.bindCredentials(c, h.svc.ParseCredentials)
	if !ok {
		return
	}

	key, expiresIn, err := h.svc.IssueToken(c.Request.Context(), loginID, password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.TokenResponse{Token: key, ExpiresIn: expiresIn})
}

// RevokeToken godoc
// @Summary Revoke the caller's token
// @Tags auth
// @Security TokenAuth
// @Success 204
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/auth/token [delete]
func (h *AuthHandler) RevokeToken(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		writeAuthError(c, service.ErrMissingCredential)
		return
	}

	if err := h.svc.RevokeToken(c.Request.Context(), user.ID); err != nil {
		writeServiceError(c, err)
		return
	}

	h.clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

// Register godoc
// @Summary Register a new account
// @Description Sign up when ALLOW_SIGNUP is true. The issued token is also set as the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.TokenRequest true "Username and password"
// @Success 200 {object} model.TokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	if !h.svc.AllowSignup() {
		writeServiceError(c, service.ErrForbidden)
		return
	}

	loginID, password, ok := h.bindCredentials(c, h.svc.ParseSignup)
	if !ok {
		return
	}

	key, expiresIn, err := h.svc.Register(c.Request.Context(), loginID, password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if !h.setSessionCookie(c, key, expiresIn) {
		return
	}
	c.JSON(http.StatusOK, model.TokenResponse{Token: key, ExpiresIn: expiresIn})
}

// Login godoc
// @Summary Login
// @Description Issues the account's token and stores it in the catapp_session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.TokenRequest true "Username and password"
// @Success 200 {object} model.TokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	loginID, password, ok := h.bindCredentials(c, h.svc.ParseCredentials)
	if !ok {
		return
	}

	key, expiresIn, err := h.svc.IssueToken(c.Request.Context(), loginID, password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if !h.setSessionCookie(c, key, expiresIn) {
		return
	}
	c.JSON(http.StatusOK, model.TokenResponse{Token: key, ExpiresIn: expiresIn})
}

// Logout godoc
// @Summary Logout
// @Description Clears the session cookie. The token itself stays valid until it expires or is revoked.
// @Tags auth
// @Produce json
// @Success 200 {object} model.AuthLogoutResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, model.AuthLogoutResponse{Status: "logged_out"})
}

// Config godoc
// @Summary Get auth config
// @Tags auth
// @Produce json
// @Success 200 {object} model.AuthConfigResponse
// @Router /api/v1/auth/config [get]
func (h *AuthHandler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, model.AuthConfigResponse{
		AllowSignup: h.svc.AllowSignup(),
		TokenExpiry: int64(h.svc.TokenExpiry().Seconds()),
	})
}

// Me godoc
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security TokenAuth
// @Success 200 {object} model.AuthMeResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		writeAuthError(c, service.ErrMissingCredential)
		return
	}
	c.JSON(http.StatusOK, model.AuthMeResponse{
		UserID:  user.ID,
		LoginID: user.LoginID,
	})
}

type credentialParser func(raw map[string]json.RawMessage) (string, string, error)

func (h *AuthHandler) bindCredentials(c *gin.Context, parse credentialParser) (string, string, bool) {
	raw, ok := bindRaw(c)
	if !ok {
		return "", "", false
	}
	loginID, password, err := parse(raw)
	if err != nil {
		writeServiceError(c, err)
		return "", "", false
	}
	return loginID, password, true
}

// setSessionCookie stores key for as long as the token has left to live,
// together with a script-readable CSRF cookie that unsafe requests must echo
// in X-CSRF-Token.
func (h *AuthHandler) setSessionCookie(c *gin.Context, key string, expiresIn int64) bool {
	csrf, err := service.NewCSRFToken()
	if err != nil {
		writeServiceError(c, err)
		return false
	}

	cfg := h.svc.CookieConfig()
	c.SetSameSite(cfg.SameSite)
	c.SetCookie(cfg.Name, key, int(expiresIn), cfg.Path, cfg.Domain, cfg.Secure, true)
	c.SetCookie(csrfCookieName, csrf, int(expiresIn), cfg.Path, cfg.Domain, cfg.Secure, false)
	c.Header(csrfHeader, csrf)
	return true
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	cfg := h.svc.CookieConfig()
	c.SetSameSite(cfg.SameSite)
	c.SetCookie(cfg.Name, "", -1, cfg.Path, cfg.Domain, cfg.Secure, true)
	c.SetCookie(csrfCookieName, "", -1, cfg.Path, cfg.Domain, cfg.Secure, false)
}
