package handler

import (
	"errors"
	"net/http"

	"github.com/catapp/backend/internal/logging"
	"github.com/catapp/backend/internal/model"
	"github.com/catapp/backend/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	detailNotAuthenticated = "Authentication credentials were not provided."
	detailBadHeader        = "Invalid token header."
	detailInvalidToken     = "Invalid Token"
	detailExpiredToken     = "The Token is expired"
	detailNotFound         = "Not found."
	detailInvalidInput     = "Invalid input."
	detailLoginRefused     = "Unable to log in with provided credentials."
	detailCSRFFailed       = "CSRF Failed: CSRF token missing or incorrect."
	detailMediaType        = "Unsupported media type in request. Use application/json."
)

func writeError(c *gin.Context, status int, code, detail string) {
	c.JSON(status, model.ErrorResponse{Error: code, Detail: detail})
}

// writeAuthError answers a failed token check with 401 and a Token challenge.
func writeAuthError(c *gin.Context, err error) {
	var detail, code string
	switch {
	case errors.Is(err, service.ErrMissingCredential):
		code, detail = "not_authenticated", detailNotAuthenticated
	case errors.Is(err, service.ErrMalformedCredential):
		code, detail = "authentication_failed", detailBadHeader
	case errors.Is(err, service.ErrInvalidToken):
		code, detail = "authentication_failed", detailInvalidToken
	case errors.Is(err, service.ErrTokenExpired):
		code, detail = "authentication_failed", detailExpiredToken
	default:
		writeServiceError(c, err)
		return
	}
	c.Header("WWW-Authenticate", "Token")
	writeError(c, http.StatusUnauthorized, code, detail)
}

func writeServiceError(c *gin.Context, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid", Detail: detailInvalidInput, Fields: verr.Fields})
	case errors.Is(err, service.ErrInvalidCredentials):
		fields := model.NewValidationError()
		fields.Add(model.NonFieldErrors, model.CodeAuthorization, detailLoginRefused)
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid", Detail: detailLoginRefused, Fields: fields.Fields})
	case errors.Is(err, service.ErrNotFound):
		writeError(c, http.StatusNotFound, "not_found", detailNotFound)
	case errors.Is(err, service.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, "invalid", detailInvalidInput)
	case errors.Is(err, service.ErrConflict):
		writeError(c, http.StatusConflict, "conflict", "Already exists.")
	case errors.Is(err, service.ErrForbidden):
		writeError(c, http.StatusForbidden, "permission_denied", "Sign-up is disabled.")
	default:
		logging.From(c.Request.Context()).Error("request failed", "err", err)
		writeError(c, http.StatusInternalServerError, "server_error", "A server error occurred.")
	}
}
