package handler

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/catapp/backend/internal/logging"
	"github.com/catapp/backend/internal/metrics"
	"github.com/catapp/backend/internal/model"
	"github.com/catapp/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	authUserKey     = "auth_user"
	requestIDHeader = "X-Request-Id"
	csrfCookieName  = "catapp_csrf"
	csrfHeader      = "X-CSRF-Token"
)

// AuthMiddleware requires a valid token. The Authorization header wins; the
// session cookie is consulted only when the header is absent. Unsafe methods
// authenticated by cookie must echo the CSRF cookie in X-CSRF-Token.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		header := c.GetHeader("Authorization")

		var (
			user *model.AuthUser
			err  error
		)
		fromCookie := false
		if key, cerr := c.Cookie(authService.CookieConfig().Name); header == "" && cerr == nil && key != "" {
			fromCookie = true
			user, err = authService.AuthenticateKey(ctx, key)
		} else {
			user, err = authService.Authenticate(ctx, header)
		}
		if err != nil {
			writeAuthError(c, err)
			c.Abort()
			return
		}

		if fromCookie && !safeMethod(c.Request.Method) && !validCSRF(c) {
			logging.From(ctx).Warn("csrf check failed", "login_id", user.LoginID, "method", c.Request.Method)
			writeError(c, http.StatusForbidden, "permission_denied", detailCSRFFailed)
			c.Abort()
			return
		}

		c.Set(authUserKey, user)
		c.Request = c.Request.WithContext(logging.Into(ctx, logging.From(ctx).With("login_id", user.LoginID)))
		c.Next()
	}
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// validCSRF checks the X-CSRF-Token header against the CSRF cookie.
func validCSRF(c *gin.Context) bool {
	cookie, err := c.Cookie(csrfCookieName)
	if err != nil || cookie == "" {
		return false
	}
	sent := c.GetHeader(csrfHeader)
	return sent != "" && subtle.ConstantTimeCompare([]byte(sent), []byte(cookie)) == 1
}

func GetAuthUser(c *gin.Context) *model.AuthUser {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.AuthUser); ok {
			return user
		}
	}
	return nil
}

// RequestLogger tags every request with an X-Request-Id, stores a
// request-scoped logger in the context and records access logs and metrics.
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	if base == nil {
		base = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		l := base.With(slog.String("request_id", id))
		c.Request = c.Request.WithContext(logging.Into(c.Request.Context(), l))

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		dur := time.Since(start)
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(dur.Seconds())

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logging.From(c.Request.Context()).LogAttrs(c.Request.Context(), level, "http",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("dur", dur),
			slog.Int("bytes", c.Writer.Size()),
		)
	}
}

func CORSMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-Id, X-CSRF-Token")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}

		c.Next()
	}
}
