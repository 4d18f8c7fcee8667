package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/catapp/backend/internal/config"
	"github.com/catapp/backend/internal/db"
	"github.com/catapp/backend/internal/logging"
	"github.com/catapp/backend/internal/metrics"
	"github.com/catapp/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionCookieName = "catapp_session"
	tokenScheme       = "Token"
	tokenKeyBytes     = 32
)

type CookieConfig struct {
	Name     string
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
	MaxAge   int
}

// TokenStore persists at most one API token per account.
type TokenStore interface {
	GetTokenByKey(ctx context.Context, key string) (*model.Token, error)
	FetchOrRotateToken(ctx context.Context, userID int64, freshKey string, now, staleBefore time.Time) (*model.Token, model.IssueOutcome, error)
	DeleteTokenByUserID(ctx context.Context, userID int64) error
}

type AuthRepo interface {
	TokenStore
	CreateUser(ctx context.Context, loginID, passwordHash string) (*model.User, error)
	GetUserByLoginID(ctx context.Context, loginID string) (*model.User, error)
}

type AuthService struct {
	repo        AuthRepo
	tokenExpiry time.Duration
	allowSignup bool
	cookieCfg   CookieConfig
	now         func() time.Time
}

func NewAuthService(repo AuthRepo, cfg config.AuthConfig) (*AuthService, error) {
	expiry := cfg.TokenExpiry()
	if expiry <= 0 {
		return nil, fmt.Errorf("%w: TOKEN_EXPIRY_TIME must be positive", ErrMisconfigured)
	}

	allowSignup, err := parseBool(cfg.AllowSignup, false)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ALLOW_SIGNUP", ErrMisconfigured)
	}

	cookieSecure, err := parseBool(cfg.CookieSecure, true)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_COOKIE_SECURE", ErrMisconfigured)
	}

	cookieSameSite, err := parseSameSite(cfg.CookieSameSite)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_COOKIE_SAMESITE", ErrMisconfigured)
	}

	if cookieSameSite == http.SameSiteNoneMode && !cookieSecure {
		return nil, fmt.Errorf("%w: SameSite=None requires Secure cookie", ErrMisconfigured)
	}

	cookiePath := cfg.CookiePath
	if strings.TrimSpace(cookiePath) == "" {
		cookiePath = "/"
	}

	return &AuthService{
		repo:        repo,
		tokenExpiry: expiry,
		allowSignup: allowSignup,
		cookieCfg: CookieConfig{
			Name:     sessionCookieName,
			Path:     cookiePath,
			Domain:   cfg.CookieDomain,
			Secure:   cookieSecure,
			SameSite: cookieSameSite,
			MaxAge:   int(expiry.Seconds()),
		},
		now: time.Now,
	}, nil
}

// EnsureAdmin creates the bootstrap account when it does not exist yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, loginID, password string) error {
	if strings.TrimSpace(loginID) == "" || password == "" {
		return fmt.Errorf("%w: ADMIN_USERNAME/ADMIN_PASSWORD are required", ErrMisconfigured)
	}

	_, err := s.repo.GetUserByLoginID(ctx, loginID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return err
	}

	hash, err := hashPassword(password)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w: ADMIN_PASSWORD exceeds %d bytes", ErrMisconfigured, model.PasswordMaxBytes)
		}
		return err
	}

	if _, err := s.repo.CreateUser(ctx, loginID, hash); err != nil && !errors.Is(err, db.ErrConflict) {
		return err
	}
	logging.From(ctx).Info("admin account created", "login_id", loginID)
	return nil
}

func (s *AuthService) AllowSignup() bool {
	return s.allowSignup
}

func (s *AuthService) CookieConfig() CookieConfig {
	return s.cookieCfg
}

func (s *AuthService) TokenExpiry() time.Duration {
	return s.tokenExpiry
}

// ParseCredentials validates a username/password body.
func (s *AuthService) ParseCredentials(raw map[string]json.RawMessage) (string, string, error) {
	return parseCredentials(model.CredentialsSchema, raw)
}

// ParseSignup validates a sign-up body, which also enforces minimum lengths.
func (s *AuthService) ParseSignup(raw map[string]json.RawMessage) (string, string, error) {
	return parseCredentials(model.SignupSchema, raw)
}

func parseCredentials(schema model.Schema, raw map[string]json.RawMessage) (string, string, error) {
	data, err := validate(schema, raw, modeCreate)
	if err != nil {
		return "", "", err
	}
	loginID, _ := data.String("username")
	password, _ := data.String("password")
	return loginID, password, nil
}

// Authenticate resolves an Authorization header of the form "Token <key>".
// It never modifies the stored token.
func (s *AuthService) Authenticate(ctx context.Context, header string) (*model.AuthUser, error) {
	key, err := parseTokenHeader(header)
	if err != nil {
		s.recordAuth(ctx, err)
		return nil, err
	}
	return s.AuthenticateKey(ctx, key)
}

// AuthenticateKey resolves a bare token key, as carried by the session cookie.
func (s *AuthService) AuthenticateKey(ctx context.Context, key string) (*model.AuthUser, error) {
	user, err := s.authenticateKey(ctx, key)
	s.recordAuth(ctx, err)
	return user, err
}

func (s *AuthService) authenticateKey(ctx context.Context, key string) (*model.AuthUser, error) {
	if key == "" {
		return nil, ErrMissingCredential
	}

	token, err := s.repo.GetTokenByKey(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if s.expired(token) {
		return nil, ErrTokenExpired
	}

	return &model.AuthUser{
		ID:       token.UserID,
		LoginID:  token.LoginID,
		TokenKey: token.Key,
	}, nil
}

// IssueToken exchanges credentials for the account's token, creating one when
// absent and rotating it when expired. It returns the key and the number of
// whole seconds left in its window.
func (s *AuthService) IssueToken(ctx context.Context, loginID, password string) (string, int64, error) {
	user, err := s.repo.GetUserByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", 0, ErrInvalidCredentials
		}
		return "", 0, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logging.From(ctx).Debug("token issue rejected", "login_id", loginID)
		return "", 0, ErrInvalidCredentials
	}

	return s.issueForUser(ctx, user)
}

// Register creates an account when self sign-up is enabled and issues its token.
func (s *AuthService) Register(ctx context.Context, loginID, password string) (string, int64, error) {
	if !s.allowSignup {
		return "", 0, ErrForbidden
	}

	hash, err := hashPassword(password)
	if err != nil {
		return "", 0, err
	}

	user, err := s.repo.CreateUser(ctx, loginID, hash)
	if err != nil {
		if errors.Is(err, db.ErrConflict) {
			return "", 0, ErrConflict
		}
		return "", 0, err
	}
	logging.From(ctx).Info("account registered", "login_id", loginID)

	return s.issueForUser(ctx, user)
}

// RevokeToken deletes the live token of userID.
func (s *AuthService) RevokeToken(ctx context.Context, userID int64) error {
	if err := s.repo.DeleteTokenByUserID(ctx, userID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *AuthService) issueForUser(ctx context.Context, user *model.User) (string, int64, error) {
	freshKey, err := newTokenKey()
	if err != nil {
		return "", 0, err
	}

	now := s.now()
	token, outcome, err := s.repo.FetchOrRotateToken(ctx, user.ID, freshKey, now, now.Add(-s.tokenExpiry))
	if err != nil {
		// The account vanished between the password check and the lock.
		if errors.Is(err, db.ErrNotFound) {
			return "", 0, ErrInvalidCredentials
		}
		return "", 0, storeErr(err)
	}

	metrics.TokensIssued.WithLabelValues(string(outcome)).Inc()
	logging.From(ctx).Debug("token issued", "login_id", user.LoginID, "outcome", outcome)

	remaining := s.tokenExpiry - now.Sub(token.CreatedAt)
	if remaining < 0 {
		remaining = 0
	}
	return token.Key, int64(remaining / time.Second), nil
}

// expired reports whether the token is older than the window.
// A token exactly window old is still valid.
func (s *AuthService) expired(token *model.Token) bool {
	return s.now().Sub(token.CreatedAt) > s.tokenExpiry
}

func (s *AuthService) recordAuth(ctx context.Context, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrMissingCredential):
		result = "missing"
	case errors.Is(err, ErrMalformedCredential):
		result = "malformed"
	case errors.Is(err, ErrInvalidToken):
		result = "invalid"
	case errors.Is(err, ErrTokenExpired):
		result = "expired"
	default:
		result = "error"
		logging.From(ctx).Error("token lookup failed", "err", err)
	}
	metrics.Authentications.WithLabelValues(result).Inc()
	if err != nil && result != "error" {
		logging.From(ctx).Debug("authentication failed", "result", result)
	}
}

// parseTokenHeader extracts the key from "Token <key>". The scheme is
// case-sensitive and the key may not contain spaces.
func parseTokenHeader(header string) (string, error) {
	if header == "" {
		return "", ErrMissingCredential
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != tokenScheme {
		return "", ErrMalformedCredential
	}
	return parts[1], nil
}

// hashPassword rejects passwords bcrypt would refuse as a password field error.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		verr := model.NewValidationError()
		verr.Add("password", model.CodeMaxLength, fmt.Sprintf(msgMaxBytes, model.PasswordMaxBytes))
		return "", verr
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// NewCSRFToken returns a random value for the double-submit CSRF cookie.
func NewCSRFToken() (string, error) {
	return newTokenKey()
}

func newTokenKey() (string, error) {
	raw := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func parseBool(value string, fallback bool) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, err
	}
	return parsed, nil
}

func parseSameSite(value string) (http.SameSite, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return http.SameSiteLaxMode, nil
	}
	switch value {
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return 0, ErrInvalidInput
	}
}
