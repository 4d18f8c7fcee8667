package model

import "time"

// TokenRequest is the credential exchange body accepted by the token endpoint.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type AuthConfigResponse struct {
	AllowSignup bool  `json:"allowSignup"`
	TokenExpiry int64 `json:"tokenExpiry"`
}

type AuthUser struct {
	ID       int64
	LoginID  string
	TokenKey string
}

type User struct {
	ID           int64
	LoginID      string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Token is the single live API credential of an account.
type Token struct {
	Key       string
	UserID    int64
	LoginID   string
	CreatedAt time.Time
}

// IssueOutcome reports what a fetch-or-rotate call did to the account's token.
type IssueOutcome string

const (
	TokenCreated IssueOutcome = "created"
	TokenReused  IssueOutcome = "reused"
	TokenRotated IssueOutcome = "rotated"
)

// PasswordMaxBytes is the longest password bcrypt can hash.
const PasswordMaxBytes = 72

// CredentialsSchema validates the username/password pair of a token request.
var CredentialsSchema = Schema{
	Resource: "token",
	Fields: []Field{
		{Name: "username", Kind: FieldString, Required: true, MaxLength: 150},
		{Name: "password", Kind: FieldString, Required: true, KeepWhitespace: true, MaxBytes: PasswordMaxBytes},
	},
}

// SignupSchema adds minimum lengths for accounts created through sign-up.
var SignupSchema = Schema{
	Resource: "account",
	Fields: []Field{
		{Name: "username", Kind: FieldString, Required: true, MinLength: 3, MaxLength: 150},
		{Name: "password", Kind: FieldString, Required: true, KeepWhitespace: true, MinLength: 8, MaxBytes: PasswordMaxBytes},
	},
}
