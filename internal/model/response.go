package model

// ErrorResponse is the body of every non-2xx answer. Error carries a
// machine-readable code, Detail the human-readable message.
type ErrorResponse struct {
	Error  string                  `json:"error"`
	Detail string                  `json:"detail,omitempty"`
	Fields map[string][]FieldError `json:"fields,omitempty"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type AuthLogoutResponse struct {
	Status string `json:"status"`
}

type AuthMeResponse struct {
	UserID  int64  `json:"userId"`
	LoginID string `json:"loginId"`
}
