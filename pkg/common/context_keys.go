package common

type ContextKey string

const (
	ClientKeyContextKey ContextKey = "client_key"
	UserIDContextKey    ContextKey = "user_id"
	RequestIDContextKey ContextKey = "request_id"
)
