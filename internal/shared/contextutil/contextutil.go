package contextutil

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is private so keys never collide with other packages.
type contextKey string

const (
	requestIDKey  contextKey = "request_id"
	credentialKey contextKey = "credential"
	loggerKey     contextKey = "logger"
)

// Credential is the authenticated caller of one request. It is derived from
// the bearer token by the auth middleware and travels with the request
// context only.
type Credential struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       string
}

// ActorID is the identity recorded in audit columns.
func (c Credential) ActorID() string {
	if c.EmployeeID != "" {
		return c.EmployeeID
	}
	return c.UserID
}

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

func WithCredential(ctx context.Context, cred Credential) context.Context {
	return context.WithValue(ctx, credentialKey, cred)
}

// GetCredential returns the caller attached by the auth middleware.
func GetCredential(ctx context.Context) (Credential, bool) {
	cred, ok := ctx.Value(credentialKey).(Credential)
	return cred, ok
}

// WithLogger stores a request scoped logger, usually already decorated with
// the request id.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request logger, then defaultLogger, then a no-op
// logger. It never returns nil.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}

	if defaultLogger != nil {
		return defaultLogger
	}

	return zap.NewNop()
}

type Metadata struct {
	RequestID string
	UserID    string
	CompanyID string
}

// ExtractMetadata collects tracing fields for manual logging.
func ExtractMetadata(ctx context.Context) Metadata {
	cred, _ := GetCredential(ctx)
	return Metadata{
		RequestID: GetRequestID(ctx),
		UserID:    cred.UserID,
		CompanyID: cred.CompanyID,
	}
}
