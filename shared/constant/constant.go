package constant

import (
	"time"
)

const (
	ContextSystem  = "System"
	ContextUnknown = "Unknown"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUsername contextKey = "username"
	ContextKeyTokenID  contextKey = "token_id"
	ContextKeySession  contextKey = "session"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
)

const (
	RequestParamID = "id"
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 10
)

const (
	LogLimitSummary = 10
	LogLimitFull    = 100
)

const (
	FieldCreatedAt = "created_at"
)

const (
	DateFormat            = "2006-01-02"
	DateTimeFormat        = time.RFC3339
	DateTimeDisplayFormat = "2006-01-02 15:04:05"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelStoreScopeName      = "store"
	OtelExternalScopeName   = "external"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
	OtelKafkaScopeName    = "kafka"
)

const (
	RequestHeaderContentType  = "Content-Type"
	RequestHeaderUserAgent    = "User-Agent"
	RequestHeaderRequestID    = "X-Request-ID"
	RequestHeaderForwardedFor = "X-Forwarded-For"
	RequestHeaderLocation     = "Location"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeHTML = "text/html; charset=utf-8"
)

const (
	ResponseErrorPrepareShutdown = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy       = "SERVER UNHEALTHY"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Empty = ""
)
