package constants

import "time"

// Database pool settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Request timeouts
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultTimeout        = 10 * time.Second
	ServerShutdownTimeout = 15 * time.Second
)

// JWT token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Context keys
const (
	ContextTokenData = "token_data"
)

// Booking engine defaults. The host timezone default is only applied
// when a host has not configured a zone of their own.
const (
	DefaultHostTimezone    = "Asia/Ho_Chi_Minh"
	DefaultFromHour        = "09:00"
	DefaultToHour          = "18:00"
	DefaultDurationMinutes = 60
	DefaultBreakMinutes    = 0

	// Preview fixture served to anonymous viewers with no host context.
	PreviewDayStartHour = 8
	PreviewDayHours     = 12

	// Upper bound on concurrent day creations in a batch request.
	BatchDayConcurrency = 4
)

// Cache keys
const (
	CacheKeyMonthSummary = "availability:month" // availability:month:<host>:<yyyy-mm>
	MonthSummaryCacheTTL = 60 * time.Second
)

// Asynq task types
const (
	TaskNotificationDeliver = "notification:deliver"
	QueueDefault            = "default"
)
