package constants

// Echo context keys
const (
	ContextTokenData      = "token_data"
	ContextBootstrapToken = "bootstrap_token"
)

// Redis key prefixes
const (
	RedisKeyGraphToken = "graph_token:"
)

// Microsoft identity platform
const (
	LoginBaseURL  = "https://login.microsoftonline.com"
	JWKSPath      = "/common/discovery/v2.0/keys"
	GraphBaseURL  = "https://graph.microsoft.com/v1.0"
	GraphScopeAll = "https://graph.microsoft.com/.default"
)

// Default Graph scopes requested during the on-behalf-of exchange
var DefaultGraphScopes = []string{
	"https://graph.microsoft.com/Calendars.Read",
	"https://graph.microsoft.com/User.Read",
	"https://graph.microsoft.com/email",
	"https://graph.microsoft.com/openid",
	"https://graph.microsoft.com/profile",
	"https://graph.microsoft.com/offline_access",
}

// Availability engine defaults
const (
	// ScheduleBatchSize caps the number of schedules per getSchedule call.
	// Attendees beyond the cap are excluded from the lookup (documented
	// limitation, not an error).
	ScheduleBatchSize = 20

	// AvailabilityViewInterval is the sub-interval width (minutes) of the
	// availability view returned by getSchedule.
	AvailabilityViewInterval = 30

	SlotCadenceMinutes = 30
	BusinessHourStart  = 9
	BusinessHourEnd    = 18
	MinDurationMinutes = 15
	MaxSuggestedSlots  = 10
)

// Database pool defaults
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Token cache TTL in seconds (mirrors the upstream token lifetime)
const GraphTokenCacheTTL = 3600
