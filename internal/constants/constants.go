package constants

// Environment variable keys
const (
	EnvConfigPath = "ENERGY_DUEL_CONFIG"
	EnvDatabase   = "ENERGY_DUEL_DB"
	EnvSeed       = "ENERGY_DUEL_SEED"
	EnvAddress    = "ENERGY_DUEL_ADDR"
)

// HTTP headers and content types
const (
	HeaderContentType   = "Content-Type"
	ContentTypeJSON     = "application/json"
	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
	HeaderRetryAfter    = "Retry-After"
)

// Routes used by the backend router
const (
	RouteAPIPrefix        = "/api"
	RouteHealth           = "/healthz"
	RouteVersion          = "/version"
	RouteCatalog          = "/catalog"
	RouteSessions         = "/sessions"
	RouteAdventures       = "/adventures"
	RouteSessionByCode    = "/sessions/:code"
	RouteSessionAction    = "/sessions/:code/action"
	RouteSessionInstant   = "/sessions/:code/instant"
	RouteSessionLockIn    = "/sessions/:code/lock-in"
	RouteSessionResolve   = "/sessions/:code/resolve"
	RouteSessionDiscard   = "/sessions/:code/discard"
	RouteSessionMap       = "/sessions/:code/map"
	RouteSessionShop      = "/sessions/:code/shop"
	RouteSessionShopLeave = "/sessions/:code/shop/leave"
	RouteSessionLoot      = "/sessions/:code/loot"
	RouteSessionAutoPlay  = "/sessions/:code/autoplay"
)

// Common JSON response keys
const (
	JSONKeyError    = "error"
	JSONKeyMessage  = "message"
	JSONKeyAccepted = "accepted"
	JSONKeySession  = "session"
	JSONKeyReport   = "report"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest      = "Invalid request"
	ErrInvalidSessionCode  = "Invalid session code"
	ErrSessionNotFound     = "Session not found"
	ErrInvalidSetup        = "Invalid match setup"
	ErrNoActiveMatch       = "No active match"
	ErrWrongPhase          = "Action not allowed in the current phase"
	ErrNoAdventure         = "Session has no adventure"
	ErrFailedCreateSession = "Failed to create session"
	ErrFailedUpdateSession = "Failed to update session"
	ErrFailedDeleteSession = "Failed to delete session"
	ErrTooManyRequests     = "Too many requests"
)

// Logging field names
const (
	LogFieldSession  = "session"
	LogFieldRound    = "round"
	LogFieldMode     = "mode"
	LogFieldClass    = "class"
	LogFieldDiff     = "difficulty"
	LogFieldOutcome  = "outcome"
	LogFieldWinner   = "winner"
	LogFieldNode     = "node"
	LogFieldStage    = "stage"
	LogFieldAddr     = "addr"
	LogFieldClient   = "client"
	LogFieldSeed     = "seed"
	LogFieldPurged   = "purged"
	LogFieldConfig   = "config_path"
	LogFieldDatabase = "database"
)
