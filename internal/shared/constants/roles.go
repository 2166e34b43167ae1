package constants

// Roles carried in the "role" claim of access tokens.
const (
	RoleVenueManager = "VENUE_MANAGER"
	RoleEventManager = "EVENT_MANAGER"
	RoleUser         = "USER"
)

// Context keys set by the identity middleware.
const (
	CtxUserID    = "user_id"
	CtxUserRole  = "user_role"
	CtxTimeZone  = "time_zone"
	CtxRequestID = "request_id"
)
