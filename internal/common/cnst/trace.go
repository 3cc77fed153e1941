package cnst

// TraceAPIServer is the tracer name for the API server
const TraceAPIServer = "leavehub/apiserver"

// Common attribute keys
const (
	AttrUserID      = "user.id"
	AttrUserRole    = "user.role"
	AttrLeaveID     = "leave.request_id"
	AttrLeaveStatus = "leave.status"
)
