package i18n

// Common errors
var (
	ErrNotFound       = NewErrorWithCode("ErrorResourceNotFound", ErrorNotFound)
	ErrUnauthorized   = NewErrorWithCode("ErrorUnauthorized", ErrorUnauthorized)
	ErrForbidden      = NewErrorWithCode("ErrorForbidden", ErrorForbidden)
	ErrBadRequest     = NewErrorWithCode("ErrorBadRequest", ErrorBadRequest)
	ErrInternalServer = NewErrorWithCode("ErrorInternalServer", ErrorInternalServer)
)

// User related errors
var (
	ErrorUserNotFound           = NewErrorWithCode("ErrorUserNotFound", ErrorNotFound)
	ErrorInvalidCredentials     = NewErrorWithCode("ErrorInvalidCredentials", ErrorUnauthorized)
	ErrorEmailPasswordRequired  = NewErrorWithCode("ErrorEmailPasswordRequired", ErrorBadRequest)
	ErrorEmailExists            = NewErrorWithCode("ErrorEmailExists", ErrorConflict)
	ErrorInvalidOldPassword     = NewErrorWithCode("ErrorInvalidOldPassword", ErrorUnauthorized)
	ErrorPasswordFieldsRequired = NewErrorWithCode("ErrorPasswordFieldsRequired", ErrorBadRequest)
	ErrorPasswordMismatch       = NewErrorWithCode("ErrorPasswordMismatch", ErrorBadRequest)
)

// Leave related errors
var (
	ErrorLeaveRequestNotFound  = NewErrorWithCode("ErrorLeaveRequestNotFound", ErrorNotFound)
	ErrorLeaveBalanceNotFound  = NewErrorWithCode("ErrorLeaveBalanceNotFound", ErrorNotFound)
	ErrorLeaveAlreadyFinalized = NewErrorWithCode("ErrorLeaveAlreadyFinalized", ErrorBadRequest)
	ErrorLeaveInvalidStatus    = NewErrorWithCode("ErrorLeaveInvalidStatus", ErrorBadRequest)
	ErrorLeaveInvalidRange     = NewErrorWithCode("ErrorLeaveInvalidRange", ErrorBadRequest)
	ErrorLeaveOverlap          = NewErrorWithCode("ErrorLeaveOverlap", ErrorConflict)
	ErrorLeaveDatesRequired    = NewErrorWithCode("ErrorLeaveDatesRequired", ErrorBadRequest)
)

// Success message IDs
const (
	MsgUserCreated     = "SuccessUserCreated"
	MsgUserLoggedIn    = "SuccessUserLoggedIn"
	MsgProfileUpdated  = "SuccessProfileUpdated"
	MsgPasswordChanged = "SuccessPasswordChanged"
	MsgUserUpdated     = "SuccessUserUpdated"
	MsgUserDeleted     = "SuccessUserDeleted"
	MsgLeaveApplied    = "SuccessLeaveApplied"
	MsgLeaveUpdated    = "SuccessLeaveUpdated"
)
