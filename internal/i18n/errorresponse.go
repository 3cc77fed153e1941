package i18n

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	StatusCode ErrorCode
	Err        error
}

// WithHttpCode sets the HTTP status code for the error
func (r *ErrorResponse) WithHttpCode(code ErrorCode) *ErrorResponse {
	r.StatusCode = code
	return r
}

// WithParam adds a parameter to the error
func (r *ErrorResponse) WithParam(key string, value interface{}) *ErrorResponse {
	var i18nErr *ErrorWithCode
	if errors.As(r.Err, &i18nErr) {
		r.Err = i18nErr.WithParam(key, value)
	}
	return r
}

// Send sends the error response to the client
func (r *ErrorResponse) Send(c *gin.Context) {
	RespondWithError(c, r.Err)
}

// BadRequest creates a new error response with status code 400
func BadRequest(msgID string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: ErrorBadRequest,
		Err:        NewErrorWithCode(msgID, ErrorBadRequest),
	}
}

// Unauthorized creates a new error response with status code 401
func Unauthorized(msgID string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: ErrorUnauthorized,
		Err:        NewErrorWithCode(msgID, ErrorUnauthorized),
	}
}

// Forbidden creates a new error response with status code 403
func Forbidden(msgID string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: ErrorForbidden,
		Err:        NewErrorWithCode(msgID, ErrorForbidden),
	}
}

// NotFound creates a new error response with status code 404
func NotFound(msgID string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: ErrorNotFound,
		Err:        NewErrorWithCode(msgID, ErrorNotFound),
	}
}

// Conflict creates a new error response with status code 409
func Conflict(msgID string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: ErrorConflict,
		Err:        NewErrorWithCode(msgID, ErrorConflict),
	}
}

// InternalError creates a new error response with status code 500
func InternalError(msgID string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: ErrorInternalServer,
		Err:        NewErrorWithCode(msgID, ErrorInternalServer),
	}
}

// Error creates an error response from a predefined error constant
func Error(predefinedErr error) *ErrorResponse {
	statusCode := ErrorInternalServer
	var errWithCode *ErrorWithCode
	if errors.As(predefinedErr, &errWithCode) {
		statusCode = errWithCode.GetCode()
	}
	return &ErrorResponse{
		StatusCode: statusCode,
		Err:        predefinedErr,
	}
}

// InternalServerFromErr creates an internal server error from a predefined error
func InternalServerFromErr(predefinedErr error) *ErrorResponse {
	var errWithCode *ErrorWithCode
	if errors.As(predefinedErr, &errWithCode) {
		return &ErrorResponse{
			StatusCode: ErrorInternalServer,
			Err:        errWithCode.WithHttpCode(ErrorInternalServer),
		}
	}
	return &ErrorResponse{
		StatusCode: ErrorInternalServer,
		Err:        NewErrorWithCode(predefinedErr.Error(), ErrorInternalServer),
	}
}
