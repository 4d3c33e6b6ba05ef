package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the "error" member of a failed response.
type ErrorBody struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
	Details     any    `json:"details,omitempty"`
}

// APIResponse is the envelope every endpoint responds with.
// Data is always serialised, as null when there is nothing to return.
type APIResponse[T any] struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    T          `json:"data"`
	Error   *ErrorBody `json:"error,omitempty"`
}

func Success[T any](ctx *gin.Context, status int, data T, message string) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
	ctx.JSON(status, resp)
	return resp
}

func Error(ctx *gin.Context, status int, message, description string, details any) APIResponse[any] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := APIResponse[any]{
		Success: false,
		Message: message,
		Error: &ErrorBody{
			Code:        status,
			Description: description,
			Details:     details,
		},
	}
	ctx.JSON(status, resp)
	return resp
}

// Abort writes an error response and stops the handler chain.
func Abort(ctx *gin.Context, status int, message, description string) {
	Error(ctx, status, message, description, nil)
	ctx.Abort()
}
