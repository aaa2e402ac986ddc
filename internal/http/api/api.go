package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waktusolat/solat-api/internal/http/middleware"
)

// Error is a handler failure. Field is the JSON key the message is written under;
// empty means "error".
type Error struct {
	Code    int
	Message string
	Field   string
}

func (e *Error) Error() string { return e.Message }

// MessageError is an Error written as {"message": msg}.
func MessageError(code int, msg string) *Error {
	return &Error{Code: code, Message: msg, Field: "message"}
}

// ServerError is the opaque 500 used by the public schedule routes.
func ServerError() *Error {
	return MessageError(http.StatusInternalServerError, "Server Error")
}

// Responder is a result that writes its own response instead of JSON.
type Responder interface {
	Respond(ctx *gin.Context)
}

type HandlerFuncWithAuth func(ctx *gin.Context, admin string) (any, *Error)
type HandlerFunc func(ctx *gin.Context) (any, *Error)

func ResolveEndpointWithAuth(h HandlerFuncWithAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		admin, ok := middleware.GetCurrentAdmin(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiErr := h(ctx, admin)
		write(ctx, result, apiErr)
	}
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		write(ctx, result, apiErr)
	}
}

func write(ctx *gin.Context, result any, apiErr *Error) {
	if apiErr != nil {
		field := apiErr.Field
		if field == "" {
			field = "error"
		}
		_ = ctx.Error(apiErr)
		ctx.JSON(apiErr.Code, gin.H{field: apiErr.Message})
		return
	}

	if r, ok := result.(Responder); ok {
		r.Respond(ctx)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
