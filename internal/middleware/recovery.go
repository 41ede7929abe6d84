package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	appErrors "elevate-backend/internal/errors"
)

// Recovery turns a panic into a 500 response and logs it with the stack.
func Recovery(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("Panic while serving request",
					RequestIDField(r),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()))

				// Nothing can be sent once the handler started writing.
				if w.Header().Get("Content-Type") == "" {
					WriteError(w, appErrors.Internal(appErrors.CodePanic, "internal server error").
						WithDetails(fmt.Sprint(rec)).
						Build())
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
