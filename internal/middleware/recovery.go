package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils"
)

// Recovery is a middleware that recovers from panics and returns a 500 Internal Server Error
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				// net/http uses this sentinel to abort a response on purpose
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				utils.LogPanic(rec, debug.Stack(), chimiddleware.GetReqID(r.Context()), r.Method, r.URL.Path)

				utils.Error(w, http.StatusInternalServerError, constants.MsgInternalServerError, nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
