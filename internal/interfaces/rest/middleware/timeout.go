package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/application"
)

var timeoutBody = fmt.Sprintf(`{"error":"Request timed out","code":%q}`, application.ErrCodeTimeout)

// Timeout answers 503 with the uniform error body once timeout elapses. The
// handler's context is cancelled at the same moment.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		th := http.TimeoutHandler(next, timeout, timeoutBody)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// only reaches the client on timeout; handlers set their own otherwise
			w.Header().Set("Content-Type", "application/json")
			th.ServeHTTP(w, r)
		})
	}
}
