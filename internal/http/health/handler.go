// Package health serves the liveness probe used by load balancers and orchestrators.
package health

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Path is where the probe is mounted, outside the documented API.
const Path = "/health"

// Response is the payload for the health endpoint.
type Response struct {
	Status string `json:"status"`
}

// Handler answers GET and HEAD with {"status":"healthy"}. The body never changes,
// so it is encoded once.
func Handler() http.HandlerFunc {
	body, err := json.Marshal(Response{Status: "healthy"})
	if err != nil {
		panic(err)
	}
	length := strconv.Itoa(len(body))
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Type", "application/json")
		h.Set("Content-Length", length)
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(body)
	}
}
