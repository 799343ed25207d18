package authhttp

import (
	"encoding/json"
	"net/http"

	"github.com/open-rails/aarckit/entitlement"
)

// CheckRequest asks whether any held entitlement satisfies the required
// one. All values are raw AARC-G002 strings, parsed lax with degradation.
type CheckRequest struct {
	Required string   `json:"required"`
	Held     []string `json:"held"`
}

// CheckResponse reports the comparison outcome. Satisfied names the first
// held value that granted the requirement, when any did.
type CheckResponse struct {
	Satisfied bool   `json:"satisfied"`
	GrantedBy string `json:"granted_by,omitempty"`
}

// CheckHandler serves sidecar-style authorization checks: POST a
// CheckRequest, receive a CheckResponse. Comparison itself never fails;
// only malformed JSON is an error.
func CheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req CheckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		required, _ := entitlement.Parse(req.Required, entitlement.Lax(), entitlement.Degrade())
		var resp CheckResponse
		for _, raw := range req.Held {
			held, _ := entitlement.Parse(raw, entitlement.Lax(), entitlement.Degrade())
			if required.IsSatisfiedBy(held) {
				resp = CheckResponse{Satisfied: true, GrantedBy: held.Render()}
				break
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
}
