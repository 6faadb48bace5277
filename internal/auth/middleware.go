package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"inferd/pkg/types"
)

type ctxKey struct{}

// TierFromContext returns the privilege tier the authenticator granted to
// the request, or TierPublic when the route required no credential.
func TierFromContext(ctx context.Context) Tier {
	if t, ok := ctx.Value(ctxKey{}).(Tier); ok {
		return t
	}
	return TierPublic
}

// Require returns a middleware enforcing the given tier. Routes are
// classified at registration time by wrapping their handler; there is no
// dynamic tier lookup at request time.
//
// Outcomes are distinct: a missing, malformed or unknown token is 401; a
// known token lacking the required tier is 403.
func (k *Keys) Require(tier Tier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if tier == TierPublic {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "missing or malformed Authorization header")
				return
			}
			if !k.Known(token) {
				unauthorized(w, "invalid API key")
				return
			}
			granted := TierStandard
			if k.Valid(token, TierAdmin) {
				granted = TierAdmin
			}
			if granted < tier {
				writeError(w, http.StatusForbidden, "admin access required")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, granted)))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns false for a missing header, wrong scheme or empty token.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, msg)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
