package workspace

import (
	"net/http"

	"github.com/google/uuid"
)

// APIVersion is the remote API revision this client speaks.
const APIVersion = "2024-06-15"

// tokenTransport injects the bearer token, API version, and a unique
// request ID into every outgoing request. It wraps the caller's base
// transport so custom transports keep working.
type tokenTransport struct {
	token     string
	userAgent string
	base      http.RoundTripper
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone before mutating; RoundTrippers must not modify the caller's
	// request.
	req = req.Clone(req.Context())

	req.Header.Set("Authorization", "Bearer "+t.token)
	req.Header.Set("Workspace-Version", APIVersion)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
