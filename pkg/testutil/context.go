package testutil

import (
	"net/http"
	"testing"

	id "cdp/pkg/domain"
	"cdp/pkg/requestcontext"
)

// WithPrincipal attaches an authenticated user and role to the request, as the
// auth middleware would.
func WithPrincipal(req *http.Request, userID id.UserID, role id.Role) *http.Request {
	return req.WithContext(requestcontext.WithPrincipal(req.Context(), userID, role))
}

// Given, When and Then label subtests of a scenario so failures read as
// steps of the workflow under test.
func Given(t *testing.T, step string, fn func(t *testing.T)) bool {
	t.Helper()
	return t.Run("given "+step, fn)
}

func When(t *testing.T, step string, fn func(t *testing.T)) bool {
	t.Helper()
	return t.Run("when "+step, fn)
}

func Then(t *testing.T, step string, fn func(t *testing.T)) bool {
	t.Helper()
	return t.Run("then "+step, fn)
}
