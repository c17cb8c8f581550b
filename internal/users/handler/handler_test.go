package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	jwttoken "cdp/internal/jwt_token"
	"cdp/internal/users/models"
	"cdp/internal/users/passwords"
	"cdp/internal/users/service"
	"cdp/internal/users/store"
	id "cdp/pkg/domain"
	"cdp/pkg/platform/middleware/auth"
	"cdp/pkg/testutil"
)

type fixture struct {
	router http.Handler
	admin  *models.User
}

// newFixture wires the handler behind the real token middleware so tests
// log in and reuse the issued bearer token.
func newFixture(t *testing.T) fixture {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	jwt := jwttoken.NewJWTService("test-key", "cdp-test")
	svc := service.New(store.NewInMemoryStore(), jwt,
		service.WithHasher(passwords.Hasher{Cost: bcrypt.MinCost}),
		service.WithTokenTTL(time.Hour),
	)
	_, err := svc.SeedAdmin(context.Background(), service.CreateInput{Email: "admin@cdp.sn", Password: "admin123"})
	require.NoError(t, err)
	all, err := svc.List(context.Background())
	require.NoError(t, err)

	h := New(svc, logger)
	r := chi.NewRouter()
	h.RegisterPublic(r)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(jwttoken.NewJWTServiceAdapter(jwt), logger))
		h.Register(r)
	})
	return fixture{router: r, admin: all[0]}
}

func (f fixture) login(t *testing.T, email, password string) string {
	t.Helper()
	rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/login",
		map[string]string{"email": email, "password": password}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return testutil.UnmarshalResponse[models.Session](t, rr).Token
}

func (f fixture) do(req *http.Request, token string) *httptest.ResponseRecorder {
	req.Header.Set("Authorization", "Bearer "+token)
	return testutil.DoRequest(f.router, req)
}

func TestLoginAndManageUsers(t *testing.T) {
	f := newFixture(t)
	var adminToken string
	var created models.User

	testutil.Given(t, "the seeded admin logs in", func(t *testing.T) {
		adminToken = f.login(t, "admin@cdp.sn", "admin123")
		rr := f.do(testutil.NewRequest(t, http.MethodGet, "/auth/me"), adminToken)
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "role", "admin")
		testutil.AssertJSONContains(t, rr, "seedAdmin", true)
	})

	testutil.When(t, "the admin creates an agent with the legacy role label", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/users", map[string]string{
			"email": "awa.diop@cdp.sn", "role": "agent cdp", "password": "motdepasse",
		})
		rr := f.do(req, adminToken)
		testutil.AssertStatus(t, rr, http.StatusCreated)
		created = *testutil.UnmarshalResponse[models.User](t, rr)
		assert.Equal(t, id.RoleAgentCDP, created.Role)
		assert.Equal(t, "Awa Diop", created.Nom)
		assert.NotContains(t, rr.Body.String(), "motdepasse")
	})

	testutil.Then(t, "the agent can log in but cannot manage users", func(t *testing.T) {
		agentToken := f.login(t, "awa.diop@cdp.sn", "motdepasse")
		rr := f.do(testutil.NewRequest(t, http.MethodGet, "/users"), agentToken)
		testutil.AssertStatus(t, rr, http.StatusForbidden)

		rr = f.do(testutil.NewRequest(t, http.MethodGet, "/users"), adminToken)
		testutil.AssertStatusOK(t, rr)
		assert.Equal(t, 2, testutil.UnmarshalResponse[listResponse](t, rr).Total)
	})

	t.Run("rotate password", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPatch, "/users/"+created.ID.String(), map[string]string{"password": "nouveaumdp"})
		testutil.AssertStatusOK(t, f.do(req, adminToken))
		f.login(t, "awa.diop@cdp.sn", "nouveaumdp")
	})

	t.Run("seeded admin cannot be deleted", func(t *testing.T) {
		rr := f.do(testutil.NewRequest(t, http.MethodDelete, "/users/"+f.admin.ID.String()), adminToken)
		testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")
	})

	t.Run("delete agent", func(t *testing.T) {
		rr := f.do(testutil.NewRequest(t, http.MethodDelete, "/users/"+created.ID.String()), adminToken)
		testutil.AssertStatus(t, rr, http.StatusNoContent)
		rr = f.do(testutil.NewRequest(t, http.MethodGet, "/users/"+created.ID.String()), adminToken)
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})
}

func TestLoginErrors(t *testing.T) {
	f := newFixture(t)

	t.Run("wrong password", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/login",
			map[string]string{"email": "admin@cdp.sn", "password": "devine-moi"}))
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("missing fields", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/login",
			map[string]string{"email": "admin@cdp.sn"}))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("no token", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/users"))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("invalid role", func(t *testing.T) {
		token := f.login(t, "admin@cdp.sn", "admin123")
		req := testutil.NewJSONRequest(t, http.MethodPost, "/users", map[string]string{
			"email": "x@cdp.sn", "role": "root", "password": "motdepasse",
		})
		testutil.AssertStatusAndError(t, f.do(req, token), http.StatusBadRequest, "invalid_input")
	})

	t.Run("forged token", func(t *testing.T) {
		forged, _, err := jwttoken.NewJWTService("other-key", "cdp-test").GenerateAccessToken(id.UserID(uuid.New()), id.RoleAdmin, time.Hour)
		require.NoError(t, err)
		rr := f.do(testutil.NewRequest(t, http.MethodGet, "/users"), forged)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})
}
