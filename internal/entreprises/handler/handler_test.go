package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdp/internal/entreprises/models"
	"cdp/internal/entreprises/service"
	"cdp/internal/entreprises/store"
	id "cdp/pkg/domain"
	"cdp/pkg/testutil"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	New(service.New(store.NewInMemoryStore()), slog.New(slog.DiscardHandler)).Register(r)
	return r
}

func as(router http.Handler, req *http.Request, role id.Role) *httptest.ResponseRecorder {
	return testutil.DoRequest(router, testutil.WithPrincipal(req, id.UserID(uuid.New()), role))
}

func create(t *testing.T, router http.Handler, body map[string]string) models.Entreprise {
	t.Helper()
	rr := as(router, testutil.NewJSONRequest(t, http.MethodPost, "/entreprises", body), id.RoleAgentCDP)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return *testutil.UnmarshalResponse[models.Entreprise](t, rr)
}

func TestEntrepriseCRUD(t *testing.T) {
	router := newRouter(t)
	sonatel := create(t, router, map[string]string{
		"nom": "Sonatel SA", "ninea": "001234567", "secteurActivite": "Télécommunications",
	})
	create(t, router, map[string]string{"nom": "Wave", "ninea": "005550001", "secteurActivite": "Finance"})

	t.Run("list with search", func(t *testing.T) {
		rr := as(router, testutil.NewRequest(t, http.MethodGet, "/entreprises?search=sonatel"), id.RoleAgentCDP)
		testutil.AssertStatusOK(t, rr)
		resp := testutil.UnmarshalResponse[listResponse](t, rr)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, sonatel.ID, resp.Entreprises[0].ID)
	})

	t.Run("secteurs", func(t *testing.T) {
		rr := as(router, testutil.NewRequest(t, http.MethodGet, "/entreprises/secteurs"), id.RoleAgentCDP)
		testutil.AssertStatusOK(t, rr)
		resp := testutil.UnmarshalResponse[map[string][]string](t, rr)
		assert.Equal(t, []string{"Finance", "Télécommunications"}, (*resp)["secteurs"])
	})

	t.Run("get", func(t *testing.T) {
		rr := as(router, testutil.NewRequest(t, http.MethodGet, "/entreprises/"+sonatel.ID.String()), id.RoleAdmin)
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "ninea", "001234567")
	})

	t.Run("duplicate NINEA", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/entreprises", map[string]string{"nom": "Copie", "ninea": "001234567"})
		rr := as(router, req, id.RoleAgentCDP)
		testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
	})

	t.Run("update status", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPatch, "/entreprises/"+sonatel.ID.String(), map[string]string{"statut": "suspendue"})
		rr := as(router, req, id.RoleAgentCDP)
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "statut", "suspendue")
	})

	t.Run("invalid status", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPatch, "/entreprises/"+sonatel.ID.String(), map[string]string{"statut": "fermée"})
		rr := as(router, req, id.RoleAgentCDP)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("delete", func(t *testing.T) {
		rr := as(router, testutil.NewRequest(t, http.MethodDelete, "/entreprises/"+sonatel.ID.String()), id.RoleAdmin)
		testutil.AssertStatus(t, rr, http.StatusNoContent)
		rr = as(router, testutil.NewRequest(t, http.MethodGet, "/entreprises/"+sonatel.ID.String()), id.RoleAdmin)
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})
}

func TestEntreprisePermissions(t *testing.T) {
	router := newRouter(t)

	rr := as(router, testutil.NewRequest(t, http.MethodGet, "/entreprises"), id.RoleDemandeur)
	testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/entreprises", map[string]string{"nom": "X", "ninea": "1"})
	rr = as(router, req, id.RoleDemandeur)
	testutil.AssertStatus(t, rr, http.StatusForbidden)
}

func TestCreateValidation(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/entreprises", map[string]string{"nom": "X", "ninea": "1", "dateInscription": "10/05/2023"})
	testutil.AssertStatus(t, as(router, req, id.RoleAdmin), http.StatusBadRequest)

	req = testutil.NewRequestWithBody(t, http.MethodPost, "/entreprises", `{"nom":"X","ninea":"1","inconnu":true}`)
	testutil.AssertStatusAndError(t, as(router, req, id.RoleAdmin), http.StatusBadRequest, "bad_request")
}
