package handler

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdp/internal/audit"
	id "cdp/pkg/domain"
	"cdp/pkg/testutil"
)

func TestRecent(t *testing.T) {
	pub := audit.NewPublisher(audit.NewInMemoryStore())
	for _, action := range []audit.Action{audit.ActionUserCreated, audit.ActionDemandeSubmitted, audit.ActionRecepisseIssued} {
		require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: action}))
	}
	r := chi.NewRouter()
	New(pub, slog.New(slog.DiscardHandler)).Register(r)
	admin := id.UserID(uuid.New())

	t.Run("newest first with limit", func(t *testing.T) {
		req := testutil.WithPrincipal(testutil.NewRequest(t, http.MethodGet, "/audit?limit=2"), admin, id.RoleAdmin)
		rr := testutil.DoRequest(r, req)
		testutil.AssertStatusOK(t, rr)
		resp := testutil.UnmarshalResponse[recentResponse](t, rr)
		require.Len(t, resp.Events, 2)
		assert.Equal(t, audit.ActionRecepisseIssued, resp.Events[0].Action)
		assert.Equal(t, audit.ActionDemandeSubmitted, resp.Events[1].Action)
	})

	t.Run("bad limit", func(t *testing.T) {
		req := testutil.WithPrincipal(testutil.NewRequest(t, http.MethodGet, "/audit?limit=0"), admin, id.RoleAdmin)
		testutil.AssertStatusAndError(t, testutil.DoRequest(r, req), http.StatusBadRequest, "bad_request")
	})

	t.Run("agents cannot read the trail", func(t *testing.T) {
		req := testutil.WithPrincipal(testutil.NewRequest(t, http.MethodGet, "/audit"), admin, id.RoleAgentCDP)
		testutil.AssertStatus(t, testutil.DoRequest(r, req), http.StatusForbidden)
	})
}
