//go:build integration

package drafts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"cdp/internal/forms"
	"cdp/pkg/testutil/containers"
)

func TestStoreRedis(t *testing.T) {
	mgr := containers.GetManager()
	rc := mgr.GetRedis(t)
	suite.Run(t, &StoreSuite{newKV: func(t *testing.T) KV {
		if err := rc.FlushAll(context.Background()); err != nil {
			t.Fatalf("flush redis: %v", err)
		}
		return NewRedisKV(rc.Client)
	}})
}

func TestStorePostgres(t *testing.T) {
	mgr := containers.GetManager()
	pg := mgr.GetPostgres(t)
	suite.Run(t, &StoreSuite{newKV: func(t *testing.T) KV {
		if err := pg.TruncateTables(context.Background(), "form_drafts"); err != nil {
			t.Fatalf("truncate: %v", err)
		}
		return NewPostgresKV(pg.DB)
	}})
}

func TestRedisDraftHasNoExpiry(t *testing.T) {
	rc := containers.GetManager().GetRedis(t)
	ctx := context.Background()
	store := New(NewRedisKV(rc.Client))

	if err := store.Save(ctx, "user-ttl", forms.TypeAutorisation, forms.Answers{"ville": "Dakar"}); err != nil {
		t.Fatal(err)
	}
	ttl, err := rc.Client.TTL(ctx, Key("user-ttl", forms.TypeAutorisation)).Result()
	if err != nil {
		t.Fatal(err)
	}
	if ttl != -1 {
		t.Fatalf("expected no expiry, got %v", ttl)
	}
}
