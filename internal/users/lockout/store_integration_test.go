//go:build integration

package lockout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"cdp/pkg/testutil/containers"
)

func TestLockoutRedis(t *testing.T) {
	rc := containers.GetManager().GetRedis(t)
	suite.Run(t, &LockoutSuite{newStore: func(t *testing.T) Store {
		require.NoError(t, rc.FlushAll(context.Background()))
		return NewRedisStore(rc.Client)
	}})
}

func TestRedisRecordExpires(t *testing.T) {
	rc := containers.GetManager().GetRedis(t)
	ctx := context.Background()
	svc := New(NewRedisStore(rc.Client), WithConfig(Config{MaxAttempts: 3, Window: time.Minute, LockDuration: time.Minute}))

	_, err := svc.RecordFailure(ctx, "awa@cdp.sn", "10.0.0.1")
	require.NoError(t, err)
	ttl, err := rc.Client.TTL(ctx, Key("awa@cdp.sn", "10.0.0.1")).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))
	require.LessOrEqual(t, ttl, time.Minute)
}
