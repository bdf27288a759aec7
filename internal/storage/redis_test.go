package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwright-games/worldweaver/pkg/adventure"
	"github.com/jwright-games/worldweaver/pkg/locale"
	"github.com/jwright-games/worldweaver/pkg/world"
)

func setupTestRedis(t *testing.T) *RedisStorage {
	t.Helper()

	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewRedisStorage(mr.Addr(), logger)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestRedisStorage_WorldRoundTrip(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	w := world.New("drowned-march", locale.English)
	w.Title = "The Drowned March"
	w.Disclose("the sunken chapel")
	w.Player.ApplyHealthDelta(-20)

	require.NoError(t, store.SaveWorld(ctx, w))

	loaded, err := store.LoadWorld(ctx, "drowned-march")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, "The Drowned March", loaded.Title)
	assert.True(t, loaded.HasDisclosed("the sunken chapel"))
	assert.Equal(t, 80, loaded.Player.Health())
	assert.False(t, loaded.UpdatedAt.IsZero())
}

func TestRedisStorage_SaveWorldOverwrites(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	w := world.New("same-name", locale.English)
	w.Title = "First"
	require.NoError(t, store.SaveWorld(ctx, w))

	w2 := world.New("same-name", locale.English)
	w2.Title = "Second"
	require.NoError(t, store.SaveWorld(ctx, w2))

	loaded, err := store.LoadWorld(ctx, "same-name")
	require.NoError(t, err)
	assert.Equal(t, "Second", loaded.Title)

	names, err := store.ListWorlds(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"same-name"}, names)
}

func TestRedisStorage_LoadMissingWorld(t *testing.T) {
	store := setupTestRedis(t)

	loaded, err := store.LoadWorld(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_SaveWorldRequiresName(t *testing.T) {
	store := setupTestRedis(t)
	err := store.SaveWorld(context.Background(), &world.World{})
	assert.Error(t, err)
}

func TestRedisStorage_SessionRoundTrip(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	w := world.New("drowned-march", locale.English)
	sess := adventure.NewSession(w)
	sess.History = append(sess.History, adventure.Turn{Player: locale.StartSentinel, DM: "The bell rings."})
	sess.Round = 1
	sess.Options = []string{"Press on", "Turn back"}

	require.NoError(t, store.SaveSession(ctx, sess))

	loaded, err := store.LoadSession(ctx, "drowned-march")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, sess.ID, loaded.ID)
	assert.Equal(t, adventure.StatusInProgress, loaded.Status())
	require.Len(t, loaded.History, 1)
	assert.Equal(t, "The bell rings.", loaded.History[0].DM)
	assert.Equal(t, []string{"Press on", "Turn back"}, loaded.Options)
}

func TestRedisStorage_DeleteWorldRemovesSession(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	w := world.New("doomed", locale.English)
	require.NoError(t, store.SaveWorld(ctx, w))
	require.NoError(t, store.SaveSession(ctx, adventure.NewSession(w)))

	require.NoError(t, store.DeleteWorld(ctx, "doomed"))

	loadedW, err := store.LoadWorld(ctx, "doomed")
	require.NoError(t, err)
	assert.Nil(t, loadedW)

	loadedS, err := store.LoadSession(ctx, "doomed")
	require.NoError(t, err)
	assert.Nil(t, loadedS)
}

func TestRedisStorage_ListWorldsIgnoresSessions(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	a := world.New("alpha", locale.English)
	b := world.New("beta", locale.Chinese)
	require.NoError(t, store.SaveWorld(ctx, a))
	require.NoError(t, store.SaveWorld(ctx, b))
	require.NoError(t, store.SaveSession(ctx, adventure.NewSession(a)))

	names, err := store.ListWorlds(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, names)
}
