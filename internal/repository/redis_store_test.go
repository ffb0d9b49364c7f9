package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/permit-backend/internal/models"
)

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, "permit:application:", time.Hour), mr
}

func TestRedisStore_CreateAndGet(t *testing.T) {
	store, mr := setupRedisStore(t)
	app := newTestApplication()

	require.NoError(t, store.Create(context.Background(), app))
	assert.Equal(t, time.Hour, mr.TTL("permit:application:"+app.ID.String()))

	loaded, err := store.Get(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, app.ID, loaded.ID)
	assert.Equal(t, models.PlatformAndroid, loaded.Platform)
	assert.Len(t, loaded.Checklist.Documents, 12)

	assert.Error(t, store.Create(context.Background(), app))
}

func TestRedisStore_GetRefreshesExpiry(t *testing.T) {
	store, mr := setupRedisStore(t)
	app := newTestApplication()
	require.NoError(t, store.Create(context.Background(), app))
	key := "permit:application:" + app.ID.String()

	mr.FastForward(45 * time.Minute)
	assert.Equal(t, 15*time.Minute, mr.TTL(key))

	_, err := store.Get(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, mr.TTL(key))

	mr.FastForward(45 * time.Minute)
	_, err = store.Get(context.Background(), app.ID)
	assert.NoError(t, err)
}

func TestRedisStore_GetMissing(t *testing.T) {
	store, _ := setupRedisStore(t)

	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Update(context.Background(), uuid.New(), func(*models.PermitApplication) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Update(t *testing.T) {
	store, mr := setupRedisStore(t)
	app := newTestApplication()
	require.NoError(t, store.Create(context.Background(), app))

	mr.FastForward(30 * time.Minute)

	updated, err := store.Update(context.Background(), app.ID, func(a *models.PermitApplication) error {
		_, err := a.Checklist.AttachFile("lot_plan", "lot.pdf", "https://files.example.com/lot.pdf")
		return err
	})
	require.NoError(t, err)

	doc, err := updated.Checklist.Find("lot_plan")
	require.NoError(t, err)
	assert.True(t, doc.IsUploaded)

	// the write refreshes the expiry
	assert.Equal(t, time.Hour, mr.TTL("permit:application:"+app.ID.String()))

	loaded, err := store.Get(context.Background(), app.ID)
	require.NoError(t, err)
	doc, err = loaded.Checklist.Find("lot_plan")
	require.NoError(t, err)
	assert.Equal(t, "lot.pdf", doc.FileName)
}

func TestRedisStore_UpdateDiscardsOnError(t *testing.T) {
	store, _ := setupRedisStore(t)
	app := newTestApplication()
	require.NoError(t, store.Create(context.Background(), app))

	_, err := store.Update(context.Background(), app.ID, func(a *models.PermitApplication) error {
		_, err := a.Checklist.View("survey")
		return err
	})
	assert.ErrorIs(t, err, models.ErrDocumentNotUploaded)

	loaded, err := store.Get(context.Background(), app.ID)
	require.NoError(t, err)
	assert.False(t, loaded.Checklist.Viewer.Visible)
}
