package services_test

import (
	"testing"

	"todo-tracker/backend/internal/cache"
	"todo-tracker/backend/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCachedService(t *testing.T) (*miniredis.Miniredis, *services.CachedTaskService) {
	t.Helper()

	mr := miniredis.RunT(t)
	redisCache := cache.NewRedisCache(&cache.Config{Addr: mr.Addr()})
	t.Cleanup(func() { redisCache.Close() })

	return mr, services.NewCachedTaskService(services.NewTaskService(), redisCache)
}

func TestCachedGetTask_ServesFromCache(t *testing.T) {
	db := setupTestDB(t)
	_, svc := setupCachedService(t)
	user := createTestUser(t, db, "user1")
	created := createTestTask(t, db, svc, user.ID, "Cache me")

	// First read populates the cache.
	first, err := svc.GetTask(db, user.ID, created.ID)
	require.NoError(t, err)

	// Mutate the row behind the service's back; a cached read won't see it.
	require.NoError(t, db.Exec("UPDATE tasks SET title = 'changed underneath' WHERE id = ?", created.ID).Error)

	second, err := svc.GetTask(db, user.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Title, second.Title)
}

func TestCachedService_InvalidatesOnWrite(t *testing.T) {
	db := setupTestDB(t)
	_, svc := setupCachedService(t)
	user := createTestUser(t, db, "user1")
	created := createTestTask(t, db, svc, user.ID, "Original")

	_, err := svc.GetTask(db, user.ID, created.ID)
	require.NoError(t, err)

	status := "COMPLETED"
	_, err = svc.PatchTask(db, user.ID, created.ID, services.TaskPatch{Status: &status})
	require.NoError(t, err)

	got, err := svc.GetTask(db, user.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", got.Status)
}

func TestCachedListTasks_NormalizesSortParams(t *testing.T) {
	db := setupTestDB(t)
	_, svc := setupCachedService(t)
	user := createTestUser(t, db, "user1")
	createTestTask(t, db, svc, user.ID, "First")

	// Warm the list cache with unrecognized sort parameters; they must land
	// on the same key a write invalidates.
	first, err := svc.ListTasks(db, user.ID, "bogus", "DESC")
	require.NoError(t, err)
	require.Len(t, first, 1)

	createTestTask(t, db, svc, user.ID, "Second")

	second, err := svc.ListTasks(db, user.ID, "bogus", "DESC")
	require.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestCachedService_KeysAreOwnerScoped(t *testing.T) {
	db := setupTestDB(t)
	_, svc := setupCachedService(t)
	user1 := createTestUser(t, db, "user1")
	user2 := createTestUser(t, db, "user2")
	created := createTestTask(t, db, svc, user1.ID, "Private")

	// Warm user1's cache entry, then confirm user2 still gets not-found.
	_, err := svc.GetTask(db, user1.ID, created.ID)
	require.NoError(t, err)

	_, err = svc.GetTask(db, user2.ID, created.ID)
	assert.Error(t, err)
}

func TestCachedService_NilCachePassesThrough(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewCachedTaskService(services.NewTaskService(), nil)
	user := createTestUser(t, db, "user1")
	created := createTestTask(t, db, svc, user.ID, "No cache")

	got, err := svc.GetTask(db, user.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}
