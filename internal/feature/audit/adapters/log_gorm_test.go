package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalog_backend/internal/feature/audit/domain/entity"
	userentity "catalog_backend/internal/feature/users/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&userentity.User{}, &LogModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func seedUsers(t *testing.T, db *gorm.DB) (*userentity.User, *userentity.User) {
	t.Helper()
	alice := &userentity.User{Name: "Alice", Email: "alice@example.com", Password: "x", Admin: true}
	bob := &userentity.User{Name: "Bob", Email: "bob@example.com", Password: "x"}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)
	return alice, bob
}

func TestLogGorm_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLogRepository(db)

	e := &entity.LogEntry{Operation: "insert product 1", Type: entity.KindInsert, UserID: 1}
	err := repo.Create(context.Background(), e)

	require.NoError(t, err)
	assert.NotZero(t, e.ID, "ID is not set")
	assert.False(t, e.Date.IsZero(), "Date is not set")

	var count int64
	db.Model(&LogModel{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestLogGorm_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLogRepository(db)
	alice, bob := seedUsers(t, db)
	ctx := context.Background()

	for _, e := range []entity.LogEntry{
		{Operation: "authenticated on API", Type: entity.KindInteract, UserID: alice.ID},
		{Operation: "insert product 1", Type: entity.KindInsert, UserID: alice.ID},
		{Operation: "authenticated on API", Type: entity.KindInteract, UserID: bob.ID},
		{Operation: "update product 1", Type: entity.KindUpdate, UserID: bob.ID},
	} {
		e := e
		require.NoError(t, repo.Create(ctx, &e))
	}

	t.Run("default is newest first with names", func(t *testing.T) {
		got, err := repo.List(ctx, entity.Filter{Order: entity.OrderDesc})

		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "update product 1", got[0].Operation)
		assert.Equal(t, "Bob", got[0].UserName)
		assert.Equal(t, "Alice", got[3].UserName)
		assert.Greater(t, got[0].ID, got[1].ID)
	})

	t.Run("ascending", func(t *testing.T) {
		got, err := repo.List(ctx, entity.Filter{Order: entity.OrderAsc})

		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Less(t, got[0].ID, got[1].ID)
	})

	t.Run("filters are AND-combined", func(t *testing.T) {
		got, err := repo.List(ctx, entity.Filter{Kind: entity.KindInteract, UserID: bob.ID})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, bob.ID, got[0].UserID)
		assert.Equal(t, entity.KindInteract, got[0].Type)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		got, err := repo.List(ctx, entity.Filter{Kind: entity.KindDelete})

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("limit and offset", func(t *testing.T) {
		got, err := repo.List(ctx, entity.Filter{Order: entity.OrderAsc, Limit: 2, Offset: 1})

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "insert product 1", got[0].Operation)
		assert.Equal(t, "authenticated on API", got[1].Operation)
	})

	t.Run("entries of a deleted user keep the name", func(t *testing.T) {
		require.NoError(t, db.Delete(bob).Error)

		got, err := repo.List(ctx, entity.Filter{UserID: bob.ID})

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Bob", got[0].UserName)
	})
}
