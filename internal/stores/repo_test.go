package stores

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storegrade/storegrade-backend/pkg/db/models"
)

const testViewSQL = `
CREATE VIEW store_ratings AS
SELECT
    s.id AS store_id,
    s.owner_id AS owner_id,
    s.name AS name,
    s.email AS email,
    s.address AS address,
    COALESCE(ROUND(AVG(r.rating), 2), 0) AS average_rating,
    COUNT(r.id) AS total_ratings,
    s.created_at AS created_at
FROM stores s
LEFT JOIN ratings r ON r.store_id = s.id
GROUP BY s.id, s.owner_id, s.name, s.email, s.address, s.created_at`

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.Store{}, &models.Rating{}))
	require.NoError(t, gdb.Exec(testViewSQL).Error)
	t.Cleanup(func() {
		sqlDB, _ := gdb.DB()
		_ = sqlDB.Close()
	})
	return gdb
}

func seedStoreRow(t *testing.T, gdb *gorm.DB, name, address string) *models.Store {
	t.Helper()

	store := &models.Store{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Name:    name,
		Email:   name + "@example.com",
		Address: address,
	}
	require.NoError(t, gdb.Create(store).Error)
	return store
}

func seedRatingRow(t *testing.T, gdb *gorm.DB, storeID uuid.UUID, value int) {
	t.Helper()
	require.NoError(t, gdb.Create(&models.Rating{
		ID:      uuid.New(),
		UserID:  uuid.New(),
		StoreID: storeID,
		Rating:  value,
	}).Error)
}

func TestListView_SearchFiltersNameAndAddress(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	seedStoreRow(t, gdb, "Corner Deli", "12 Oak Street")
	seedStoreRow(t, gdb, "Harbor Cafe", "5 Corner Plaza")
	seedStoreRow(t, gdb, "Bookworks", "9 Elm Road")

	rows, err := repo.ListView(ctx, "Corner")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Corner Deli", rows[0].Name)
	assert.Equal(t, "Harbor Cafe", rows[1].Name)

	all, err := repo.ListView(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFindViewByID_CarriesAggregate(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	store := seedStoreRow(t, gdb, "Corner Deli", "12 Oak Street")
	seedRatingRow(t, gdb, store.ID, 5)
	seedRatingRow(t, gdb, store.ID, 4)

	row, err := repo.FindViewByID(ctx, store.ID)
	require.NoError(t, err)
	assert.Equal(t, store.ID, row.StoreID)
	assert.InDelta(t, 4.5, row.AverageRating, 0.001)
	assert.Equal(t, int64(2), row.TotalRatings)
}

func TestFindViewByOwner_OnlyOwnerRows(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	mine := seedStoreRow(t, gdb, "Corner Deli", "12 Oak Street")
	seedStoreRow(t, gdb, "Harbor Cafe", "5 Corner Plaza")

	rows, err := repo.FindViewByOwner(ctx, mine.OwnerID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, mine.ID, rows[0].StoreID)
}

func TestDelete_RemovesStoreRow(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	store := seedStoreRow(t, gdb, "Corner Deli", "12 Oak Street")
	require.NoError(t, repo.Delete(ctx, store.ID))

	_, err := repo.FindByID(ctx, store.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
