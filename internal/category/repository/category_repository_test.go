package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/domain"
	"storeadmin/internal/errors"
	"storeadmin/internal/testutil"
)

// Unit Tests

func TestNewPostgresCategoryRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewPostgresCategoryRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func TestCategoryRepository_InsertAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPostgresCategoryRepository(db)
	ctx := context.Background()

	id, err := repo.Insert(ctx, &domain.Category{
		Name:        "Snacks",
		ImageURL:    "/storage/categories/snacks.png",
		IsPublished: true,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	found, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Snacks", found.Name)
	assert.Equal(t, "/storage/categories/snacks.png", found.ImageURL)
	assert.True(t, found.IsPublished)
}

func TestCategoryRepository_FindAll_SortedByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPostgresCategoryRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Snacks", "Drinks", "Produce"} {
		_, err := repo.Insert(ctx, &domain.Category{Name: name})
		require.NoError(t, err)
	}

	categories, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Drinks", categories[0].Name)
	assert.Equal(t, "Produce", categories[1].Name)
	assert.Equal(t, "Snacks", categories[2].Name)
}

func TestCategoryRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPostgresCategoryRepository(db)
	ctx := context.Background()

	id, err := repo.Insert(ctx, &domain.Category{Name: "Snacks"})
	require.NoError(t, err)

	err = repo.Update(ctx, &domain.Category{ID: id, Name: "Sweet Snacks", IsPublished: true})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Sweet Snacks", found.Name)
	assert.True(t, found.IsPublished)
}

func TestCategoryRepository_UpdateNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPostgresCategoryRepository(db)

	err := repo.Update(context.Background(), &domain.Category{ID: 9999, Name: "Ghost"})
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestCategoryRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPostgresCategoryRepository(db)
	ctx := context.Background()

	id, err := repo.Insert(ctx, &domain.Category{Name: "Snacks"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))

	_, err = repo.FindByID(ctx, id)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
