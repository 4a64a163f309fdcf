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

func TestNewPostgresProductRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewPostgresProductRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func testProduct() *domain.Product {
	return &domain.Product{
		Name:        "Cold Brew",
		Price:       4.5,
		Category:    "Drinks",
		IsPublished: true,
		Labels:      []string{"new", "vegan"},
		Images: []domain.ProductImage{
			{URL: "/storage/products/cold-brew-1.png", Position: 0},
			{URL: "/storage/products/cold-brew-2.png", Position: 1},
		},
		Descriptions: []domain.DescriptionBlock{
			{Title: "About", Content: "Slow steeped.", Position: 0},
		},
		Variants: []domain.Variant{
			{
				Name: "Size",
				Options: []domain.VariantOption{
					{Name: "Small", Price: 4.5, IsPublished: true, IsDefault: true},
					{Name: "Large", Price: 5.5, IsPublished: true},
				},
			},
		},
	}
}

func TestProductRepository_InsertAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPostgresProductRepository(db)
	ctx := context.Background()

	id, err := repo.Insert(ctx, testProduct())
	require.NoError(t, err)
	require.NotZero(t, id)

	found, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Cold Brew", found.Name)
	assert.Equal(t, 4.5, found.Price)
	assert.Equal(t, "Drinks", found.Category)
	assert.Equal(t, []string{"new", "vegan"}, found.Labels)
	require.Len(t, found.Images, 2)
	assert.Equal(t, "/storage/products/cold-brew-1.png", found.Images[0].URL)
	require.Len(t, found.Descriptions, 1)
	assert.Equal(t, "About", found.Descriptions[0].Title)
	require.Len(t, found.Variants, 1)
	require.Len(t, found.Variants[0].Options, 2)
	assert.Equal(t, "Small", found.Variants[0].Options[0].Name)
	assert.True(t, found.Variants[0].Options[0].IsDefault)
}

func TestProductRepository_UpdateReplacesChildren(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPostgresProductRepository(db)
	ctx := context.Background()

	id, err := repo.Insert(ctx, testProduct())
	require.NoError(t, err)

	updated := testProduct()
	updated.ID = id
	updated.Name = "Nitro Cold Brew"
	updated.Images = []domain.ProductImage{{URL: "/storage/products/nitro.png", Position: 0}}
	updated.Variants = nil
	require.NoError(t, repo.Update(ctx, updated))

	found, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Nitro Cold Brew", found.Name)
	require.Len(t, found.Images, 1)
	assert.Equal(t, "/storage/products/nitro.png", found.Images[0].URL)
	assert.Empty(t, found.Variants)
}

func TestProductRepository_DetachCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPostgresProductRepository(db)
	ctx := context.Background()

	first := testProduct()
	second := testProduct()
	second.Name = "Espresso"
	third := testProduct()
	third.Name = "Bagel"
	third.Category = "Bakery"

	for _, p := range []*domain.Product{first, second, third} {
		_, err := repo.Insert(ctx, p)
		require.NoError(t, err)
	}

	detached, err := repo.DetachCategory(ctx, "Drinks")
	require.NoError(t, err)
	assert.Equal(t, int64(2), detached)

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)
	for _, p := range products {
		if p.Name == "Bagel" {
			assert.Equal(t, "Bakery", p.Category)
		} else {
			assert.Empty(t, p.Category)
		}
	}
}

func TestProductRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPostgresProductRepository(db)
	ctx := context.Background()

	id, err := repo.Insert(ctx, testProduct())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))

	_, err = repo.FindByID(ctx, id)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestProductRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPostgresProductRepository(db)

	_, err := repo.FindByID(context.Background(), 9999)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
