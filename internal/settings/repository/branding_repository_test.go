package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/domain"
	"storeadmin/internal/testutil"
)

func TestBrandingRepository_EmptyDocumentOnFreshInstall(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPostgresBrandingRepository(db)

	branding, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, branding.SiteTitle)
	assert.Empty(t, branding.Menu)
}

func TestBrandingRepository_SaveAndGetRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPostgresBrandingRepository(db)
	ctx := context.Background()

	doc := &domain.Branding{
		SiteTitle: "Corner Store",
		Tagline:   "Fresh every day",
		Menu:      []domain.MenuLabel{{Key: "home", Label: "Home"}},
		FAQ:       []domain.FAQEntry{{Question: "Do you deliver?", Answer: "Yes."}},
		Carousels: []domain.Carousel{{Title: "New Arrivals", Category: "Snacks", Limit: 8}},
	}
	require.NoError(t, repo.Save(ctx, doc))

	found, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Corner Store", found.SiteTitle)
	require.Len(t, found.Menu, 1)
	assert.Equal(t, "Home", found.Menu[0].Label)
	require.Len(t, found.Carousels, 1)
	assert.Equal(t, 8, found.Carousels[0].Limit)

	// Saving again overwrites the single row.
	doc.SiteTitle = "Corner Store 2"
	require.NoError(t, repo.Save(ctx, doc))

	found, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Corner Store 2", found.SiteTitle)
}

func TestBrandingRepository_ColumnsWinOverDocumentMetadata(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPostgresBrandingRepository(db)
	ctx := context.Background()

	// A client can round-trip a document that still embeds the id and
	// updated_at it was loaded with.
	stale := &domain.Branding{
		ID:        42,
		SiteTitle: "Corner Store",
		UpdatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Save(ctx, stale))

	found, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Corner Store", found.SiteTitle)
	assert.Equal(t, 1, found.ID, "the row id, not the embedded one")
	assert.WithinDuration(t, time.Now(), found.UpdatedAt, time.Minute,
		"updated_at comes from the column written at save time")
}
