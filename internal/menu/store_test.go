package menu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	base := t.TempDir()
	extracted := filepath.Join(base, "extracted")
	menus := filepath.Join(base, "menus")
	require.NoError(t, os.MkdirAll(extracted, 0o755))
	require.NoError(t, os.MkdirAll(menus, 0o755))
	return NewFileStore(extracted, menus, zap.NewNop())
}

func sampleRecord(name string) *Record {
	return &Record{
		RestaurantName: name,
		Items: []Item{
			{Name: "Chicken Curry", Price: "€9.50", Description: "spicy house special"},
			{Name: "Garlic Naan", Price: "€2.50", Description: "fresh from the tandoor"},
		},
		TotalItems:       2,
		ExtractionMethod: "gemini_text",
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("Chef India", sampleRecord("Chef India")))

	got, err := store.Load("Chef India")

	require.NoError(t, err)
	assert.Equal(t, "Chef India", got.RestaurantName)
	assert.Equal(t, 2, got.TotalItems)
	assert.Equal(t, "Chicken Curry", got.Items[0].Name)
}

func TestLoadMissingRestaurantReturnsErrNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load("Nowhere")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveRejectsNilRecord(t *testing.T) {
	store := newTestStore(t)

	assert.Error(t, store.Save("Chef India", nil))
}

func TestSaveSanitizesPathSeparators(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("../evil/name", sampleRecord("../evil/name")))

	names, err := store.ListNames()

	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.NotContains(t, names[0], "/")
	assert.NotContains(t, names[0], "..")
}

func TestListNamesEmptyStore(t *testing.T) {
	store := newTestStore(t)

	names, err := store.ListNames()

	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSearchItemsIsCaseInsensitive(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("Chef India", sampleRecord("Chef India")))

	items, err := store.SearchItems("Chef India", "CHICKEN")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Chicken Curry", items[0].Name)
}

func TestSearchItemsMatchesDescription(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("Chef India", sampleRecord("Chef India")))

	items, err := store.SearchItems("Chef India", "tandoor")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Garlic Naan", items[0].Name)
}

func TestSearchItemsEmptyQueryReturnsAll(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("Chef India", sampleRecord("Chef India")))

	items, err := store.SearchItems("Chef India", "")

	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSearchItemsMissingRestaurantReturnsEmpty(t *testing.T) {
	store := newTestStore(t)

	items, err := store.SearchItems("Nowhere", "chicken")

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSearchAllTagsRestaurant(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("Chef India", sampleRecord("Chef India")))
	require.NoError(t, store.Save("Bistro", &Record{
		RestaurantName: "Bistro",
		Items:          []Item{{Name: "Chicken Soup", Price: "€5.50"}},
		TotalItems:     1,
	}))

	results, err := store.SearchAll("chicken")

	require.NoError(t, err)
	require.Len(t, results, 2)

	restaurants := map[string]bool{}
	for _, r := range results {
		restaurants[r.Restaurant] = true
	}
	assert.True(t, restaurants["Chef India"])
	assert.True(t, restaurants["Bistro"])
}

func TestDeleteRemovesJSONAndPDF(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("Chef India", sampleRecord("Chef India")))
	require.NoError(t, os.WriteFile(store.PDFPath("Chef India"), []byte("%PDF"), 0o644))

	require.NoError(t, store.Delete("Chef India"))

	_, err := store.Load("Chef India")
	assert.ErrorIs(t, err, ErrNotFound)
	_, statErr := os.Stat(store.PDFPath("Chef India"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteMissingRestaurantReturnsErrNotFound(t *testing.T) {
	store := newTestStore(t)

	assert.ErrorIs(t, store.Delete("Nowhere"), ErrNotFound)
}

func TestClearAllEmptiesTheStore(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("Chef India", sampleRecord("Chef India")))
	require.NoError(t, store.Save("Bistro", sampleRecord("Bistro")))
	require.NoError(t, os.WriteFile(store.PDFPath("Chef India"), []byte("%PDF"), 0o644))

	require.NoError(t, store.ClearAll())

	names, err := store.ListNames()
	require.NoError(t, err)
	assert.Empty(t, names)

	_, loadErr := store.Load("Chef India")
	assert.ErrorIs(t, loadErr, ErrNotFound)
}

func TestDataSizeCountsStoredBytes(t *testing.T) {
	store := newTestStore(t)
	assert.Zero(t, store.DataSize())

	require.NoError(t, store.Save("Chef India", sampleRecord("Chef India")))
	assert.Positive(t, store.DataSize())
}
