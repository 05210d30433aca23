package filmdesk

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmdesk/filmdesk/pkg/analytics"
	"github.com/filmdesk/filmdesk/pkg/catalog"
	"github.com/filmdesk/filmdesk/pkg/errors"
	"github.com/filmdesk/filmdesk/pkg/recommend"
	"github.com/filmdesk/filmdesk/pkg/sales"
	"github.com/filmdesk/filmdesk/pkg/users"
)

var testClock = func() time.Time {
	return time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)
}

func newTestDesk(t *testing.T, opts ...Option) (Filmdesk, string) {
	t.Helper()
	dir := t.TempDir()
	opts = append([]Option{WithDataDir(dir), WithClock(testClock)}, opts...)
	desk, err := New(opts...)
	require.NoError(t, err)
	return desk, dir
}

func duneFilm() catalog.Film {
	return catalog.Film{
		Title:     "Dune",
		Category:  "Sci-Fi",
		Year:      2021,
		Stock:     5,
		UnitPrice: 10.0,
	}
}

func TestNewStartsEmptyOnFreshDirectory(t *testing.T) {
	desk, dir := newTestDesk(t)

	assert.Equal(t, 0, desk.Catalog().Len())
	assert.Equal(t, 0, desk.Users().Len())
	assert.Equal(t, 0, desk.Ledger().Len())

	// All three documents were created as empty arrays.
	for _, name := range []string{CatalogDocument, UsersDocument, SalesDocument} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "document %s should exist", name)
	}
}

func TestNewToleratesMalformedDocuments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CatalogDocument), []byte("garbage"), 0644))

	desk, err := New(WithDataDir(dir))
	require.NoError(t, err)
	assert.Equal(t, 0, desk.Catalog().Len())
}

func TestRateUpdatesScoreAndBothRatingMaps(t *testing.T) {
	desk, dir := newTestDesk(t)
	require.NoError(t, desk.AddFilm(duneFilm()))
	_, err := desk.CreateUser("alice")
	require.NoError(t, err)

	require.NoError(t, desk.Rate("Dune", "alice", 8))

	film, err := desk.Catalog().Get("Dune")
	require.NoError(t, err)
	assert.Equal(t, 8.0, film.Score)
	assert.Equal(t, 8.0, film.RatingMap["alice"])

	user, err := desk.ResolveUser("alice")
	require.NoError(t, err)
	rating, ok := user.Rating("Dune")
	require.True(t, ok)
	assert.Equal(t, 8.0, rating)

	// Both documents reflect the rating after reload.
	reloaded, err := New(WithDataDir(dir))
	require.NoError(t, err)
	film, err = reloaded.Catalog().Get("Dune")
	require.NoError(t, err)
	assert.Equal(t, 8.0, film.RatingMap["alice"])
	user, err = reloaded.ResolveUser("alice")
	require.NoError(t, err)
	assert.Equal(t, 8.0, user.RatingMap["Dune"])
}

func TestRateSecondRatingReplaces(t *testing.T) {
	desk, _ := newTestDesk(t)
	require.NoError(t, desk.AddFilm(duneFilm()))

	require.NoError(t, desk.Rate("Dune", "alice", 8))
	require.NoError(t, desk.Rate("Dune", "alice", 4))

	film, err := desk.Catalog().Get("Dune")
	require.NoError(t, err)
	assert.Len(t, film.RatingMap, 1)
	assert.Equal(t, 4.0, film.Score)
}

func TestRateCreatesMissingUserRecord(t *testing.T) {
	desk, _ := newTestDesk(t)
	require.NoError(t, desk.AddFilm(duneFilm()))

	// No explicit user create: the rating flow backfills the record.
	require.NoError(t, desk.Rate("Dune", "bob", 7))

	user, err := desk.ResolveUser("bob")
	require.NoError(t, err)
	assert.Equal(t, 7.0, user.RatingMap["Dune"])
}

func TestRateRejectsBlankUsername(t *testing.T) {
	desk, _ := newTestDesk(t)
	require.NoError(t, desk.AddFilm(duneFilm()))

	err := desk.Rate("Dune", "  ", 7)
	assert.True(t, errors.IsValidationError(err), "expected validation error, got %v", err)
}

func TestRecordSale(t *testing.T) {
	desk, dir := newTestDesk(t)
	require.NoError(t, desk.AddFilm(duneFilm()))
	_, err := desk.CreateUser("alice")
	require.NoError(t, err)

	sale, err := desk.RecordSale("Dune", 3, "alice")
	require.NoError(t, err)

	assert.Equal(t, "Dune", sale.Title)
	assert.Equal(t, "alice", sale.Seller)
	assert.Equal(t, 3, sale.Quantity)
	assert.Equal(t, 10.0, sale.UnitPrice)
	assert.Equal(t, 30.0, sale.Total)
	assert.Equal(t, "2024-06-01 14:30:00", sale.Timestamp.String())

	film, err := desk.Catalog().Get("Dune")
	require.NoError(t, err)
	assert.Equal(t, 2, film.Stock)
	assert.Equal(t, 1, desk.Ledger().Len())

	// Both documents reflect the sale after reload.
	reloaded, err := New(WithDataDir(dir))
	require.NoError(t, err)
	film, err = reloaded.Catalog().Get("Dune")
	require.NoError(t, err)
	assert.Equal(t, 2, film.Stock)
	recorded := reloaded.Ledger().List()
	require.Len(t, recorded, 1)
	assert.Equal(t, 30.0, recorded[0].Total)

	revenue := analytics.RevenueByDay(recorded)
	assert.Equal(t, 30.0, revenue["2024-06-01"])
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	desk, _ := newTestDesk(t)
	film := duneFilm()
	film.Stock = 2
	require.NoError(t, desk.AddFilm(film))

	_, err := desk.RecordSale("Dune", 10, "alice")
	require.True(t, errors.IsInsufficientStock(err), "expected insufficient stock, got %v", err)

	// Nothing changed: stock intact, ledger empty.
	got, err := desk.Catalog().Get("Dune")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)
	assert.Equal(t, 0, desk.Ledger().Len())
}

func TestRecordSaleExactStockReachesZero(t *testing.T) {
	desk, _ := newTestDesk(t)
	film := duneFilm()
	film.Stock = 2
	require.NoError(t, desk.AddFilm(film))

	_, err := desk.RecordSale("Dune", 2, "alice")
	require.NoError(t, err)

	got, err := desk.Catalog().Get("Dune")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)

	// Zero stock stays listed but cannot be sold.
	_, err = desk.RecordSale("Dune", 1, "alice")
	assert.True(t, errors.IsInsufficientStock(err), "expected insufficient stock, got %v", err)
}

func TestRecordSaleValidation(t *testing.T) {
	desk, _ := newTestDesk(t)
	require.NoError(t, desk.AddFilm(duneFilm()))

	_, err := desk.RecordSale("Nonexistent", 1, "alice")
	assert.True(t, errors.IsNotFound(err), "expected not found, got %v", err)

	for _, qty := range []int{0, -1} {
		_, err := desk.RecordSale("Dune", qty, "alice")
		assert.True(t, errors.IsValidationError(err), "quantity %d: expected validation error, got %v", qty, err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	desk, _ := newTestDesk(t)
	require.NoError(t, desk.AddFilm(duneFilm()))
	require.NoError(t, desk.AddFilm(catalog.Film{Title: "Alien", Category: "Horror", Year: 1979, Stock: 1, UnitPrice: 8.5}))
	require.NoError(t, desk.Rate("Dune", "alice", 9))

	exportPath := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, desk.ExportCatalog(exportPath))

	before := desk.Catalog().Records()

	other, _ := newTestDesk(t)
	require.NoError(t, other.ImportCatalog(exportPath))

	if diff := cmp.Diff(before, other.Catalog().Records()); diff != "" {
		t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImportCatalogRejectsMalformedFile(t *testing.T) {
	desk, _ := newTestDesk(t)
	require.NoError(t, desk.AddFilm(duneFilm()))

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not an array"), 0644))

	err := desk.ImportCatalog(path)
	assert.True(t, errors.IsValidationError(err), "expected validation error, got %v", err)
	// Catalog untouched.
	assert.Equal(t, 1, desk.Catalog().Len())

	err = desk.ImportCatalog(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.IsPersistence(err), "expected persistence error, got %v", err)
}

func TestImportCatalogReplacesWholesale(t *testing.T) {
	desk, dir := newTestDesk(t)
	require.NoError(t, desk.AddFilm(duneFilm()))

	path := filepath.Join(t.TempDir(), "import.json")
	imported := []catalog.Film{{Title: "Alien", Category: "Horror", Year: 1979, Stock: 1, UnitPrice: 8.5}}
	data, err := json.Marshal(imported)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	require.NoError(t, desk.ImportCatalog(path))
	assert.Equal(t, 1, desk.Catalog().Len())
	_, err = desk.Catalog().Get("Dune")
	assert.True(t, errors.IsNotFound(err))

	// The canonical document now matches the imported state.
	reloaded, err := New(WithDataDir(dir))
	require.NoError(t, err)
	_, err = reloaded.Catalog().Get("Alien")
	assert.NoError(t, err)
}

func TestSortCatalogIsNotPersistedOnItsOwn(t *testing.T) {
	desk, dir := newTestDesk(t)
	require.NoError(t, desk.AddFilm(catalog.Film{Title: "Zodiac", Category: "Crime", Year: 2007}))
	require.NoError(t, desk.AddFilm(catalog.Film{Title: "Alien", Category: "Horror", Year: 1979}))

	require.NoError(t, desk.SortCatalog(catalog.SortByTitle))
	assert.Equal(t, "Alien", desk.Catalog().List()[0].Title)

	// The document still holds insertion order until the next mutation.
	reloaded, err := New(WithDataDir(dir))
	require.NoError(t, err)
	assert.Equal(t, "Zodiac", reloaded.Catalog().List()[0].Title)
}

func TestRecommendRequiresKnownUser(t *testing.T) {
	desk, _ := newTestDesk(t)

	_, err := desk.Recommend(context.Background(), "ghost")
	assert.True(t, errors.IsNotFound(err), "expected not found, got %v", err)
}

// deskRunner simulates the engine against the desk's artifact paths.
type deskRunner struct {
	dir string
}

func (r *deskRunner) Run(ctx context.Context) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, RequestArtifact))
	if err != nil {
		return "", err
	}
	var req recommend.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return "", err
	}
	resp := recommend.Response{
		Target:          req.Target,
		Recommendations: []recommend.Recommendation{{Title: "Blade Runner"}},
	}
	out, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	return "", os.WriteFile(filepath.Join(r.dir, ResponseArtifact), out, 0644)
}

func TestRecommendRoundTrip(t *testing.T) {
	dir := t.TempDir()
	desk, err := New(
		WithDataDir(dir),
		WithClock(testClock),
		WithRunner(&deskRunner{dir: dir}),
	)
	require.NoError(t, err)

	_, err = desk.CreateUser("alice")
	require.NoError(t, err)

	recs, err := desk.Recommend(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Blade Runner", recs[0].Title)
}

func TestSaveRewritesAllDocuments(t *testing.T) {
	desk, dir := newTestDesk(t)
	require.NoError(t, desk.AddFilm(duneFilm()))
	_, err := desk.CreateUser("alice")
	require.NoError(t, err)
	_, err = desk.RecordSale("Dune", 1, "alice")
	require.NoError(t, err)

	// Remove the documents, then Save must recreate all three.
	for _, name := range []string{CatalogDocument, UsersDocument, SalesDocument} {
		require.NoError(t, os.Remove(filepath.Join(dir, name)))
	}
	require.NoError(t, desk.Save())

	reloaded, err := New(WithDataDir(dir))
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Catalog().Len())
	assert.Equal(t, 1, reloaded.Users().Len())
	assert.Equal(t, 1, reloaded.Ledger().Len())
}

func TestCreateUserPersists(t *testing.T) {
	desk, dir := newTestDesk(t)
	user, err := desk.CreateUser("alice")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)

	reloaded, err := New(WithDataDir(dir))
	require.NoError(t, err)
	found, err := reloaded.ResolveUser("alice")
	require.NoError(t, err)
	assert.Equal(t, 1, found.ID)
}

func TestLoadedRecordsBackfillNilMaps(t *testing.T) {
	dir := t.TempDir()

	// Documents written by hand without ratingMap keys.
	films := []map[string]any{{"title": "Dune", "category": "Sci-Fi", "year": 2021, "stock": 1, "unitPrice": 10.0}}
	data, err := json.Marshal(films)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, CatalogDocument), data, 0644))

	userDoc := []users.User{{ID: 1, Username: "alice"}}
	data, err = json.Marshal(userDoc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, UsersDocument), data, 0644))

	desk, err := New(WithDataDir(dir))
	require.NoError(t, err)

	require.NoError(t, desk.Rate("Dune", "alice", 6))
	film, err := desk.Catalog().Get("Dune")
	require.NoError(t, err)
	assert.Equal(t, 6.0, film.RatingMap["alice"])
}

func TestSaleTimestampDocumentFormat(t *testing.T) {
	desk, dir := newTestDesk(t)
	require.NoError(t, desk.AddFilm(duneFilm()))
	_, err := desk.RecordSale("Dune", 1, "alice")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, SalesDocument))
	require.NoError(t, err)

	var recorded []sales.Sale
	require.NoError(t, json.Unmarshal(data, &recorded))
	require.Len(t, recorded, 1)
	assert.Equal(t, "2024-06-01 14:30:00", recorded[0].Timestamp.String())
	assert.Contains(t, string(data), `"2024-06-01 14:30:00"`)
}
