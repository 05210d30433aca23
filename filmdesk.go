// Package filmdesk manages a film catalog with per-user ratings, an
// append-only sales ledger with inventory depletion, and a bridge to an
// external recommendation engine. State lives in flat JSON documents
// that are reloaded on startup and rewritten after every mutating
// operation.
//
// A Filmdesk instance is explicit owned state constructed once per
// process; there are no hidden globals. It assumes a single writer:
// callers must serialize mutating operations.
package filmdesk

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/filmdesk/filmdesk/pkg/catalog"
	"github.com/filmdesk/filmdesk/pkg/errors"
	"github.com/filmdesk/filmdesk/pkg/logging"
	"github.com/filmdesk/filmdesk/pkg/persist"
	"github.com/filmdesk/filmdesk/pkg/recommend"
	"github.com/filmdesk/filmdesk/pkg/sales"
	"github.com/filmdesk/filmdesk/pkg/users"
)

// Filmdesk coordinates the catalog, user directory, and sales ledger,
// keeping their persisted documents consistent with memory.
type Filmdesk interface {
	// Catalog returns the film catalog.
	Catalog() *catalog.Catalog

	// Users returns the user directory.
	Users() *users.Directory

	// Ledger returns the sales ledger.
	Ledger() *sales.Ledger

	// AddFilm validates and appends a film to the catalog.
	AddFilm(film catalog.Film) error

	// Rate records a user's rating for a film, updating both the film's
	// rating map and the user's.
	Rate(title, username string, rating float64) error

	// SortCatalog reorders the canonical in-memory film order.
	SortCatalog(key catalog.SortKey) error

	// RecordSale validates and applies a sale: stock depletion and
	// ledger append as one logical step.
	RecordSale(title string, quantity int, seller string) (sales.Sale, error)

	// ResolveUser looks up a user by exact username.
	ResolveUser(username string) (*users.User, error)

	// CreateUser registers a new user. Callers confirm creation with
	// the human first; resolution never auto-creates.
	CreateUser(username string) (*users.User, error)

	// ImportCatalog replaces the catalog wholesale from a JSON array at
	// an arbitrary path.
	ImportCatalog(path string) error

	// ExportCatalog writes the current catalog verbatim to a path.
	ExportCatalog(path string) error

	// Recommend runs the external recommendation engine for a target
	// user. An empty result is a valid no-results outcome, not an error.
	Recommend(ctx context.Context, target string) ([]recommend.Recommendation, error)

	// Save rewrites every persisted document from current memory.
	Save() error
}

// desk is the internal implementation of the Filmdesk interface.
type desk struct {
	config  *config
	catalog *catalog.Catalog
	users   *users.Directory
	ledger  *sales.Ledger
	bridge  *recommend.Bridge
}

// New creates a Filmdesk instance with the given options, loading the
// persisted documents. Missing documents start as empty collections;
// malformed ones degrade to empty with a logged warning.
func New(opts ...Option) (Filmdesk, error) {
	cfg := defaults()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	d := &desk{config: cfg}

	films, err := persist.LoadArray[catalog.Film](cfg.catalogPath)
	if err != nil {
		return nil, err
	}
	d.catalog = catalog.NewFromRecords(films)

	userRecords, err := persist.LoadArray[users.User](cfg.usersPath)
	if err != nil {
		return nil, err
	}
	d.users = users.NewDirectoryFromRecords(userRecords)

	saleRecords, err := persist.LoadArray[sales.Sale](cfg.salesPath)
	if err != nil {
		return nil, err
	}
	d.ledger = sales.NewLedgerFromRecords(saleRecords)

	bridgeOpts := []recommend.Option{recommend.WithTimeout(cfg.recTimeout)}
	if cfg.runner != nil {
		bridgeOpts = append(bridgeOpts, recommend.WithRunner(cfg.runner))
	}
	d.bridge = recommend.NewBridge(cfg.recommender, cfg.requestPath, cfg.responsePath, bridgeOpts...)

	return d, nil
}

// Catalog returns the film catalog.
func (d *desk) Catalog() *catalog.Catalog {
	return d.catalog
}

// Users returns the user directory.
func (d *desk) Users() *users.Directory {
	return d.users
}

// Ledger returns the sales ledger.
func (d *desk) Ledger() *sales.Ledger {
	return d.ledger
}

// AddFilm validates and appends a film, then persists the catalog.
func (d *desk) AddFilm(film catalog.Film) error {
	if err := d.catalog.Add(film); err != nil {
		return err
	}
	return d.saveCatalog()
}

// Rate records a rating against both the film and the user record, then
// persists both documents. The film's rating map and the user's rating
// map are dual-written copies of the same fact and must stay in sync.
func (d *desk) Rate(title, username string, rating float64) error {
	if _, err := d.users.Find(username); err != nil && errors.IsValidationError(err) {
		return err
	}
	if err := d.catalog.Rate(title, username, rating); err != nil {
		return err
	}
	if _, err := d.users.RecordRating(username, title, rating); err != nil {
		return err
	}

	if err := d.saveCatalog(); err != nil {
		return err
	}
	return d.saveUsers()
}

// SortCatalog reorders the canonical in-memory film order. Ordering is
// a view concern and is not persisted on its own; the next mutation
// writes the catalog in its current order.
func (d *desk) SortCatalog(key catalog.SortKey) error {
	return d.catalog.Sort(key)
}

// RecordSale validates a sale, then applies stock depletion and the
// ledger append atomically within the core: either both documents
// reflect the sale or in-memory state is restored and the failure
// reported. No partial state survives a persistence error.
func (d *desk) RecordSale(title string, quantity int, seller string) (sales.Sale, error) {
	film, err := d.catalog.Get(title)
	if err != nil {
		return sales.Sale{}, err
	}
	if quantity <= 0 {
		return sales.Sale{}, errors.NewValidationError("quantity", quantity, "quantity must be greater than 0")
	}
	if quantity > film.Stock {
		return sales.Sale{}, errors.NewInsufficientStockError(title, quantity, film.Stock)
	}

	sale := sales.Sale{
		Timestamp: sales.NewTimestamp(d.config.now()),
		Title:     title,
		Seller:    seller,
		Quantity:  quantity,
		UnitPrice: film.UnitPrice,
		Total:     float64(quantity) * film.UnitPrice,
	}

	film.Stock -= quantity
	d.ledger.Append(sale)

	rollback := func() {
		d.ledger.DropLast()
		film.Stock += quantity
	}

	if err := d.saveLedger(); err != nil {
		rollback()
		return sales.Sale{}, err
	}
	if err := d.saveCatalog(); err != nil {
		rollback()
		// The ledger document already carries the sale; rewrite it to
		// match restored memory, best effort.
		if lerr := d.saveLedger(); lerr != nil {
			logging.Warn().
				Err(lerr).
				Str("path", d.config.salesPath).
				Msg("Ledger document left ahead of memory after failed sale")
		}
		return sales.Sale{}, err
	}

	return sale, nil
}

// ResolveUser looks up a user by exact username match.
func (d *desk) ResolveUser(username string) (*users.User, error) {
	return d.users.Find(username)
}

// CreateUser registers a new user and persists the directory.
func (d *desk) CreateUser(username string) (*users.User, error) {
	user, err := d.users.Create(username)
	if err != nil {
		return nil, err
	}
	if err := d.saveUsers(); err != nil {
		return nil, err
	}
	return user, nil
}

// ImportCatalog reads a JSON film array from an arbitrary path and
// replaces the in-memory catalog wholesale. Missing rating maps are
// backfilled to empty. The canonical catalog document is rewritten to
// match the imported state.
func (d *desk) ImportCatalog(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewPersistenceError("read", path, err)
	}

	var films []catalog.Film
	if err := json.Unmarshal(data, &films); err != nil {
		return errors.NewValidationError("catalog", path, "file is not a valid JSON film array")
	}

	d.catalog.Replace(films)
	return d.saveCatalog()
}

// ExportCatalog writes the current catalog verbatim to a user-chosen path.
func (d *desk) ExportCatalog(path string) error {
	return persist.SaveArray(path, d.catalog.Records())
}

// Recommend externalizes the target user, invokes the engine, and
// parses its structured output.
func (d *desk) Recommend(ctx context.Context, target string) ([]recommend.Recommendation, error) {
	if _, err := d.users.Find(target); err != nil {
		return nil, err
	}
	return d.bridge.Recommend(ctx, target)
}

// Save rewrites every persisted document from current memory.
func (d *desk) Save() error {
	if err := d.saveCatalog(); err != nil {
		return err
	}
	if err := d.saveUsers(); err != nil {
		return err
	}
	return d.saveLedger()
}

func (d *desk) saveCatalog() error {
	return persist.SaveArray(d.config.catalogPath, d.catalog.Records())
}

func (d *desk) saveUsers() error {
	return persist.SaveArray(d.config.usersPath, d.users.Records())
}

func (d *desk) saveLedger() error {
	return persist.SaveArray(d.config.salesPath, d.ledger.Records())
}
