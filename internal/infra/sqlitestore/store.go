// Package sqlitestore is the SQLite implementation of ports.OrderStore.
//
// The table is append-only: Append inserts one row per order and rows are
// never updated. List returns rows in insertion order.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/ports"

	// Pure-Go driver, registered as "sqlite".
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
    seq             INTEGER PRIMARY KEY AUTOINCREMENT,
    id              TEXT    NOT NULL UNIQUE,

    -- JSON array of {"name","price"}.
    products        TEXT    NOT NULL,

    shipping_method TEXT    NOT NULL,
    distance_km     REAL    NOT NULL,

    -- Money is stored as decimal text to keep exact digits.
    products_cost   TEXT    NOT NULL,
    shipping_cost   TEXT    NOT NULL,
    total_cost      TEXT    NOT NULL,

    delivery_time   TEXT    NOT NULL,
    saved_at        TEXT    NOT NULL
);
`

const timeLayout = "2006-01-02T15:04:05.999999999Z"

type Store struct {
	db    *sql.DB
	path  string
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

type Option func(*Store)

func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

var _ ports.OrderStore = (*Store)(nil)

// Open opens (or creates) the database at cfg.Path, resolved against root,
// and applies the schema.
func Open(root string, cfg domain.StoreConfig, opts ...Option) (*Store, error) {
	p := cfg.Path
	if p == "" {
		p = "orders.db"
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, ioErr("sqlitestore.open", p, err)
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, ioErr("sqlitestore.open", p, err)
	}
	p = abs

	db, err := sql.Open("sqlite", dsn(p))
	if err != nil {
		return nil, ioErr("sqlitestore.open", p, err)
	}

	// Single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, ioErr("sqlitestore.schema", p, err)
	}

	s := &Store{
		db:    db,
		path:  p,
		log:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// dsn builds a file: URI for path; characters such as '?', '#' and '%' in
// the path are escaped so they are not read as URI syntax.
func dsn(path string) string {
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(path),
		RawQuery: "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
	}
	return u.String()
}

func (s *Store) Path() string { return s.path }

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Append(ctx context.Context, order *domain.Order) (domain.OrderRecord, error) {
	if order == nil {
		return domain.OrderRecord{}, &domain.OpError{
			Op:   "sqlitestore.append",
			Kind: domain.KindInvalidOrder,
			Path: s.path,
			Err:  errors.New("order is nil"),
		}
	}

	rec := domain.NewOrderRecord(order, s.newID(), s.now().UTC())

	products, err := json.Marshal(rec.Products)
	if err != nil {
		return domain.OrderRecord{}, ioErr("sqlitestore.marshal", s.path, err)
	}

	const q = `
		INSERT INTO orders
			(id, products, shipping_method, distance_km, products_cost, shipping_cost, total_cost, delivery_time, saved_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, q,
		rec.ID,
		string(products),
		rec.ShippingMethod,
		rec.DistanceKM,
		rec.ProductsCost.String(),
		rec.ShippingCost.String(),
		rec.TotalCost.String(),
		rec.DeliveryTime,
		rec.SavedAt.Format(timeLayout),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.OrderRecord{}, ctxErr
		}
		return domain.OrderRecord{}, ioErr("sqlitestore.insert", s.path, err)
	}

	s.log.Info("orderstore.appended",
		"driver", string(domain.DriverSQLite),
		"path", s.path,
		"id", rec.ID,
		"total_cost", rec.TotalCost.String(),
	)
	return rec, nil
}

func (s *Store) List(ctx context.Context) ([]domain.OrderRecord, error) {
	const q = `
		SELECT id, products, shipping_method, distance_km, products_cost,
		       shipping_cost, total_cost, delivery_time, saved_at
		FROM   orders
		ORDER  BY seq`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, ioErr("sqlitestore.list", s.path, err)
	}
	defer rows.Close()

	out := []domain.OrderRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, ioErr("sqlitestore.list", s.path, err)
	}
	return out, nil
}

func scanRecord(rows *sql.Rows) (domain.OrderRecord, error) {
	var (
		rec                           domain.OrderRecord
		products                      string
		productsCost, shipCost, total string
		savedAt                       string
	)
	if err := rows.Scan(
		&rec.ID,
		&products,
		&rec.ShippingMethod,
		&rec.DistanceKM,
		&productsCost,
		&shipCost,
		&total,
		&rec.DeliveryTime,
		&savedAt,
	); err != nil {
		return rec, ioErr("sqlitestore.scan", "", err)
	}

	corrupt := func(field string, err error) error {
		return &domain.OpError{
			Op:   "sqlitestore.decode",
			Kind: domain.KindCorruptStore,
			Err:  fmt.Errorf("%w: order %s: %s: %w", domain.ErrCorruptStore, rec.ID, field, err),
		}
	}

	if err := json.Unmarshal([]byte(products), &rec.Products); err != nil {
		return rec, corrupt("products", err)
	}

	var err error
	if rec.ProductsCost, err = domain.ParseAmount(productsCost); err != nil {
		return rec, corrupt("products_cost", err)
	}
	if rec.ShippingCost, err = domain.ParseAmount(shipCost); err != nil {
		return rec, corrupt("shipping_cost", err)
	}
	if rec.TotalCost, err = domain.ParseAmount(total); err != nil {
		return rec, corrupt("total_cost", err)
	}
	if rec.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
		return rec, corrupt("saved_at", err)
	}
	return rec, nil
}

func ioErr(op, path string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindIO,
		Path: path,
		Err:  fmt.Errorf("%w: %w", domain.ErrIO, err),
	}
}
