package orderstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/ports"
)

const defaultFileName = "orders.json"

// JSONStore keeps every order record in one JSON array file. Append is a
// read-modify-write of the whole file; the mutex makes it the single writer
// within the process and the tmp+rename keeps readers from ever seeing a
// half-written file.
type JSONStore struct {
	path   string
	policy domain.CorruptPolicy
	log    *slog.Logger
	now    func() time.Time
	newID  func() string

	mu sync.Mutex
}

type Option func(*JSONStore)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithIDs replaces the UUID generator for record ids.
func WithIDs(newID func() string) Option {
	return func(s *JSONStore) { s.newID = newID }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *JSONStore) {
		if l != nil {
			s.log = l
		}
	}
}

// NewJSONStore resolves cfg.Path against root. An invalid or empty corruption
// policy falls back to domain.CorruptBackup.
func NewJSONStore(root string, cfg domain.StoreConfig, opts ...Option) *JSONStore {
	p := strings.TrimSpace(cfg.Path)
	if p == "" {
		p = defaultFileName
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}

	policy := cfg.OnCorrupt
	if !policy.Valid() {
		policy = domain.CorruptBackup
	}

	s := &JSONStore{
		path:   filepath.Clean(p),
		policy: policy,
		log:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.OrderStore = (*JSONStore)(nil)

func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) Policy() domain.CorruptPolicy { return s.policy }

func (s *JSONStore) Append(ctx context.Context, order *domain.Order) (domain.OrderRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.OrderRecord{}, err
	}
	if order == nil {
		return domain.OrderRecord{}, &domain.OpError{
			Op:   "orderstore.append",
			Kind: domain.KindInvalidOrder,
			Path: s.path,
			Err:  errors.New("order is nil"),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		if !domain.IsKind(err, domain.KindCorruptStore) {
			return domain.OrderRecord{}, err
		}
		records, err = s.handleCorrupt(err)
		if err != nil {
			return domain.OrderRecord{}, err
		}
	}

	rec := domain.NewOrderRecord(order, s.newID(), s.now().UTC())
	records = append(records, rec)

	if err := s.writeAll(records); err != nil {
		return domain.OrderRecord{}, err
	}

	s.log.Info("orderstore.appended",
		"path", s.path,
		"id", rec.ID,
		"records", len(records),
		"total_cost", rec.TotalCost.String(),
	)
	return rec, nil
}

// List returns every record in append order. A corrupt file is always an
// error here: reads never apply the corruption policy.
func (s *JSONStore) List(ctx context.Context) ([]domain.OrderRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readAll()
}

func (s *JSONStore) readAll() ([]domain.OrderRecord, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.OrderRecord{}, nil
		}
		return nil, &domain.OpError{
			Op:   "orderstore.read",
			Kind: domain.KindIO,
			Path: s.path,
			Err:  fmt.Errorf("%w: %w", domain.ErrIO, err),
		}
	}

	if len(bytes.TrimSpace(b)) == 0 {
		return []domain.OrderRecord{}, nil
	}

	var records []domain.OrderRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, &domain.OpError{
			Op:   "orderstore.decode",
			Kind: domain.KindCorruptStore,
			Path: s.path,
			Err:  fmt.Errorf("%w: %w", domain.ErrCorruptStore, err),
		}
	}
	if records == nil {
		records = []domain.OrderRecord{}
	}
	return records, nil
}

func (s *JSONStore) handleCorrupt(cause error) ([]domain.OrderRecord, error) {
	switch s.policy {
	case domain.CorruptFail:
		return nil, cause

	case domain.CorruptRecover:
		s.log.Warn("orderstore.recovered",
			"path", s.path,
			"policy", string(s.policy),
			"err", cause,
		)
		return []domain.OrderRecord{}, nil

	default:
		backup := uniquePath(fmt.Sprintf("%s.corrupt-%s", s.path, s.now().UTC().Format("20060102T150405Z")))
		if err := os.Rename(s.path, backup); err != nil {
			return nil, &domain.OpError{
				Op:   "orderstore.backup",
				Kind: domain.KindIO,
				Path: backup,
				Err:  fmt.Errorf("%w: %w", domain.ErrIO, err),
			}
		}
		s.log.Warn("orderstore.recovered",
			"path", s.path,
			"policy", string(s.policy),
			"backup", backup,
			"err", cause,
		)
		return []domain.OrderRecord{}, nil
	}
}

func (s *JSONStore) writeAll(records []domain.OrderRecord) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.OpError{
			Op:   "orderstore.mkdir",
			Kind: domain.KindIO,
			Path: dir,
			Err:  fmt.Errorf("%w: %w", domain.ErrIO, err),
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return &domain.OpError{
			Op:   "orderstore.marshal",
			Kind: domain.KindIO,
			Path: s.path,
			Err:  fmt.Errorf("%w: %w", domain.ErrIO, err),
		}
	}

	// Atomic replace: tmp then rename.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "orderstore.write",
			Kind: domain.KindIO,
			Path: tmp,
			Err:  fmt.Errorf("%w: %w", domain.ErrIO, err),
		}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "orderstore.rename",
			Kind: domain.KindIO,
			Path: s.path,
			Err:  fmt.Errorf("%w: %w", domain.ErrIO, err),
		}
	}
	return nil
}

// uniquePath appends _2, _3, ... until the path is free.
func uniquePath(p string) string {
	if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
		return p
	}
	for i := 2; ; i++ {
		c := fmt.Sprintf("%s_%d", p, i)
		if _, err := os.Stat(c); errors.Is(err, fs.ErrNotExist) {
			return c
		}
	}
}
