// Package pool owns the dual read/write PostgreSQL connection pools and the
// query library root that Lib sources resolve against.
//
// A Pools value is built once at process start and is read-only afterwards;
// every operation in the library borrows a connection from one of the two
// pools for exactly the duration of that operation. Which pool serves an
// operation is decided by the operation's read-only flag alone, never by
// inspecting the query text.
package pool

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/spf13/afero"

	"github.com/pgq-dev/pgq/runtime/types"
)

// DB wraps one of the two pools with a prepared-statement cache keyed by
// query text. database/sql transparently re-binds a cached statement to
// whichever pooled connection executes it.
type DB struct {
	db    *sql.DB
	mu    sync.RWMutex
	stmts map[string]*sql.Stmt
}

func wrap(db *sql.DB) *DB {
	return &DB{db: db, stmts: make(map[string]*sql.Stmt)}
}

// Prepare creates a new prepared statement, bypassing the cache. The caller
// owns the returned statement and must close it.
func (d *DB) Prepare(ctx context.Context, query string) (*sql.Stmt, error) {
	stmt, err := d.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, types.FromDriver("prepare statement", err)
	}
	return stmt, nil
}

// PrepareCached returns a cached prepared statement for the query text,
// preparing and caching it on first use. Cached statements are owned by the
// pool and are closed by Close; callers must not close them.
func (d *DB) PrepareCached(ctx context.Context, query string) (*sql.Stmt, error) {
	d.mu.RLock()
	stmt, ok := d.stmts[query]
	d.mu.RUnlock()
	if ok {
		return stmt, nil
	}

	stmt, err := d.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, types.FromDriver("prepare statement", err)
	}

	d.mu.Lock()
	// Another caller may have prepared the same text in the meantime; keep
	// the first one and discard ours.
	if cached, ok := d.stmts[query]; ok {
		d.mu.Unlock()
		_ = stmt.Close()
		return cached, nil
	}
	d.stmts[query] = stmt
	d.mu.Unlock()
	return stmt, nil
}

// Unwrap returns the underlying database handle for operations the library
// does not cover.
func (d *DB) Unwrap() *sql.DB { return d.db }

func (d *DB) close() error {
	d.mu.Lock()
	for _, stmt := range d.stmts {
		_ = stmt.Close()
	}
	d.stmts = make(map[string]*sql.Stmt)
	d.mu.Unlock()
	return d.db.Close()
}

// Pools holds the separately-lived read and write pools plus the query
// library root. Shared by all callers; never mutated after construction.
type Pools struct {
	read  *DB
	write *DB

	queryLibPath string
	fs           afero.Fs
}

// Option configures a Pools during construction.
type Option func(*Pools)

// WithQueryLibPath sets the directory that Lib query sources resolve under.
func WithQueryLibPath(path string) Option {
	return func(p *Pools) { p.queryLibPath = path }
}

// WithFs sets the filesystem used to read File and Lib query sources.
// Defaults to the OS filesystem; tests substitute an in-memory one.
func WithFs(fs afero.Fs) Option {
	return func(p *Pools) { p.fs = fs }
}

// New opens the two pools from the given configuration.
func New(cfg Config) (*Pools, error) {
	read, err := open(cfg, cfg.ReadURL)
	if err != nil {
		return nil, types.Pool("open read pool", err)
	}
	write, err := open(cfg, cfg.WriteURL)
	if err != nil {
		_ = read.Close()
		return nil, types.Pool("open write pool", err)
	}
	return FromDBs(read, write, WithQueryLibPath(cfg.QueryLibPath)), nil
}

func open(cfg Config, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return db, nil
}

// FromDBs wraps two existing database handles as a read/write pool pair.
// Useful when the caller manages the handles itself, and as the seam tests
// hook their mock databases into.
func FromDBs(read, write *sql.DB, opts ...Option) *Pools {
	p := &Pools{
		read:  wrap(read),
		write: wrap(write),
		fs:    afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Selector returns the read pool when readOnly is true, the write pool
// otherwise.
func (p *Pools) Selector(readOnly bool) *DB {
	if readOnly {
		return p.read
	}
	return p.write
}

// QueryLibPath returns the configured query library root, empty if none was
// set.
func (p *Pools) QueryLibPath() string { return p.queryLibPath }

// Fs returns the filesystem query sources are read from.
func (p *Pools) Fs() afero.Fs { return p.fs }

// Close closes cached statements and both pools.
func (p *Pools) Close() error {
	rerr := p.read.close()
	werr := p.write.close()
	if rerr != nil {
		return rerr
	}
	return werr
}
