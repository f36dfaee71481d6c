package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQLPool is a Pool backed by database/sql, using lib/pq for postgres and
// go-sqlite3 for sqlite.
type SQLPool struct {
	db             *sql.DB
	query          string
	acquireTimeout time.Duration
}

func NewSQLPool(cfg DBConfig) (*SQLPool, error) {
	driverName, dsn, query := "postgres", cfg.ConnString(), timeQueryPostgres
	if cfg.Type == DialectSQLite {
		driverName, dsn, query = "sqlite3", cfg.Path, timeQuerySQLite
	}

	// sql.Open only validates arguments; no connection is made here.
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s pool: %w", driverName, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.MaxIdleTime)
	}

	return &SQLPool{
		db:             db,
		query:          query,
		acquireTimeout: cfg.AcquireTimeout,
	}, nil
}

func (p *SQLPool) Acquire(ctx context.Context) (Conn, error) {
	ctx, cancel := acquireContext(ctx, p.acquireTimeout)
	defer cancel()

	c, err := p.db.Conn(ctx)
	if err != nil {
		return nil, &AcquireError{Err: err}
	}
	return &sqlConn{conn: c, query: p.query}, nil
}

func (p *SQLPool) Stats() Stats {
	s := p.db.Stats()
	return Stats{
		OpenConnections: s.OpenConnections,
		InUse:           s.InUse,
		Idle:            s.Idle,
		MaxOpen:         s.MaxOpenConnections,
		WaitCount:       s.WaitCount,
		WaitDuration:    s.WaitDuration,
	}
}

func (p *SQLPool) Close() error {
	return p.db.Close()
}

type sqlConn struct {
	conn  *sql.Conn
	query string
	once  sync.Once
}

func (c *sqlConn) ServerTime(ctx context.Context) (time.Time, error) {
	var t serverTime
	if err := c.conn.QueryRowContext(ctx, c.query).Scan(&t); err != nil {
		return time.Time{}, &QueryError{Query: c.query, Err: err}
	}
	return time.Time(t), nil
}

func (c *sqlConn) Release() {
	c.once.Do(func() {
		// Close on a *sql.Conn returns it to the pool; the only error is
		// sql.ErrConnDone, which cannot happen behind the once.
		_ = c.conn.Close()
	})
}

// serverTime scans timestamps from drivers that return either time.Time
// (lib/pq) or text (sqlite expressions have no declared column type).
type serverTime time.Time

var serverTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (t *serverTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = serverTime(v)
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	case nil:
		return fmt.Errorf("server time is NULL")
	default:
		return fmt.Errorf("cannot scan %T into server time", src)
	}
}

func (t *serverTime) parse(s string) error {
	for _, layout := range serverTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = serverTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("unrecognised server time %q", s)
}
