package db

import (
	"context"
	"fmt"
	"time"
)

const (
	timeQueryPostgres = "SELECT now() AS time"
	timeQuerySQLite   = "SELECT strftime('%Y-%m-%dT%H:%M:%fZ', 'now') AS time"
)

// Conn is a connection checked out of a Pool. Release must be called once
// per successful Acquire; further calls are no-ops.
type Conn interface {
	ServerTime(ctx context.Context) (time.Time, error)
	Release()
}

// Pool hands out connections to the backing database.
type Pool interface {
	Acquire(ctx context.Context) (Conn, error)
	Stats() Stats
	Close() error
}

// Stats is a point-in-time snapshot of pool bookkeeping.
type Stats struct {
	OpenConnections int           `json:"openConnections"`
	InUse           int           `json:"inUse"`
	Idle            int           `json:"idle"`
	MaxOpen         int           `json:"maxOpen"`
	WaitCount       int64         `json:"waitCount"`
	WaitDuration    time.Duration `json:"waitDuration"`
}

// Open builds the pool described by cfg. Connections are established lazily
// on first Acquire.
func Open(ctx context.Context, cfg DBConfig) (Pool, error) {
	usePgx := false
	switch cfg.Type {
	case DialectSQLite:
	case DialectPostgres, "":
		switch cfg.Driver {
		case DriverPQ, "":
		case DriverPGX:
			usePgx = true
		default:
			return nil, fmt.Errorf("unsupported postgres driver %q", cfg.Driver)
		}
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}

	if usePgx {
		p, err := NewPgxPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	p, err := NewSQLPool(cfg)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// WithConn acquires a connection, runs fn with it and releases it on every
// exit path, including a panic in fn. Acquisition failures are returned
// as *AcquireError and fn is not called.
func WithConn(ctx context.Context, p Pool, fn func(Conn) error) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return fn(conn)
}

func acquireContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
