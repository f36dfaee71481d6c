package db

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPool is a Pool backed by pgxpool.
type PgxPool struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

func NewPgxPool(ctx context.Context, cfg DBConfig) (*PgxPool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		pcfg.MaxConns = int32(min(cfg.MaxOpenConns, math.MaxInt32))
	}
	if cfg.MaxIdleTime > 0 {
		pcfg.MaxConnIdleTime = cfg.MaxIdleTime
	}
	// Keep the pool lazy: no connections until the first Acquire.
	pcfg.MinConns = 0

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	return &PgxPool{pool: pool, acquireTimeout: cfg.AcquireTimeout}, nil
}

func (p *PgxPool) Acquire(ctx context.Context) (Conn, error) {
	ctx, cancel := acquireContext(ctx, p.acquireTimeout)
	defer cancel()

	c, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, &AcquireError{Err: err}
	}
	return &pgxConn{conn: c}, nil
}

func (p *PgxPool) Stats() Stats {
	s := p.pool.Stat()
	return Stats{
		OpenConnections: int(s.TotalConns()),
		InUse:           int(s.AcquiredConns()),
		Idle:            int(s.IdleConns()),
		MaxOpen:         int(s.MaxConns()),
		WaitCount:       s.EmptyAcquireCount(),
		WaitDuration:    s.AcquireDuration(),
	}
}

func (p *PgxPool) Close() error {
	p.pool.Close()
	return nil
}

type pgxConn struct {
	conn *pgxpool.Conn
	once sync.Once
}

func (c *pgxConn) ServerTime(ctx context.Context) (time.Time, error) {
	var t time.Time
	if err := c.conn.QueryRow(ctx, timeQueryPostgres).Scan(&t); err != nil {
		return time.Time{}, &QueryError{Query: timeQueryPostgres, Err: err}
	}
	return t, nil
}

func (c *pgxConn) Release() {
	c.once.Do(c.conn.Release)
}
