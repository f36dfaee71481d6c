package api

import (
	"context"
	"sync"
	"time"

	"github.com/projecthelena/pgsample/internal/db"
)

// fakePool counts checkouts so tests can assert every Acquire is paired with
// exactly one Release.
type fakePool struct {
	mu         sync.Mutex
	acquireErr error
	queryErr   error
	panicQuery bool
	now        time.Time

	inUse    int
	acquires int
	releases int
	queries  int
}

func newFakePool() *fakePool {
	return &fakePool{now: time.Date(2026, 10, 14, 9, 30, 0, 123456000, time.UTC)}
}

func (p *fakePool) Acquire(ctx context.Context) (db.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.acquireErr != nil {
		return nil, &db.AcquireError{Err: p.acquireErr}
	}
	p.inUse++
	p.acquires++
	return &fakeConn{pool: p}, nil
}

func (p *fakePool) Stats() db.Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return db.Stats{OpenConnections: p.inUse, InUse: p.inUse, MaxOpen: 10}
}

func (p *fakePool) Close() error { return nil }

func (p *fakePool) counts() (inUse, acquires, releases, queries int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inUse, p.acquires, p.releases, p.queries
}

type fakeConn struct {
	pool *fakePool
	once sync.Once
}

func (c *fakeConn) ServerTime(ctx context.Context) (time.Time, error) {
	c.pool.mu.Lock()
	c.pool.queries++
	panicQuery, queryErr, now := c.pool.panicQuery, c.pool.queryErr, c.pool.now
	c.pool.mu.Unlock()

	if panicQuery {
		panic("driver exploded")
	}
	if queryErr != nil {
		return time.Time{}, &db.QueryError{Query: "SELECT now() AS time", Err: queryErr}
	}
	return now, nil
}

func (c *fakeConn) Release() {
	c.once.Do(func() {
		c.pool.mu.Lock()
		defer c.pool.mu.Unlock()
		c.pool.inUse--
		c.pool.releases++
	})
}
