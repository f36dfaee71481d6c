package db

import (
	"strconv"
	"strings"
	"time"
)

// Dialect selects the database backend.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Driver selects the Go client used for the postgres dialect.
type Driver string

const (
	DriverPQ  Driver = "pq"
	DriverPGX Driver = "pgx"
)

// DBConfig is read once at startup and never mutated afterwards.
type DBConfig struct {
	Type   Dialect
	Driver Driver

	// DSN, when set, is used as-is instead of the individual fields below.
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	// Path is the SQLite database file.
	Path string

	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration

	// AcquireTimeout bounds how long Acquire waits for a connection. Zero
	// leaves it to the caller's context.
	AcquireTimeout time.Duration
}

// ConnString returns a libpq key/value connection string understood by both
// lib/pq and pgx. Empty fields are omitted so the client defaults apply.
func (c DBConfig) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}

	port := c.Port
	if port == 0 {
		port = 5432
	}

	parts := make([]string, 0, 6)
	add := func(key, value string) {
		if value == "" {
			return
		}
		parts = append(parts, key+"="+quoteConnValue(value))
	}
	add("host", c.Host)
	add("port", strconv.Itoa(port))
	add("user", c.User)
	add("password", c.Password)
	add("dbname", c.Name)
	add("sslmode", c.SSLMode)

	return strings.Join(parts, " ")
}

func quoteConnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}
