package db

// NewTestConfig returns a DBConfig for in-memory SQLite testing
func NewTestConfig() DBConfig {
	return DBConfig{
		Type:         DialectSQLite,
		Path:         ":memory:",
		MaxOpenConns: 4,
		MaxIdleConns: 4,
	}
}

// NewTestConfigWithPath returns a DBConfig for SQLite testing with a specific path
func NewTestConfigWithPath(path string) DBConfig {
	cfg := NewTestConfig()
	cfg.Path = path
	return cfg
}

// NewUnreachableConfig returns a postgres DBConfig pointing at a closed local
// port, so every Acquire fails with a dial error.
func NewUnreachableConfig(driver Driver) DBConfig {
	return DBConfig{
		Type:    DialectPostgres,
		Driver:  driver,
		Host:    "127.0.0.1",
		Port:    1,
		User:    "nobody",
		Name:    "nothing",
		SSLMode: "disable",
	}
}
