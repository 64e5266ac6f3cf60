package config

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Driver reports which backend the configuration selects. Postgres wins
// whenever a DSN can be formed and SQLite was not forced.
func (c DatabaseConfig) Driver() string {
	if !c.UseSQLite && c.rawPostgresDSN() != "" {
		return DriverPostgres
	}
	return DriverSQLite
}

// PostgresDSN returns the connection string with the SSL requirement applied.
func (c DatabaseConfig) PostgresDSN() string {
	dsn := c.rawPostgresDSN()
	if dsn == "" || !c.SSLRequire || strings.Contains(dsn, "sslmode=") {
		return dsn
	}

	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		// key=value form
		return dsn + " sslmode=require"
	}
	q := u.Query()
	q.Set("sslmode", "require")
	u.RawQuery = q.Encode()
	return u.String()
}

func (c DatabaseConfig) rawPostgresDSN() string {
	if c.URL != "" {
		return c.URL
	}
	if c.Name == "" || c.User == "" || c.Host == "" {
		return ""
	}

	u := url.URL{
		Scheme: "postgresql",
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.Name,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}
	return u.String()
}

// SQLiteDSN enables foreign keys so cascades are enforced by the store.
func (c DatabaseConfig) SQLiteDSN() string {
	return c.SQLitePath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}
