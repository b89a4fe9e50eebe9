package pg

import (
	"database/sql"
	"fmt"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver   string `env:"DRIVER"`
	User     string `env:"USER"`
	Host     string `env:"HOST"`
	Port     string `env:"PORT"`
	Password string `env:"PASSWORD"`
	Database string `env:"DBNAME"`
	// Path is the database file location when Driver is sqlite.
	Path string `env:"PATH"`
}

func (c Config) dsn() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable", c.Host, c.User, c.Password, c.Database, c.Port)
}

func newSqlConnection(config Config) (*sql.DB, error) {
	if config.Driver == DriverSQLite {
		// "sqlite3" is registered by the mattn driver the gorm sqlite dialect wraps
		return sql.Open("sqlite3", config.sqlitePath())
	}
	return sql.Open("postgres", config.dsn())
}

func (c Config) sqlitePath() string {
	if c.Path != "" {
		return c.Path
	}
	return c.Database
}
