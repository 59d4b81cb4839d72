package db

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"housetasks/internal/config"
)

const (
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	switch conf.DbDriver {
	case DriverSQLite:
		return sqlx.Connect(DriverSQLite, SQLiteDSN(conf.SqlitePath))
	case DriverPostgres:
		if conf.PostgresDSN == "" {
			return nil, fmt.Errorf("POSTGRES_DSN is required for driver %q", DriverPostgres)
		}
		return sqlx.Connect(DriverPostgres, conf.PostgresDSN)
	case DriverMySQL, "":
		return sqlx.Connect(DriverMySQL, mysqlDSN(conf))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.DbDriver)
	}
}

// SQLiteDSN opens write transactions with BEGIN IMMEDIATE so that concurrent
// writers queue on the database lock instead of failing on upgrade.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_txlock=immediate&_busy_timeout=10000&_foreign_keys=on", path)
}

func mysqlDSN(conf *config.Config) string {
	params := conf.DbParams
	if params == "" {
		params = "parseTime=true&multiStatements=true"
	}

	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?%s",
		conf.DbUser,
		conf.DbPassword,
		conf.DbHost,
		conf.DbPort,
		conf.DbName,
		params,
	)
}
