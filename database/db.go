package database

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// InitDB opens the database and prepares it for concurrent use. With
// DATABASE_URL set (Fly.io, Neon) the backend is Postgres; otherwise a
// local sqlite file, or :memory: under TEST_DB=1.
func InitDB() error {
	if os.Getenv("DATABASE_URL") != "" {
		return initPostgres()
	}
	return initSQLite()
}

func initSQLite() error {
	var dbPath string
	if os.Getenv("FLY_APP_NAME") != "" {
		// Running on Fly.io, use the mounted volume
		dbPath = filepath.Join("/data", "familjebudget.db")
	} else if os.Getenv("TEST_DB") == "1" {
		dbPath = ":memory:"
	} else {
		dbPath = "./familjebudget.db"
	}

	var err error
	dsn := dbPath + "?_journal=WAL&_timeout=10000&_busy_timeout=10000"
	DB, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(5)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(time.Minute * 5)

	if _, err = DB.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	if _, err = DB.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return err
	}
	if _, err = DB.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return err
	}

	return DB.Ping()
}

func initPostgres() error {
	connString := GetPostgresConfigFromEnv().ConnectionString()
	log.Printf("Connecting to PostgreSQL: %s", MaskPassword(connString))

	var err error
	DB, err = sql.Open("postgres", connString)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(5)

	return DB.Ping()
}
