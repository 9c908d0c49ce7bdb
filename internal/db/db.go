package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"net/url"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

var pragmas = []string{
	"busy_timeout(5000)",
	"foreign_keys(1)",
}

// Open opens the sqlite database at path and makes sure the tasks table exists.
// ":memory:" gives a private database that lives as long as the handle.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("db path is required")
	}

	conn, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(context.Background(), schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return conn, nil
}

func dsn(path string) string {
	query := url.Values{}
	for _, pragma := range pragmas {
		query.Add("_pragma", pragma)
	}
	return path + "?" + query.Encode()
}
