// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"path/filepath"
	"testing"

	"github.com/danielhkuo/council-ballot/cliparse"
)

func TestOpenAndCreateSchema(t *testing.T) {
	cfg := cliparse.Config{
		DatabaseType: cliparse.DatabaseSQLite,
		DatabaseURL:  "file:" + filepath.Join(t.TempDir(), "test.db"),
	}

	conn, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	// Safe to call multiple times
	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn); err != nil {
			t.Fatalf("CreateSchema() run %d error = %v", i+1, err)
		}
	}

	for _, table := range []string{"candidate", "vote_receipt"} {
		var count int
		if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Errorf("table %s not queryable: %v", table, err)
		}
	}
}

func TestOpenUnsupportedType(t *testing.T) {
	_, err := Open(cliparse.Config{DatabaseType: "mysql", DatabaseURL: "x"})
	if err == nil {
		t.Error("expected error for unsupported database type")
	}
}
