package store

import (
	"strings"
	"testing"
)

func TestOpen_CreatesSchema(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("INSERT INTO products (name, stock) VALUES ('Widget', 5)"); err != nil {
		t.Fatalf("insert product: %v", err)
	}
	if _, err := db.Exec("INSERT INTO inventory_history (product_id, old_quantity, new_quantity, change_date) VALUES (1, 5, 3, '2026-01-01T00:00:00.000Z')"); err != nil {
		t.Fatalf("insert history: %v", err)
	}

	var userInfo string
	if err := db.QueryRow("SELECT user_info FROM inventory_history WHERE product_id = 1").Scan(&userInfo); err != nil {
		t.Fatalf("query history: %v", err)
	}
	if userInfo != "admin" {
		t.Errorf("user_info default = %q, want admin", userInfo)
	}
}

func TestOpen_EnforcesConstraints(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("INSERT INTO products (name, stock) VALUES ('Widget', 5)"); err != nil {
		t.Fatalf("insert product: %v", err)
	}

	_, err = db.Exec("INSERT INTO products (name, stock) VALUES ('Widget', 9)")
	if err == nil || !strings.Contains(strings.ToLower(err.Error()), "unique") {
		t.Errorf("duplicate name: err = %v, want UNIQUE violation", err)
	}

	_, err = db.Exec("INSERT INTO inventory_history (product_id, old_quantity, new_quantity, change_date) VALUES (99, 1, 2, '2026-01-01T00:00:00.000Z')")
	if err == nil || !strings.Contains(strings.ToLower(err.Error()), "foreign key") {
		t.Errorf("orphan history: err = %v, want FOREIGN KEY violation", err)
	}
}
