package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/lib/pq"
)

// SetupTestDB opens the integration test database. It expects a local
// Postgres with a 'storeadmin_test' database; tests skip when it is
// not reachable. STOREADMIN_TEST_DSN overrides the default DSN.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("STOREADMIN_TEST_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=storeadmin password=secret dbname=storeadmin_test sslmode=disable"
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties every table and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{
		"productvariantoptions", "productvariants", "productdescriptions", "productimages",
		"order_items", "orders", "products", "categories", "branding", "preferences",
	}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	statements := []struct {
		name  string
		query string
	}{
		{"orders", `
			CREATE TABLE IF NOT EXISTS orders (
				id TEXT PRIMARY KEY,
				userid TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL DEFAULT 'Pending',
				totalprice NUMERIC(10,2) NOT NULL DEFAULT 0,
				checkoutdata JSONB,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`},
		{"order_items", `
			CREATE TABLE IF NOT EXISTS order_items (
				id SERIAL PRIMARY KEY,
				order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
				product_id INT NOT NULL DEFAULT 0,
				product_name TEXT NOT NULL DEFAULT '',
				quantity INT NOT NULL DEFAULT 1,
				selected_options JSONB,
				total_price NUMERIC(10,2) NOT NULL DEFAULT 0
			)`},
		{"categories", `
			CREATE TABLE IF NOT EXISTS categories (
				id SERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				image_url TEXT NOT NULL DEFAULT '',
				is_published BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`},
		{"products", `
			CREATE TABLE IF NOT EXISTS products (
				id SERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				price NUMERIC(10,2) NOT NULL DEFAULT 0,
				category TEXT NOT NULL DEFAULT '',
				is_published BOOLEAN NOT NULL DEFAULT FALSE,
				labels TEXT[] NOT NULL DEFAULT '{}',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`},
		{"productimages", `
			CREATE TABLE IF NOT EXISTS productimages (
				id SERIAL PRIMARY KEY,
				product_id INT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
				url TEXT NOT NULL,
				position INT NOT NULL DEFAULT 0
			)`},
		{"productdescriptions", `
			CREATE TABLE IF NOT EXISTS productdescriptions (
				id SERIAL PRIMARY KEY,
				product_id INT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
				title TEXT NOT NULL DEFAULT '',
				content TEXT NOT NULL DEFAULT '',
				position INT NOT NULL DEFAULT 0
			)`},
		{"productvariants", `
			CREATE TABLE IF NOT EXISTS productvariants (
				id SERIAL PRIMARY KEY,
				product_id INT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
				name TEXT NOT NULL
			)`},
		{"productvariantoptions", `
			CREATE TABLE IF NOT EXISTS productvariantoptions (
				id SERIAL PRIMARY KEY,
				variant_id INT NOT NULL REFERENCES productvariants(id) ON DELETE CASCADE,
				name TEXT NOT NULL,
				price NUMERIC(10,2) NOT NULL DEFAULT 0,
				is_published BOOLEAN NOT NULL DEFAULT FALSE,
				out_of_stock BOOLEAN NOT NULL DEFAULT FALSE,
				is_default BOOLEAN NOT NULL DEFAULT FALSE
			)`},
		{"branding", `
			CREATE TABLE IF NOT EXISTS branding (
				id INT PRIMARY KEY,
				document JSONB NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`},
		{"preferences", `
			CREATE TABLE IF NOT EXISTS preferences (
				key TEXT PRIMARY KEY,
				value JSONB NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`},
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt.query); err != nil {
			t.Logf("failed to create table %s: %v", stmt.name, err)
		}
	}

	setupNotifyTrigger(t, db)
}

// setupNotifyTrigger installs the orders change trigger that feeds the
// realtime listener through NOTIFY.
func setupNotifyTrigger(t *testing.T, db *sql.DB) {
	function := `
		CREATE OR REPLACE FUNCTION notify_orders_changed() RETURNS trigger AS $$
		DECLARE
			row_id TEXT;
		BEGIN
			IF TG_OP = 'DELETE' THEN
				row_id := OLD.id;
			ELSE
				row_id := NEW.id;
			END IF;
			PERFORM pg_notify('orders_changed', json_build_object(
				'table', TG_TABLE_NAME,
				'op', TG_OP,
				'id', row_id
			)::text);
			RETURN NULL;
		END;
		$$ LANGUAGE plpgsql`

	trigger := `
		CREATE OR REPLACE TRIGGER orders_changed_trigger
		AFTER INSERT OR UPDATE OR DELETE ON orders
		FOR EACH ROW EXECUTE FUNCTION notify_orders_changed()`

	if _, err := db.Exec(function); err != nil {
		t.Logf("failed to create notify function: %v", err)
		return
	}
	if _, err := db.Exec(trigger); err != nil {
		t.Logf("failed to create notify trigger: %v", err)
	}
}
