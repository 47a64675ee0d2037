package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	activation "github.com/catalyst-wireless/activation"
	_ "github.com/mattn/go-sqlite3"
)

func TestFilesystems_ReturnsPostgresAndSQLite(t *testing.T) {
	filesystems, err := Filesystems()
	if err != nil {
		t.Fatalf("filesystems: %v", err)
	}
	if len(filesystems) != 2 {
		t.Fatalf("expected 2 filesystems, got %d", len(filesystems))
	}

	var postgresFound bool
	var sqliteFound bool
	for _, entry := range filesystems {
		matches, globErr := fs.Glob(entry.FS, "*.up.sql")
		if globErr != nil {
			t.Fatalf("glob %s: %v", entry.Dialect, globErr)
		}
		if len(matches) == 0 {
			t.Fatalf("expected %s migration files, got none", entry.Dialect)
		}
		switch entry.Dialect {
		case DialectPostgres:
			postgresFound = true
		case DialectSQLite:
			sqliteFound = true
		}
	}

	if !postgresFound {
		t.Fatalf("expected postgres filesystem")
	}
	if !sqliteFound {
		t.Fatalf("expected sqlite filesystem")
	}
}

func TestRegister_UsesValidationTargets(t *testing.T) {
	var calls []string
	_, err := Register(context.Background(), func(_ context.Context, dialect string, _ string, _ fs.FS) error {
		calls = append(calls, dialect)
		return nil
	}, WithValidationTargets(DialectSQLite))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if len(calls) != 1 {
		t.Fatalf("expected 1 registration call, got %d", len(calls))
	}
	if calls[0] != DialectSQLite {
		t.Fatalf("expected sqlite registration, got %q", calls[0])
	}
}

func TestRegister_RequiresRegisterFunc(t *testing.T) {
	if _, err := Register(context.Background(), nil); err == nil {
		t.Fatalf("expected rejection of a nil register function")
	}
}

func TestRegister_SourceLabelOverride(t *testing.T) {
	var seenLabel string
	_, err := Register(context.Background(), func(_ context.Context, _ string, label string, _ fs.FS) error {
		seenLabel = label
		return nil
	},
		WithValidationTargets(DialectSQLite),
		WithDialectSourceLabel("billing-activation"),
	)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if seenLabel != "billing-activation" {
		t.Fatalf("expected overridden source label, got %q", seenLabel)
	}
}

func TestActivationSchemaMigrationPair_ExistsForBothDialects(t *testing.T) {
	root := activation.GetMigrationsFS()
	paths := []string{
		"data/sql/migrations/0001_activation_schema.up.sql",
		"data/sql/migrations/0001_activation_schema.down.sql",
		"data/sql/migrations/sqlite/0001_activation_schema.up.sql",
		"data/sql/migrations/sqlite/0001_activation_schema.down.sql",
	}
	for _, migrationPath := range paths {
		content, err := fs.ReadFile(root, migrationPath)
		if err != nil {
			t.Fatalf("read migration %s: %v", migrationPath, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			t.Fatalf("expected migration %s to have SQL content", migrationPath)
		}
	}
}

func TestSQLiteActivationSchemaMigration_ApplyAndRollback(t *testing.T) {
	db, err := sql.Open("sqlite3", "file:migrations-activation-schema?mode=memory&cache=shared&_foreign_keys=on")
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	defer func() { _ = db.Close() }()

	root := activation.GetMigrationsFS()
	sqliteMigrations, err := fs.Sub(root, "data/sql/migrations/sqlite")
	if err != nil {
		t.Fatalf("resolve sqlite migrations: %v", err)
	}

	if err := execSQLMigration(context.Background(), db, sqliteMigrations, "0001_activation_schema.up.sql"); err != nil {
		t.Fatalf("apply schema migration up: %v", err)
	}

	requiredTables := []string{
		"carrier_inventory",
		"carrier_inventory_3rd_party",
		"carrier_inventory_private",
		"carrier_accounts",
		"business_plans",
		"carrier_bearer_paths",
		"carrier_catalog",
		"esim_inventory",
		"activation_transactions",
		"activation_transaction_lines",
	}
	for _, tableName := range requiredTables {
		var count int
		if err := db.QueryRowContext(
			context.Background(),
			`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`,
			tableName,
		).Scan(&count); err != nil {
			t.Fatalf("query sqlite_master for %s: %v", tableName, err)
		}
		if count != 1 {
			t.Fatalf("expected table %s to exist after up migration", tableName)
		}
	}

	insertInventory := `
		INSERT INTO carrier_inventory (id, carrier, business_type, sku, plan_id)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := db.ExecContext(context.Background(), insertInventory,
		"inv_1", "verizon", "education", "SKU-EDU", "PLAN-EDU",
	); err != nil {
		t.Fatalf("insert inventory row: %v", err)
	}
	if _, err := db.ExecContext(context.Background(), insertInventory,
		"inv_2", "verizon", "education", "SKU-DUP", "PLAN-DUP",
	); err == nil {
		t.Fatalf("expected carrier/business_type uniqueness violation")
	}

	if _, err := db.ExecContext(context.Background(),
		`INSERT INTO esim_inventory (id, iccid, carrier, corp_id, status) VALUES (?, ?, ?, ?, ?)`,
		"esim_1", "8914800000000000002", "verizon", "corp_1", "available",
	); err != nil {
		t.Fatalf("insert esim row: %v", err)
	}
	if _, err := db.ExecContext(context.Background(),
		`INSERT INTO esim_inventory (id, iccid, carrier, corp_id, status) VALUES (?, ?, ?, ?, ?)`,
		"esim_2", "8914800000000000002", "verizon", "corp_1", "available",
	); err == nil {
		t.Fatalf("expected iccid uniqueness violation")
	}

	if err := execSQLMigration(context.Background(), db, sqliteMigrations, "0001_activation_schema.down.sql"); err != nil {
		t.Fatalf("apply schema migration down: %v", err)
	}

	for _, tableName := range requiredTables {
		var count int
		if err := db.QueryRowContext(
			context.Background(),
			`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`,
			tableName,
		).Scan(&count); err != nil {
			t.Fatalf("query sqlite_master after down for %s: %v", tableName, err)
		}
		if count != 0 {
			t.Fatalf("expected table %s to be dropped after down migration", tableName)
		}
	}
}

func TestMigrationsRoot_FallsBackToFlatFilesystem(t *testing.T) {
	root := activation.GetMigrationsFS()
	flat, err := fs.Sub(root, "data/sql/migrations")
	if err != nil {
		t.Fatalf("resolve flat filesystem: %v", err)
	}
	filesystems, err := Filesystems(flat)
	if err != nil {
		t.Fatalf("filesystems from flat root: %v", err)
	}
	if len(filesystems) != 2 {
		t.Fatalf("expected 2 filesystems, got %d", len(filesystems))
	}
	for _, entry := range filesystems {
		if entry.FS == nil {
			t.Fatalf("expected %s filesystem", entry.Dialect)
		}
	}
}

func execSQLMigration(ctx context.Context, db *sql.DB, fsys fs.FS, filename string) error {
	content, err := fs.ReadFile(fsys, filepath.Clean(filename))
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("exec %s: %w", filename, err)
	}
	return nil
}
