package database

import "testing"

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "no placeholders",
			query:    "SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "single placeholder",
			query:    "SELECT * FROM users WHERE id = ?",
			expected: "SELECT * FROM users WHERE id = $1",
		},
		{
			name:     "multiple placeholders",
			query:    "INSERT INTO children (family_id, name) VALUES (?, ?)",
			expected: "INSERT INTO children (family_id, name) VALUES ($1, $2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewritePlaceholdersToNumbered(tt.query); got != tt.expected {
				t.Errorf("rewritePlaceholdersToNumbered() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDialectPlaceholderBehavior(t *testing.T) {
	query := "SELECT * FROM users WHERE id = ?"

	if got := NewSQLiteDialect().RewriteQuery(query); got != query {
		t.Errorf("sqlite rewrote query to %q", got)
	}
	if got := NewMySQLDialect().RewriteQuery(query); got != query {
		t.Errorf("mysql rewrote query to %q", got)
	}
	if got := NewPostgresDialect().RewriteQuery(query); got != "SELECT * FROM users WHERE id = $1" {
		t.Errorf("postgres rewrite = %q", got)
	}
}

func TestDialectBoolValues(t *testing.T) {
	sqlite := NewSQLiteDialect()
	if sqlite.BoolValue(true) != "1" || sqlite.BoolValue(false) != "0" {
		t.Error("sqlite bools should be 1/0")
	}
	postgres := NewPostgresDialect()
	if postgres.BoolValue(true) != "TRUE" || postgres.BoolValue(false) != "FALSE" {
		t.Error("postgres bools should be TRUE/FALSE")
	}
}

func TestExecReturningIDSQLite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	db, err := Initialize(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE things (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT)"); err != nil {
		t.Fatalf("create table failed: %v", err)
	}

	first, err := db.ExecReturningID("INSERT INTO things (name) VALUES (?)", "one")
	if err != nil {
		t.Fatalf("ExecReturningID failed: %v", err)
	}
	second, err := db.ExecReturningID("INSERT INTO things (name) VALUES (?)", "two")
	if err != nil {
		t.Fatalf("ExecReturningID failed: %v", err)
	}
	if second != first+1 {
		t.Errorf("ids = %d, %d; want consecutive", first, second)
	}
}

func TestMigrationsRunOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	db, err := Initialize(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("first RunMigrations failed: %v", err)
	}
	// Second run must be a no-op, not a failure
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("second RunMigrations failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		t.Fatalf("migrations table missing: %v", err)
	}
	if count == 0 {
		t.Error("no migrations recorded")
	}
}
