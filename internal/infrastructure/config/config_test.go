package config

import "testing"

func TestDatabaseDriver(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"sqlite3", "sqlite3", false},
		{" SQLite ", "sqlite3", false},
		{"postgresql", "postgres", false},
		{"", "", true},
		{"mysql", "", true},
	}
	for _, c := range cases {
		cfg := &Config{Database: DatabaseConfig{Driver: c.in}}
		got, err := cfg.DatabaseDriver()
		if (err != nil) != c.wantErr {
			t.Fatalf("DatabaseDriver(%q) error = %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("DatabaseDriver(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATA_ROOT", "corpus")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if root, _ := cfg.DataRoot(); root != "corpus" {
		t.Fatalf("data root = %q", root)
	}
	if dsn, _ := cfg.DatabaseURL(); dsn != "file:ordasafn.db?_fk=1" {
		t.Fatalf("dsn = %q", dsn)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
}
