package repository

import "testing"

func TestDBDialectNameDefaultsToSQLite(t *testing.T) {
	if got := dbDialectName(nil); got != "sqlite" {
		t.Fatalf("nil db dialect want sqlite got %s", got)
	}
}

func TestSupportsRowLockingByDialect(t *testing.T) {
	cases := map[string]bool{
		"postgres":   true,
		"PostgreSQL": true,
		"sqlite":     false,
		"":           false,
	}
	for dialect, want := range cases {
		if got := supportsRowLockingByDialect(dialect); got != want {
			t.Fatalf("dialect %q want %v got %v", dialect, want, got)
		}
	}
}
