package test

import (
	"path/filepath"
	"testing"
)

// TmpFile returns the path of a fresh SQLite database file that is removed
// when the test ends.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "ledger.db")
}
