package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	// Point the store at a throwaway database before anything opens it.
	path := filepath.Join(os.TempDir(), fmt.Sprintf("outreach-tracker-test-%d.db", time.Now().UnixNano()))
	os.Setenv("DB_PATH", path)

	code := m.Run()

	os.Remove(path)
	os.Exit(code)
}
