package testinfra

import (
	"context"
	"os"
	"sync"
	"testing"
)

// TestConnEnv overrides the container with an existing database.
const TestConnEnv = "BOOKXMP_TEST_CONN"

var (
	containerOnce sync.Once
	containerConn string
	containerErr  error
)

func sharedContainer() (string, error) {
	containerOnce.Do(func() {
		ctr, err := StartCatalogPostgres(context.Background())
		if err != nil {
			containerErr = err
			return
		}
		containerConn = ctr.ConnString
	})
	return containerConn, containerErr
}

// RequireDatabase returns a catalog connection string or skips the test.
// Priority: BOOKXMP_TEST_CONN > shared testcontainer > skip. Always skipped
// in -short mode.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if conn := os.Getenv(TestConnEnv); conn != "" {
		return conn
	}
	conn, err := sharedContainer()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", TestConnEnv, err)
	}
	return conn
}
