package main

import (
	"os"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

// envPrefixes are the variables the CLI reads its settings from.
var envPrefixes = []string{"ATS_", "RATE_LIMIT_"}

// TestMain loads .env for credentials used by s3 or URL sources, then clears
// every CLI setting inherited from the shell or .env so commands run on the
// built-in defaults.
func TestMain(m *testing.M) {
	_ = godotenv.Load()
	clearSettingsEnv()

	os.Exit(m.Run())
}

func clearSettingsEnv() {
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		for _, prefix := range envPrefixes {
			if strings.HasPrefix(name, prefix) {
				_ = os.Unsetenv(name)
				break
			}
		}
	}
}

func TestClearSettingsEnv(t *testing.T) {
	t.Setenv("ATS_FORMAT", "json")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("ATSX_UNRELATED", "kept")

	clearSettingsEnv()

	for _, name := range []string{"ATS_FORMAT", "RATE_LIMIT_ENABLED"} {
		_, ok := os.LookupEnv(name)
		assert.False(t, ok, name)
	}
	assert.Equal(t, "kept", os.Getenv("ATSX_UNRELATED"))
}
