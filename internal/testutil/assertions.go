package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertLogCount checks how many log lines contain substr.
func AssertLogCount(t *testing.T, result *HarnessResult, substr string, want int) {
	t.Helper()

	got := 0
	for _, line := range strings.Split(result.LogOutput(), "\n") {
		if strings.Contains(line, substr) {
			got++
		}
	}
	assert.Equal(t, want, got, "log lines containing %q", substr)
}
