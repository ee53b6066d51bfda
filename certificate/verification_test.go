package certificate

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^\d{8}-[0-9A-F]{32}$`)

func TestVerificationCodeFormat(t *testing.T) {
	issuedAt := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	code, err := GenerateVerificationCode(issuedAt)
	require.NoError(t, err)
	assert.Regexp(t, codePattern, code)
	assert.True(t, strings.HasPrefix(code, "20250314-"))
}

func TestVerificationCodeSuffixNeverRepeats(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	now := time.Now()
	for i := 0; i < 10000; i++ {
		code, err := GenerateVerificationCode(now)
		require.NoError(t, err)
		suffix := code[len(code)-32:]
		_, dup := seen[suffix]
		require.False(t, dup, "duplicate suffix after %d codes", i)
		seen[suffix] = struct{}{}
	}
}
