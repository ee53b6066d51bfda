package certificate

import (
	"crypto/rand"
	"fmt"
	"time"
)

// GenerateVerificationCode produces the public proof-of-authenticity token
// embedded in certificate URLs: {yyyyMMdd}-{32 uppercase hex}. The suffix
// comes from 16 bytes of a cryptographically secure source so codes cannot
// be forged by guessing. Collisions are astronomically unlikely but the
// issuer still keys uniqueness on (user, course), not on the code.
func GenerateVerificationCode(issuedAt time.Time) (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("verification code entropy: %w", err)
	}
	return fmt.Sprintf("%s-%X", issuedAt.Format("20060102"), buf[:]), nil
}
