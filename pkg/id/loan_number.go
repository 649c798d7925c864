package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewLoanNumber returns a human-readable loan number like "LN-20260831-3f9a2c1d".
// The random suffix is 8 lowercase hex characters.
func NewLoanNumber(now time.Time) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return fmt.Sprintf("LN-%s-%s", now.UTC().Format("20060102"), hex.EncodeToString(b))
}
