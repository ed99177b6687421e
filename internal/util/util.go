package util

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	digits       = "0123456789"
	alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// DisplayTimeLayout renders timestamps as dd-mm-yyyy HH:MM:SS.
	DisplayTimeLayout = "02-01-2006 15:04:05"
)

// IST is India Standard Time, used for every user-facing timestamp.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// RandomDigits returns n cryptographically random decimal digits.
func RandomDigits(n int) (string, error) {
	return randomFrom(digits, n)
}

// RandomAlphanumeric returns n random upper-case letters and digits.
func RandomAlphanumeric(n int) (string, error) {
	return randomFrom(alphanumeric, n)
}

// PrefixedCode returns prefix followed by n random digits, e.g. ORD12345678.
func PrefixedCode(prefix string, n int) (string, error) {
	code, err := RandomDigits(n)
	if err != nil {
		return "", err
	}

	return prefix + code, nil
}

func randomFrom(alphabet string, n int) (string, error) {
	var b strings.Builder
	b.Grow(n)

	limit := big.NewInt(int64(len(alphabet)))
	for range n {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", errors.Wrap(err, "failed to read random source")
		}
		b.WriteByte(alphabet[idx.Int64()])
	}

	return b.String(), nil
}

// FormatDisplayTime renders t in IST with the display layout. Zero times render empty.
func FormatDisplayTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.In(IST).Format(DisplayTimeLayout)
}

// NowIST returns the current time in IST.
func NowIST() time.Time {
	return time.Now().In(IST)
}
