package orders

import (
	"crypto/rand"
	"time"
)

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateOrderCode builds a human-readable order code: BB-YYYYMMDD-XXXX with
// a random base-36 suffix. Collisions are statistically negligible and are
// not mechanically guaranteed away; the unique index on order_code is the
// backstop.
func GenerateOrderCode(now time.Time) string {
	suffix := make([]byte, 4)
	random := make([]byte, 4)
	_, _ = rand.Read(random)
	for i, b := range random {
		suffix[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return "BB-" + now.Format("20060102") + "-" + string(suffix)
}
