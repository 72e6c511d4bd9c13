package orders

import (
	"regexp"
	"testing"
	"time"
)

func TestGenerateOrderCode_Format(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^BB-20260830-[0-9A-Z]{4}$`)

	for i := 0; i < 100; i++ {
		code := GenerateOrderCode(now)
		if !pattern.MatchString(code) {
			t.Fatalf("code %q does not match %s", code, pattern)
		}
	}
}

func TestGenerateOrderCode_Varies(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[GenerateOrderCode(now)] = true
	}
	// 4 random base-36 chars: 50 draws colliding down to 1 value would mean
	// the suffix is not random at all
	if len(seen) < 2 {
		t.Fatalf("expected varied codes, got %d distinct", len(seen))
	}
}
