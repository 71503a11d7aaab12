package checkin

import (
	"crypto/rand"
	"fmt"
	"time"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateVisitorID returns an id of the form VIS-<unix millis>-<7 chars>.
func GenerateVisitorID(now time.Time) (string, error) {
	buf := make([]byte, 7)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate visitor id: %w", err)
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return fmt.Sprintf("VIS-%d-%s", now.UnixMilli(), buf), nil
}
