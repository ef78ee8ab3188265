package market

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
	"sync"
)

const (
	listingCodeLength = 4
	codeGenRetries    = 5
)

// codeGenerator hands out short human-facing listing codes. Codes are random
// base32, de-duplicated in memory for the process lifetime; the unique column
// constraint backstops across restarts.
type codeGenerator struct {
	usedCodes sync.Map
}

func (g *codeGenerator) next() (string, error) {
	for i := 0; i < codeGenRetries; i++ {
		bytes := make([]byte, 3)
		if _, err := rand.Read(bytes); err != nil {
			return "", fmt.Errorf("failed to generate random bytes: %w", err)
		}

		encoded := base32.StdEncoding.EncodeToString(bytes)
		code := strings.ToUpper(encoded[:listingCodeLength])

		if _, exists := g.usedCodes.LoadOrStore(code, true); !exists {
			return code, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique listing code after %d attempts", codeGenRetries)
}
