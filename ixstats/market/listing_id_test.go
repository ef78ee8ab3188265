package market

import (
	"strings"
	"testing"
)

func TestCodeGenerator_Next(t *testing.T) {
	var gen codeGenerator

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := gen.next()
		if err != nil {
			t.Fatalf("next() error on iteration %d: %v", i, err)
		}

		if len(code) != listingCodeLength {
			t.Errorf("code %q has length %d, want %d", code, len(code), listingCodeLength)
		}
		if code != strings.ToUpper(code) {
			t.Errorf("code %q is not upper case", code)
		}
		if seen[code] {
			t.Errorf("code %q issued twice", code)
		}
		seen[code] = true
	}
}
