package postgres

import (
	"strings"
	"testing"

	"github.com/evenup/evenup/internal/domain"
)

func TestCodeGeneratorProducesValidCodes(t *testing.T) {
	gen := NewCodeGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := gen.Generate()

		if err := domain.ValidateGroupCode(code); err != nil {
			t.Fatalf("generated invalid code %q: %v", code, err)
		}
		for _, c := range code {
			if !strings.ContainsRune(codeAlphabet, c) {
				t.Fatalf("code %q contains character outside alphabet", code)
			}
		}
		seen[code] = true
	}

	// 100 draws from a 32^6 space colliding down to a handful would mean
	// the generator is broken.
	if len(seen) < 90 {
		t.Fatalf("expected mostly distinct codes, got %d distinct", len(seen))
	}
}
