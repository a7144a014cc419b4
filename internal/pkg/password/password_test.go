package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	Cost = bcrypt.MinCost
	t.Cleanup(func() { Cost = DefaultCost })

	hash, err := Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !Verify("secret123", hash) {
		t.Error("Verify rejected the right password")
	}
	if Verify("secret124", hash) {
		t.Error("Verify accepted the wrong password")
	}
}

func TestTemporary(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		p, err := Temporary()
		if err != nil {
			t.Fatalf("Temporary: %v", err)
		}
		if len(p) != TemporaryLength {
			t.Errorf("len = %d, want %d", len(p), TemporaryLength)
		}
		for _, r := range p {
			if !strings.ContainsRune(temporaryAlphabet, r) {
				t.Errorf("unexpected rune %q in %q", r, p)
			}
		}
		seen[p] = true
	}
	if len(seen) < 2 {
		t.Error("Temporary returned the same password every time")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"1234567", false},
		{"12345678", true},
	}
	for _, tt := range tests {
		if got := ValidatePassword(tt.in); got != tt.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
