package password

import (
	"strings"
	"testing"

	"github.com/Alijeyrad/clinic_console/config"
)

// cheap keeps the tests fast; the format is the same.
var cheap = &Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHash(t *testing.T) {
	hash, err := Hash("correcthorsebatterystaple", cheap)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Errorf("unexpected hash format %s", hash)
	}
	if parts := strings.Split(hash, "$"); len(parts) != 6 {
		t.Errorf("expected 6 parts, got %d", len(parts))
	}
}

func TestVerify(t *testing.T) {
	hash, err := Hash("mysecretpassword", cheap)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	tests := []struct {
		name     string
		hash     string
		password string
		wantErr  error
	}{
		{"correct password", hash, "mysecretpassword", nil},
		{"wrong password", hash, "wrongpassword", ErrMismatch},
		{"empty password", hash, "", ErrMismatch},
		{"invalid hash format", "notahash", "mysecretpassword", ErrInvalidHash},
		{"wrong algorithm", "$bcrypt$v=19$m=1,t=1,p=1$AAAA$AAAA", "x", ErrInvalidHash},
		{"wrong version", "$argon2id$v=16$m=1024,t=1,p=1$AAAA$AAAA", "x", ErrIncompatibleVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Verify(tt.hash, tt.password); err != tt.wantErr {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHashUniqueness(t *testing.T) {
	h1, _ := Hash("samepassword", cheap)
	h2, _ := Hash("samepassword", cheap)
	if h1 == h2 {
		t.Error("expected different salts to give different hashes")
	}
}

func TestFromCentralConfig(t *testing.T) {
	p := FromCentralConfig(config.MockAPIConfig{PasswordMemoryKiB: 2048})
	if p.Memory != 2048 {
		t.Errorf("Memory = %d, want 2048", p.Memory)
	}
	if p.Iterations != DefaultParams().Iterations {
		t.Errorf("Iterations = %d, want default", p.Iterations)
	}
}
