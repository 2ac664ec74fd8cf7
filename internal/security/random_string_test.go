package security

import (
	"strings"
	"testing"
)

func TestRandomString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		length   int
		alphabet string
		wantErr  bool
	}{
		{name: "negative length", length: -1, alphabet: "abc", wantErr: true},
		{name: "empty alphabet", length: 1, alphabet: "", wantErr: true},
		{name: "zero length", length: 0, alphabet: "abc"},
		{name: "single character", length: 8, alphabet: "X"},
		{name: "secret alphabet", length: 48, alphabet: SecretAlphabet},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := RandomString(test.length, test.alphabet)
			if test.wantErr {
				if err == nil {
					t.Fatalf("RandomString(%d, %q) expected error", test.length, test.alphabet)
				}
				return
			}
			if err != nil {
				t.Fatalf("RandomString(%d, %q) returned error: %v", test.length, test.alphabet, err)
			}
			if len(got) != test.length {
				t.Fatalf("RandomString(%d, %q) len = %d", test.length, test.alphabet, len(got))
			}
			for _, char := range got {
				if !strings.ContainsRune(test.alphabet, char) {
					t.Fatalf("RandomString produced %q outside the alphabet", char)
				}
			}
		})
	}
}

func TestSecretAlphabetSkipsAmbiguousCharacters(t *testing.T) {
	t.Parallel()

	for _, char := range "0O1lI" {
		if strings.ContainsRune(SecretAlphabet, char) {
			t.Fatalf("SecretAlphabet contains ambiguous %q", char)
		}
	}

	first, err := RandomString(32, SecretAlphabet)
	if err != nil {
		t.Fatalf("RandomString: %v", err)
	}
	second, err := RandomString(32, SecretAlphabet)
	if err != nil {
		t.Fatalf("RandomString: %v", err)
	}
	if first == second {
		t.Fatal("expected two secrets to differ")
	}
}

func TestRandomStringRejectsOversizedAlphabet(t *testing.T) {
	t.Parallel()

	if _, err := RandomString(4, strings.Repeat("a", 257)); err == nil {
		t.Fatal("expected alphabet longer than 256 to fail")
	}
}

func TestNewSecretHonorsMinimumLength(t *testing.T) {
	t.Parallel()

	for _, requested := range []int{0, 8, MinSecretLength, 64} {
		secret, err := NewSecret(requested)
		if err != nil {
			t.Fatalf("NewSecret(%d): %v", requested, err)
		}
		want := max(requested, MinSecretLength)
		if len(secret) != want {
			t.Fatalf("NewSecret(%d) len = %d, want %d", requested, len(secret), want)
		}
	}
}
