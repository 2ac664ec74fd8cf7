package api

import (
	"bytes"
	"testing"
)

func TestSecureCookieCodecRoundTrip(t *testing.T) {
	codec, err := newSecureCookieCodec([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("newSecureCookieCodec: %v", err)
	}

	sealed, err := codec.seal("auth", []byte("token-value"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Contains([]byte(sealed), []byte("token-value")) {
		t.Fatal("expected sealed value to hide the plaintext")
	}

	opened, err := codec.open("auth", sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if string(opened) != "token-value" {
		t.Fatalf("expected token-value, got %q", opened)
	}
}

func TestSecureCookieCodecRejectsPurposeMismatchAndTampering(t *testing.T) {
	codec, err := newSecureCookieCodec([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("newSecureCookieCodec: %v", err)
	}
	sealed, err := codec.seal("auth", []byte("token-value"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	if _, err := codec.open("flash", sealed); err == nil {
		t.Fatal("expected purpose mismatch to fail")
	}
	for _, raw := range []string{"", "v1.", "v2." + sealed[3:], "garbage", sealed + "A"} {
		if _, err := codec.open("auth", raw); err == nil {
			t.Fatalf("expected %q to fail", raw)
		}
	}

	other, err := newSecureCookieCodec([]byte("another-secret-key-0123456789abcdef"))
	if err != nil {
		t.Fatalf("newSecureCookieCodec: %v", err)
	}
	if _, err := other.open("auth", sealed); err == nil {
		t.Fatal("expected a different key to fail")
	}
}

func TestSecureCookieCodecRequiresKey(t *testing.T) {
	if _, err := newSecureCookieCodec(nil); err == nil {
		t.Fatal("expected empty key to fail")
	}
}

func TestSecureCookieCodecRequiresPurpose(t *testing.T) {
	codec, err := newSecureCookieCodec([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("newSecureCookieCodec: %v", err)
	}
	if _, err := codec.seal(" ", []byte("value")); err == nil {
		t.Fatal("expected blank purpose to fail on seal")
	}
	if _, err := codec.open("", "v1.AAAA"); err == nil {
		t.Fatal("expected blank purpose to fail on open")
	}
}
