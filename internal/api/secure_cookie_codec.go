package api

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	sealedCookieVersion = "v1"
	sealedCookieKeyInfo = "daylog.secure-cookie.v1"
	sealedCookieAADBase = "daylog.cookie."
)

var (
	errInvalidSecureCookieValue = errors.New("invalid secure cookie value")
	errMissingCookiePurpose     = errors.New("secure cookie purpose is required")
)

// secureCookieCodec seals cookie values with AES-GCM under a key derived
// from SECRET_KEY. Each cookie name seals with its own purpose string,
// bound as additional data, so a flash value never opens as a session.
type secureCookieCodec struct {
	aead cipher.AEAD
}

func newSecureCookieCodec(secretKey []byte) (*secureCookieCodec, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("secure cookie secret key is required")
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secretKey, nil, []byte(sealedCookieKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive secure cookie key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init secure cookie cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init secure cookie aead: %w", err)
	}
	return &secureCookieCodec{aead: aead}, nil
}

func (codec *secureCookieCodec) seal(purpose string, plaintext []byte) (string, error) {
	aad, err := cookieAAD(purpose)
	if err != nil {
		return "", err
	}

	// nonce || ciphertext, so open can split on the fixed nonce size.
	nonce := make([]byte, codec.aead.NonceSize(), codec.aead.NonceSize()+len(plaintext)+codec.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate secure cookie nonce: %w", err)
	}
	sealed := codec.aead.Seal(nonce, nonce, plaintext, aad)
	return sealedCookieVersion + "." + base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (codec *secureCookieCodec) open(purpose string, value string) ([]byte, error) {
	aad, err := cookieAAD(purpose)
	if err != nil {
		return nil, err
	}

	version, encoded, found := strings.Cut(strings.TrimSpace(value), ".")
	if !found || version != sealedCookieVersion || encoded == "" {
		return nil, errInvalidSecureCookieValue
	}
	sealed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil || len(sealed) <= codec.aead.NonceSize() {
		return nil, errInvalidSecureCookieValue
	}

	nonceSize := codec.aead.NonceSize()
	plaintext, err := codec.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], aad)
	if err != nil {
		return nil, errInvalidSecureCookieValue
	}
	return plaintext, nil
}

func cookieAAD(purpose string) ([]byte, error) {
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return nil, errMissingCookiePurpose
	}
	return []byte(sealedCookieAADBase + purpose), nil
}
