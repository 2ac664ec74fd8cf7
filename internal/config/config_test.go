package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DOTENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("SECRET_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("AUTH_USER", "owner")
	t.Setenv("AUTH_PASS", "secret")
	t.Setenv("PORT", "")
	t.Setenv("TZ", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("COOKIE_SECURE", "")
	t.Setenv("BODY_LIMIT_MB", "")
	t.Setenv("MEDIA_BACKEND", "")
	t.Setenv("S3_BUCKET", "")
}

func TestResolveSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	if _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY is empty")
	}

	t.Setenv("SECRET_KEY", "change_me_in_production")
	if _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY uses insecure placeholder")
	}

	t.Setenv("SECRET_KEY", "replace_with_at_least_32_random_characters")
	if _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY uses example placeholder")
	}

	t.Setenv("SECRET_KEY", "too-short-secret")
	if _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY is too short")
	}

	valid := "0123456789abcdef0123456789abcdef"
	t.Setenv("SECRET_KEY", valid)

	secret, err := resolveSecretKey()
	if err != nil {
		t.Fatalf("expected valid secret, got error: %v", err)
	}
	if secret != valid {
		t.Fatalf("expected %q, got %q", valid, secret)
	}
}

func TestResolvePort(t *testing.T) {
	t.Setenv("PORT", "")
	port, err := resolvePort()
	if err != nil {
		t.Fatalf("expected default port, got error: %v", err)
	}
	if port != "8080" {
		t.Fatalf("expected default port 8080, got %q", port)
	}

	t.Setenv("PORT", "9090")
	port, err = resolvePort()
	if err != nil {
		t.Fatalf("expected valid port, got error: %v", err)
	}
	if port != "9090" {
		t.Fatalf("expected port 9090, got %q", port)
	}

	for _, invalid := range []string{"0", "70000", "not-a-number"} {
		t.Setenv("PORT", invalid)
		if _, err := resolvePort(); err == nil {
			t.Fatalf("expected invalid port %q to fail", invalid)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "data" {
		t.Fatalf("expected default data dir, got %q", cfg.DataDir)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.Location.String() != "UTC" {
		t.Fatalf("expected UTC location, got %s", cfg.Location)
	}
	if cfg.CookieSecure {
		t.Fatal("expected insecure cookies by default")
	}
	if cfg.MediaBackend != MediaBackendFS {
		t.Fatalf("expected fs media backend, got %q", cfg.MediaBackend)
	}
	if cfg.BodyLimitBytes() != 64*1024*1024 {
		t.Fatalf("unexpected body limit %d", cfg.BodyLimitBytes())
	}
}

func TestLoadRequiresCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTH_PASS", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without AUTH_PASS")
	}
}

func TestLoadValidatesMediaBackend(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("MEDIA_BACKEND", "ftp")
	if _, err := Load(); err == nil {
		t.Fatal("expected unknown media backend to fail")
	}

	t.Setenv("MEDIA_BACKEND", "S3")
	if _, err := Load(); err == nil {
		t.Fatal("expected s3 backend without bucket to fail")
	}

	t.Setenv("S3_BUCKET", "journal")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MediaBackend != MediaBackendS3 || cfg.S3.Bucket != "journal" {
		t.Fatalf("unexpected media config %+v", cfg)
	}
}

func TestLoadRejectsInvalidNumbers(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BODY_LIMIT_MB", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("expected negative body limit to fail")
	}

	setRequiredEnv(t)
	t.Setenv("COOKIE_SECURE", "maybe")
	if _, err := Load(); err == nil {
		t.Fatal("expected invalid COOKIE_SECURE to fail")
	}
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	setRequiredEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := "DATA_DIR=/srv/journal\nAUTH_USER=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("DOTENV_PATH", path)
	// An empty value still counts as set, so clear it for the file to apply.
	if err := os.Unsetenv("DATA_DIR"); err != nil {
		t.Fatalf("unset DATA_DIR: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Username != "owner" {
		t.Fatalf("expected environment to win over .env, got %q", cfg.Username)
	}
	if cfg.DataDir != "/srv/journal" {
		t.Fatalf("expected DATA_DIR from .env, got %q", cfg.DataDir)
	}
}

func TestLoadStorageSkipsCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SECRET_KEY", "")
	t.Setenv("AUTH_USER", "")

	cfg, err := LoadStorage()
	if err != nil {
		t.Fatalf("LoadStorage: %v", err)
	}
	if cfg.DataDir != "data" {
		t.Fatalf("unexpected data dir %q", cfg.DataDir)
	}
}
