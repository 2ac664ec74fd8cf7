package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestJournalPageRedirectsAnonymousUserToLogin(t *testing.T) {
	app, _ := newTestApp(t)

	root := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	if root.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("expected 303, got %d", root.StatusCode)
	}
	if location := root.Header.Get("Location"); location != "/login" {
		t.Fatalf("expected /login, got %q", location)
	}

	dated := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/?date=2026-02-19", nil))
	if location := dated.Header.Get("Location"); location != "/login?next=%2F%3Fdate%3D2026-02-19" {
		t.Fatalf("expected next path in redirect, got %q", location)
	}

	edit := doRequest(t, app, formRequest(http.MethodPost, "/journal/2026-02-19/edit", url.Values{"action": {"save"}}, ""))
	if location := edit.Header.Get("Location"); location != "/login" {
		t.Fatalf("expected form post redirected to /login, got %q", location)
	}
}

func TestJournalPageRejectsTamperedCookie(t *testing.T) {
	app, _ := newTestApp(t)

	authCookie := loginAndExtractAuthCookie(t, app)
	tampered := authCookie[:len(authCookie)-2] + "xx"

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Cookie", tampered)
	response := doRequest(t, app, request)
	if response.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("expected tampered cookie to be rejected, got %d", response.StatusCode)
	}
}

func TestLoginWithInvalidCredentialsGivesNoHint(t *testing.T) {
	app, _ := newTestApp(t)

	for _, form := range []url.Values{
		{"username": {testUsername}, "password": {"wrong"}},
		{"username": {"stranger"}, "password": {testPassword}},
	} {
		response := doRequest(t, app, formRequest(http.MethodPost, "/api/auth/login", form, ""))
		if response.StatusCode != fiber.StatusSeeOther {
			t.Fatalf("expected 303, got %d", response.StatusCode)
		}
		if location := response.Header.Get("Location"); location != "/login" {
			t.Fatalf("expected redirect to /login, got %q", location)
		}
		if responseCookieValue(response.Cookies(), authCookieName) != "" {
			t.Fatal("did not expect an auth cookie after failed login")
		}

		flash := responseCookieValue(response.Cookies(), flashCookieName)
		if flash == "" {
			t.Fatal("expected flash cookie after failed login")
		}
		body := smokeGET(t, app, flashCookieName+"="+flash, "/login", fiber.StatusOK)
		if !strings.Contains(body, "invalid credentials") {
			t.Fatalf("expected generic error on login page, got %s", body)
		}
		lowered := strings.ToLower(body)
		for _, hint := range []string{"wrong password", "unknown user", "user not found"} {
			if strings.Contains(lowered, hint) {
				t.Fatalf("login page leaks %q", hint)
			}
		}
	}
}

func TestLoginPageIgnoresUnsealedFlash(t *testing.T) {
	app, _ := newTestApp(t)

	// base64url of {"auth_error":"forged message"}
	forged := "eyJhdXRoX2Vycm9yIjoiZm9yZ2VkIG1lc3NhZ2UifQ"
	body := smokeGET(t, app, flashCookieName+"="+forged, "/login", fiber.StatusOK)
	if strings.Contains(body, "forged message") {
		t.Fatal("expected unsealed flash value to be dropped")
	}
}

func TestLoginWithJSONReturnsStatusCodes(t *testing.T) {
	app, _ := newTestApp(t)

	failed := doRequest(t, app, jsonRequest(http.MethodPost, "/api/auth/login", `{"username":"owner","password":"nope"}`))
	if failed.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", failed.StatusCode)
	}
	if message := readAPIError(t, failed.Body); message != "invalid credentials" {
		t.Fatalf("unexpected error %q", message)
	}

	missing := doRequest(t, app, jsonRequest(http.MethodPost, "/api/auth/login", `{"username":"owner"}`))
	if missing.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", missing.StatusCode)
	}

	ok := doRequest(t, app, jsonRequest(http.MethodPost, "/api/auth/login", `{"username":"owner","password":"correct horse battery"}`))
	if ok.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", ok.StatusCode)
	}
	if responseCookieValue(ok.Cookies(), authCookieName) == "" {
		t.Fatal("expected auth cookie after JSON login")
	}
}

func TestLoginRedirectsToSafeNextPath(t *testing.T) {
	app, _ := newTestApp(t)

	cases := map[string]string{
		"/?date=2026-02-19":    "/?date=2026-02-19",
		"//evil.example/x":     "/",
		"https://evil.example": "/",
		"":                     "/",
	}
	for next, expected := range cases {
		form := url.Values{"username": {testUsername}, "password": {testPassword}, "next": {next}}
		response := doRequest(t, app, formRequest(http.MethodPost, "/api/auth/login", form, ""))
		if location := response.Header.Get("Location"); location != expected {
			t.Fatalf("next=%q: expected %q, got %q", next, expected, location)
		}
	}
}

func TestRememberMeSetsPersistentCookie(t *testing.T) {
	app, _ := newTestApp(t)

	form := url.Values{"username": {testUsername}, "password": {testPassword}}
	session := doRequest(t, app, formRequest(http.MethodPost, "/api/auth/login", form, ""))
	if cookie := responseCookie(session.Cookies(), authCookieName); cookie == nil || !cookie.Expires.IsZero() {
		t.Fatalf("expected session cookie without expiry, got %+v", cookie)
	}

	form.Set("remember_me", "true")
	remembered := doRequest(t, app, formRequest(http.MethodPost, "/api/auth/login", form, ""))
	cookie := responseCookie(remembered.Cookies(), authCookieName)
	if cookie == nil || cookie.Expires.Before(time.Now().Add(29*24*time.Hour)) {
		t.Fatalf("expected remembered cookie to last about 30 days, got %+v", cookie)
	}
	if !cookie.HttpOnly {
		t.Fatal("expected HttpOnly auth cookie")
	}
}

func TestLogoutClearsAuthCookie(t *testing.T) {
	app, _ := newTestApp(t)
	authCookie := loginAndExtractAuthCookie(t, app)

	response := doRequest(t, app, formRequest(http.MethodPost, "/api/auth/logout", url.Values{}, authCookie))
	if response.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("expected 303, got %d", response.StatusCode)
	}
	if location := response.Header.Get("Location"); location != "/login" {
		t.Fatalf("expected /login, got %q", location)
	}
	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil {
		t.Fatal("expected auth cookie to be cleared")
	}
	if cookie.Value != "" || !cookie.Expires.Before(time.Now()) {
		t.Fatalf("expected expired empty cookie, got %+v", cookie)
	}
}

func TestSessionEndpointAndOpenAPI(t *testing.T) {
	app, _ := newTestApp(t)

	smokeGET(t, app, "", "/api/auth/session", fiber.StatusUnauthorized)

	authCookie := loginAndExtractAuthCookie(t, app)
	body := smokeGET(t, app, authCookie, "/api/auth/session", fiber.StatusOK)
	if !strings.Contains(body, `"username":"owner"`) {
		t.Fatalf("unexpected session payload %s", body)
	}

	smokeGET(t, app, "", "/api/entries", fiber.StatusOK)
}

func TestLoginPageRedirectsSignedInUser(t *testing.T) {
	app, _ := newTestApp(t)
	authCookie := loginAndExtractAuthCookie(t, app)

	request := httptest.NewRequest(http.MethodGet, "/login", nil)
	request.Header.Set("Cookie", authCookie)
	response := doRequest(t, app, request)
	if response.StatusCode != fiber.StatusSeeOther || response.Header.Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", response.StatusCode, response.Header.Get("Location"))
	}
}
