package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daylog/internal/db"
	"github.com/terraincognita07/daylog/internal/media"
	"github.com/terraincognita07/daylog/internal/models"
	"github.com/terraincognita07/daylog/internal/services"
)

const (
	testUsername  = "owner"
	testPassword  = "correct horse battery"
	testSecretKey = "0123456789abcdef0123456789abcdef"
)

var testNow = time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)

type testUpload struct {
	field       string
	name        string
	contentType string
	data        []byte
}

func newTestApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	dataDir := t.TempDir()
	store := media.NewStore(media.NewFileBackend(dataDir))
	journal := services.NewJournalService(db.NewEntryRepository(dataDir), store, time.UTC).
		WithClock(func() time.Time { return testNow })

	handler, err := NewHandler(HandlerConfig{
		Journal:   journal,
		Auth:      services.NewStaticCredentials(testUsername, testPassword),
		SecretKey: testSecretKey,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, dataDir
}

func loginAndExtractAuthCookie(t *testing.T, app *fiber.App) string {
	t.Helper()

	form := url.Values{
		"username": {testUsername},
		"password": {testPassword},
	}
	request := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("expected login redirect, got %d", response.StatusCode)
	}
	value := responseCookieValue(response.Cookies(), authCookieName)
	if value == "" {
		t.Fatal("expected auth cookie after login")
	}
	return authCookieName + "=" + value
}

func doRequest(t *testing.T, app *fiber.App, request *http.Request) *http.Response {
	t.Helper()
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func jsonRequest(method string, path string, body string) *http.Request {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	return request
}

func formRequest(method string, path string, form url.Values, cookie string) *http.Request {
	request := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	return request
}

func multipartRequest(t *testing.T, path string, fields url.Values, uploads []testUpload, cookie string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, values := range fields {
		for _, value := range values {
			if err := writer.WriteField(key, value); err != nil {
				t.Fatalf("write field %s: %v", key, err)
			}
		}
	}
	for _, upload := range uploads {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="`+upload.field+`"; filename="`+upload.name+`"`)
		header.Set("Content-Type", upload.contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create part %s: %v", upload.name, err)
		}
		if _, err := part.Write(upload.data); err != nil {
			t.Fatalf("write part %s: %v", upload.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, path, body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	return request
}

func readBody(t *testing.T, response *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(body)
}

func decodeEntry(t *testing.T, response *http.Response) models.Entry {
	t.Helper()
	entry := models.Entry{}
	if err := json.NewDecoder(response.Body).Decode(&entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	return entry
}

func displayOrderIDs(entry models.Entry) []string {
	ids := make([]string, 0, len(entry.DisplayOrder))
	for _, item := range entry.DisplayOrder {
		ids = append(ids, item.ID)
	}
	return ids
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload["error"]
}

func smokeGET(t *testing.T, app *fiber.App, authCookie string, path string, expectedStatus int) string {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer response.Body.Close()

	if response.StatusCode != expectedStatus {
		t.Fatalf("GET %s expected status %d, got %d", path, expectedStatus, response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("GET %s read body failed: %v", path, err)
	}
	return string(body)
}
