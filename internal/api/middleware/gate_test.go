package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/formgate/formgate/internal/logging"
	"github.com/formgate/formgate/internal/service"

	"github.com/gin-gonic/gin"
)

func testRouter(t *testing.T, handlers ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if err := logging.InitLogger(&logging.LogConfig{
		File:       filepath.Join(t.TempDir(), "test.log"),
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	}); err != nil {
		t.Fatal(err)
	}

	router := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.POST("/submit", chain...)
	return router
}

func TestRequireAjax(t *testing.T) {
	router := testRouter(t, RequireAjax())

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"ajax request", "XMLHttpRequest", http.StatusOK},
		{"missing header", "", http.StatusForbidden},
		{"wrong header", "fetch", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/submit", nil)
			if tt.header != "" {
				req.Header.Set("X-Requested-With", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestBotFilter(t *testing.T) {
	router := testRouter(t, BotFilter())

	tests := []struct {
		name       string
		userAgent  string
		wantStatus int
	}{
		{"browser", "Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/128.0", http.StatusOK},
		{"missing user agent", "", http.StatusForbidden},
		{"curl", "curl/8.5.0", http.StatusForbidden},
		{"python requests", "python-requests/2.32.0", http.StatusForbidden},
		{"go http client", "Go-http-client/2.0", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/submit", nil)
			if tt.userAgent != "" {
				req.Header.Set("User-Agent", tt.userAgent)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("User-Agent %q: got status %d, want %d", tt.userAgent, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestBotFilterLogsSignature(t *testing.T) {
	router := testRouter(t, BotFilter())

	// Re-point the logger at a known file so the rejection detail can
	// be inspected
	logFile := filepath.Join(t.TempDir(), "bot.log")
	if err := logging.InitLogger(&logging.LogConfig{
		File:       logFile,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	}); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set("User-Agent", "curl/8.5.0")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusForbidden)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), service.ErrBotSignature.Error()) {
		t.Errorf("log should name the rejection reason, got: %s", data)
	}
}

func TestSessionAssignsCookie(t *testing.T) {
	router := testRouter(t, Session())

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == SessionCookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a session cookie to be set")
	}
}

func TestSessionKeepsExistingCookie(t *testing.T) {
	router := testRouter(t, Session(), func(c *gin.Context) {
		if got := c.GetString(ContextKeySession); got != "existing-session" {
			t.Errorf("session ID = %q, want %q", got, "existing-session")
		}
	})

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "existing-session"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			t.Error("existing session cookie must not be reissued")
		}
	}
}
