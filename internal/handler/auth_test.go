package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/internhub/desk-reservation/internal/config"
	"github.com/internhub/desk-reservation/internal/middleware"
)

func TestDomainAllowed(t *testing.T) {
	domains := []string{"office.example", "hq.example"}

	cases := []struct {
		email string
		want  bool
	}{
		{"dana@office.example", true},
		{"dana@hq.example", true},
		{"dana@gmail.com", false},
		{"dana@OFFICE.example", true}, // case handled on the domain side
		{"no-at-sign", false},
		{"trailing@", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := domainAllowed(tc.email, domains); got != tc.want {
			t.Errorf("domainAllowed(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestDomainAllowedEmptyListAllowsAll(t *testing.T) {
	if !domainAllowed("anyone@anywhere.example", nil) {
		t.Fatal("empty allow-list should accept any domain")
	}
}

func TestSetSessionCookieNamesByRole(t *testing.T) {
	cfg := config.Config{Env: "dev", JWTSecret: "test-secret", SessionTTLDays: 1}

	cases := []struct {
		role string
		want string
	}{
		{"intern", middleware.InternCookie},
		{"admin", middleware.AdminCookie},
	}
	for _, tc := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := setSessionCookie(c, cfg, 5, "x@office.example", tc.role); err != nil {
			t.Fatalf("setSessionCookie(%s): %v", tc.role, err)
		}

		cookies := rec.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("role %s: got %d cookies, want 1", tc.role, len(cookies))
		}
		ck := cookies[0]
		if ck.Name != tc.want {
			t.Errorf("role %s: cookie name = %q, want %q", tc.role, ck.Name, tc.want)
		}
		if !ck.HttpOnly {
			t.Errorf("role %s: cookie not HttpOnly", tc.role)
		}
		if ck.Secure {
			t.Errorf("role %s: Secure set outside prod", tc.role)
		}
		if ck.Value == "" {
			t.Errorf("role %s: empty cookie value", tc.role)
		}
	}
}

func TestClearSessionCookiesExpiresBoth(t *testing.T) {
	cfg := config.Config{Env: "dev"}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	clearSessionCookies(c, cfg)

	got := map[string]bool{}
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge >= 0 {
			t.Errorf("cookie %s not expired (MaxAge %d)", ck.Name, ck.MaxAge)
		}
		got[ck.Name] = true
	}
	if !got[middleware.InternCookie] || !got[middleware.AdminCookie] {
		t.Fatalf("expected both role cookies cleared, got %v", got)
	}
}
