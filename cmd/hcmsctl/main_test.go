package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/cmlabs-hris/hcms-backend-go/internal/client"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HCMS_TOKEN", "")

	root := newRootCmd(&app{})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestShiftsPreview(t *testing.T) {
	session := filepath.Join(t.TempDir(), "session.json")

	out, err := run(t, "--session-file", session, "shifts", "preview",
		"--start", "22:00", "--end", "06:00", "--next-day",
		"--breaks", "--set", "breakDurationMinutes=60")
	require.NoError(t, err)
	assert.Equal(t, "7h 0m\n", out)

	out, err = run(t, "--session-file", session, "shifts", "preview",
		"--start", "09:00", "--end", "10:00", "--breaks", "--set", "breakDurationMinutes=90")
	require.NoError(t, err)
	assert.Contains(t, out, "0h 0m")
	assert.Contains(t, out, "clamped")

	_, err = run(t, "--session-file", session, "shifts", "preview", "--set", "bogus=1")
	assert.ErrorContains(t, err, `unknown numeric field "bogus"`)
}

func TestLoginWhoamiAndExpiredSession(t *testing.T) {
	var revoked atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			_ = json.NewEncoder(w).Encode(auth.LoginResponse{
				Token: "tok",
				User:  auth.LoginUser{ID: 1, Email: "jane@example.com", FirstName: "Jane"},
			})
		case "/auth/me":
			if revoked.Load() || r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"code":"UNAUTHORIZED","message":"Unauthorized"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(user.UserResponse{ID: 1, Email: "jane@example.com", FirstName: "Jane", Roles: []string{"HR_ADMIN"}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	sessionFile := filepath.Join(t.TempDir(), "hcms", "session.json")
	base := []string{"--api-url", srv.URL, "--session-file", sessionFile}

	out, err := run(t, append(base, "login", "-e", " Jane@Example.com", "-p", "secret", "--remember")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Jane")
	assert.NotContains(t, out, "tok")

	sess, err := client.NewSessionStore(sessionFile).Load()
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", sess.Email)
	assert.Equal(t, "tok", sess.Token)

	out, err = run(t, append(base, "whoami")...)
	require.NoError(t, err)
	assert.Contains(t, out, "HR_ADMIN")

	revoked.Store(true)
	_, err = run(t, append(base, "whoami")...)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	sess, err = client.NewSessionStore(sessionFile).Load()
	require.NoError(t, err)
	assert.Empty(t, sess.Token)
	assert.Equal(t, "jane@example.com", sess.Email)
}

func TestShiftsSearch(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "night", r.URL.Query().Get("search"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(page.New([]shift.ShiftResponse{
			{ID: 4, Name: "Night", StartTime: "22:00", EndTime: "06:00", IsNextDayEnd: true, WorkingHoursMinutes: 420},
		}, page.Request{Size: 20}, 1))
	}))
	defer srv.Close()

	out, err := run(t, "--api-url", srv.URL, "--session-file", filepath.Join(t.TempDir(), "s.json"),
		"shifts", "search", "--debounce", "10ms", "night")
	require.NoError(t, err)
	assert.Contains(t, out, `Results for "night"`)
	assert.Contains(t, out, "Night")
	assert.Contains(t, out, "22:00-06:00 (+1)")
	assert.Contains(t, out, "7h 0m")
	assert.Equal(t, int32(1), calls.Load())
}
