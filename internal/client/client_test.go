package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/attendancegroup"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_LoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			var req auth.LoginRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "jane@example.com", req.Email)
			assert.True(t, req.RememberMe)
			assert.Empty(t, r.Header.Get("Authorization"))
			writeJSON(t, w, http.StatusOK, auth.LoginResponse{Token: "abc"})
		case "/api/v1/shifts/3":
			assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
			writeJSON(t, w, http.StatusOK, shift.ShiftResponse{ID: 3, Name: "Regular"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/v1/", time.Second)
	resp, err := c.Login(context.Background(), "  Jane@Example.com ", "secret", true)
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Token)
	assert.Equal(t, "abc", c.Token())

	s, err := c.GetShift(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Regular", s.Name)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shifts":
			writeJSON(t, w, http.StatusConflict, map[string]interface{}{
				"code":    "DUPLICATE_SHIFT_CODE",
				"message": "Shift code already exists",
				"traceId": "t-1",
			})
		case "/auth/login":
			w.Header().Set("Retry-After", "42")
			writeJSON(t, w, http.StatusTooManyRequests, map[string]string{"code": "RATE_LIMIT_EXCEEDED"})
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		}
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)

	_, err := c.CreateShift(context.Background(), shift.CreateShiftRequest{Name: "Regular"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "DUPLICATE_SHIFT_CODE", apiErr.Code)
	assert.Equal(t, "Shift code already exists", apiErr.Error())
	assert.Equal(t, "t-1", apiErr.TraceID)

	_, err = c.Login(context.Background(), "a@example.com", "x", false)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 42*time.Second, apiErr.RetryAfter)
	assert.Equal(t, "request failed with status 429", apiErr.Error())

	err = c.DeleteShift(context.Background(), 1)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "request failed with status 502", apiErr.Error())
}

func TestClient_UnauthorizedClearsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"code": "UNAUTHORIZED", "message": "token expired"})
	}))
	defer srv.Close()

	var called atomic.Int32
	c := New(srv.URL, time.Second, WithToken("stale"), WithUnauthorizedHandler(func() { called.Add(1) }))

	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.Empty(t, c.Token())
	assert.Equal(t, int32(1), called.Load())

	// Unauthenticated calls do not trigger the handler.
	_, err = c.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), called.Load())
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url, time.Second)
	_, err := c.ListShifts(context.Background(), ListParams{})
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.True(t, strings.HasPrefix(err.Error(), "GET /shifts"))
}

func TestClient_ListParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(t, w, http.StatusOK, page.New([]shift.ShiftResponse{}, page.Request{Size: 20}, 0))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.ListShifts(context.Background(), ListParams{Search: "  night ", Page: 2, Size: 10, Sort: "name,desc"})
	require.NoError(t, err)
	assert.Equal(t, "page=2&search=night&size=10&sort=name%2Cdesc", gotQuery)
}

func TestClient_LoadGroupEditor(t *testing.T) {
	five := int64(5)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/attendance-groups/9":
			writeJSON(t, w, http.StatusOK, attendancegroup.AttendanceGroupResponse{
				ID:             9,
				Name:           "Head Office",
				WeeklyShiftIDs: attendancegroup.WeeklyShiftIDs{Friday: &five},
			})
		case "/shifts":
			assert.Equal(t, "100", r.URL.Query().Get("size"))
			writeJSON(t, w, http.StatusOK, page.New([]shift.ShiftResponse{{ID: 5, Name: "Regular"}}, page.Request{Size: 100}, 1))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)

	editor, err := c.LoadGroupEditor(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "Head Office", editor.Form.Name)
	assert.Equal(t, []attendancegroup.Weekday{attendancegroup.Friday}, editor.Form.Schedule.EnabledDays())
	require.Len(t, editor.Shifts, 1)

	editor, err = c.LoadGroupEditor(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, editor.Form.Schedule.EnabledDays(), 5)

	_, err = c.LoadGroupEditor(context.Background(), 404)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
