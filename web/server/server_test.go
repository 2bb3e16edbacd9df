package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbot/ledger/activity"
	"github.com/ledgerbot/ledger/bot"
	"github.com/ledgerbot/ledger/store/memory"
)

const testToken = "secret"

type fakeSource struct {
	res   activity.ServerActivity
	err   error
	month time.Month
}

func (f *fakeSource) ServerActivity(_ context.Context, _ discord.GuildID, month time.Month) (activity.ServerActivity, error) {
	f.month = month
	return f.res, f.err
}

func newTestServer(t *testing.T) (*Server, *fakeSource) {
	t.Helper()

	mem := memory.New()
	require.NoError(t, mem.GuildSet(context.Background(), discord.Guild{ID: 1, Name: "Test"}))

	src := &fakeSource{}
	src.res.Year = 2024
	src.res.Monthly.Add(time.March, activity.Channel{ID: 10, Name: "general"}, 4)
	src.res.MostActiveMonth = src.res.Monthly.MostActive()

	return New(testToken, mem, src), src
}

func do(s *Server, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(s, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAuth(t *testing.T) {
	s, _ := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, do(s, "/v1/status", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(s, "/v1/status", "wrong").Code)

	w := do(s, "/v1/status", testToken)
	require.Equal(t, http.StatusOK, w.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Guilds)
}

func TestGuildActivity(t *testing.T) {
	s, src := newTestServer(t)

	w := do(s, "/v1/guilds/1/activity?month=mar", testToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.March, src.month)

	var resp struct {
		GuildID         string `json:"guild_id"`
		Month           string `json:"month"`
		MostActiveMonth string `json:"most_active_month"`
		Year            int    `json:"year"`
		Monthly         []struct {
			Month    string `json:"month"`
			Total    int    `json:"total"`
			Channels []struct {
				Name  string `json:"name"`
				Count int    `json:"count"`
			} `json:"channels"`
		} `json:"monthly"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "1", resp.GuildID)
	assert.Equal(t, "March", resp.Month)
	assert.Equal(t, "March", resp.MostActiveMonth)
	assert.Equal(t, 2024, resp.Year)
	require.Len(t, resp.Monthly, 1)
	assert.Equal(t, 4, resp.Monthly[0].Total)
	assert.Equal(t, "general", resp.Monthly[0].Channels[0].Name)
}

func TestGuildActivityErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"bad id", "/v1/guilds/abc/activity", nil, http.StatusNotFound},
		{"unknown guild", "/v1/guilds/2/activity", nil, http.StatusNotFound},
		{"bad month", "/v1/guilds/1/activity?month=foo", nil, http.StatusBadRequest},
		{"scan running", "/v1/guilds/1/activity", bot.ErrScanRunning, http.StatusConflict},
		{"internal", "/v1/guilds/1/activity", errors.New("oh no"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, src := newTestServer(t)
			src.err = tt.err

			w := do(s, tt.path, testToken)
			assert.Equal(t, tt.status, w.Code)

			var resp apiError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, resp.Status)
		})
	}
}
