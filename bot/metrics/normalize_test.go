package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpointMetricsName(t *testing.T) {
	tests := []struct {
		method, path, want string
	}{
		{"GET", "/api/v10/channels/123456789012345678/messages", "GET /channels/{channel_id}/messages"},
		{"POST", "/api/v10/webhooks/123456789012345678/abcDEF-token", "POST /webhooks/{webhook_id}/{webhook_token}"},
		{"GET", "/api/v10/guilds/123456789012345678/members/876543210987654321", "GET /guilds/{guild_id}/members/{user_id}"},
		{"POST", "/api/v10/interactions/123456789012345678/tok/callback", "POST /interactions/{interaction_id}/{interaction_token}/callback"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EndpointMetricsName(tt.method, tt.path))
	}
}

func TestLoggingName(t *testing.T) {
	assert.Equal(t, "/webhooks/123/:token", LoggingName("/webhooks/123/secret"))
	assert.Equal(t, "/interactions/123/:token/callback", LoggingName("/interactions/123/secret/callback"))
}

func TestNilClient(t *testing.T) {
	var c *Client

	assert.NotPanics(t, func() {
		c.IncCommand()
		c.IncScan()
		c.AddScanned(10)
		c.RegisterEvent("MessageCreateEvent")
		c.IncRequests("GET", "/users/1", 200)
	})
}
