package bot

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRestRegistersResponseHook(t *testing.T) {
	base := len(api.NewClient("Bot token").Client.OnResponse)

	b := &Bot{}
	rest := b.newRest("token")

	require.Len(t, rest.Client.OnResponse, base+1)
	hook := rest.Client.OnResponse[len(rest.Client.OnResponse)-1]
	assert.NoError(t, hook(nil, nil))
}
