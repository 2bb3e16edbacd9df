package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusText(t *testing.T) {
	tests := []struct {
		guilds, shard, shards int
		want                  string
	}{
		{0, 0, 1, "/help"},
		{12, 0, 1, "/help | in 12 servers"},
		{12, 1, 2, "/help | in 12 servers | shard #1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusText(tt.guilds, tt.shard, tt.shards))
	}
}
