// Package redis provides a Redis-backed member store.
package redis

import (
	"context"

	"emperror.dev/errors"
	"github.com/ledgerbot/ledger/store"
	"github.com/mediocregopher/radix/v4"
)

var _ store.MemberStore = (*Store)(nil)

type Store struct {
	client radix.Client
}

func New(ctx context.Context, url string) (*Store, error) {
	client, err := (&radix.PoolConfig{}).New(ctx, "tcp", url)
	if err != nil {
		return nil, errors.Wrap(err, "creating radix client")
	}

	return &Store{client: client}, nil
}

// Ping checks the connection to Redis.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Do(ctx, radix.Cmd(nil, "PING"))
}

func (s *Store) Close() error {
	return s.client.Close()
}
