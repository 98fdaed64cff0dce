package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/accesskit/pkg/rbac"
)

// PolicyStore keeps the JSON policy document under one Redis key, so every
// rbacd replica can build its resolver from the same policy.
// It implements rbac.PolicySource.
type PolicyStore struct {
	client redis.UniversalClient
	key    string
}

// NewPolicyStore returns a store for key. An empty key uses "accesskit:policy".
func NewPolicyStore(client redis.UniversalClient, key string) *PolicyStore {
	if key == "" {
		key = "accesskit:policy"
	}
	return &PolicyStore{client: client, key: key}
}

// Load reads and decodes the stored document. A missing key is
// ErrPolicyNotFound.
func (s *PolicyStore) Load(ctx context.Context) (rbac.PolicyTable, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrPolicyStore, err)
	}
	return rbac.ParseJSON(data)
}

// Save validates table by compiling it with opts, then overwrites the stored
// document. An invalid table is rejected and the stored one is kept.
func (s *PolicyStore) Save(ctx context.Context, table rbac.PolicyTable, opts ...rbac.Option) error {
	if _, err := rbac.NewResolver(table, opts...); err != nil {
		return err
	}
	data, err := rbac.EncodeJSON(table)
	if err != nil {
		return errors.Join(ErrPolicyStore, err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return errors.Join(ErrPolicyStore, err)
	}
	return nil
}

// Key returns the Redis key holding the document.
func (s *PolicyStore) Key() string { return s.key }
