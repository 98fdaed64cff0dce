package rbac

import (
	"context"
	"errors"
)

// PolicySource provides the policy table a resolver is built from.
type PolicySource interface {
	// Load returns the full policy table.
	Load(ctx context.Context) (PolicyTable, error)
}

// inMemPolicySource serves a fixed table held in memory.
type inMemPolicySource struct {
	table PolicyTable
}

// NewInMemPolicySource returns a PolicySource over a deep copy of table.
func NewInMemPolicySource(table PolicyTable) PolicySource {
	return &inMemPolicySource{table: table.Clone()}
}

// Load returns a copy of the table so callers cannot alter the source.
func (s *inMemPolicySource) Load(_ context.Context) (PolicyTable, error) {
	return s.table.Clone(), nil
}

// NewResolverFromSource loads the table from source and builds a Resolver.
// Source errors are returned as is; table problems wrap ErrConfiguration.
func NewResolverFromSource(ctx context.Context, source PolicySource, opts ...Option) (*Resolver, error) {
	if source == nil {
		return nil, errors.Join(ErrConfiguration, ErrNilSource)
	}

	table, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	return NewResolver(table, opts...)
}
