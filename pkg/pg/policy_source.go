package pg

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/accesskit/pkg/rbac"
)

const selectPolicy = `
SELECT r.name, r.full_access, g.module, g.actions
FROM rbac_roles r
LEFT JOIN rbac_grants g ON g.role = r.name
ORDER BY r.name, g.position`

// policyRow is one role/grant pair. Module is nil for a role without grants.
type policyRow struct {
	Role       string
	FullAccess bool
	Module     *string
	Actions    []string
}

// PolicySource reads the policy table from Postgres. It implements
// rbac.PolicySource.
type PolicySource struct {
	pool *pgxpool.Pool
}

func NewPolicySource(pool *pgxpool.Pool) *PolicySource {
	return &PolicySource{pool: pool}
}

// Load reads every role with its grants in one ordered query. An empty
// rbac_roles table is ErrPolicyNotFound.
func (s *PolicySource) Load(ctx context.Context) (rbac.PolicyTable, error) {
	rows, err := s.pool.Query(ctx, selectPolicy)
	if err != nil {
		return nil, errors.Join(ErrPolicyQuery, err)
	}
	collected, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (policyRow, error) {
		var r policyRow
		err := row.Scan(&r.Role, &r.FullAccess, &r.Module, &r.Actions)
		return r, err
	})
	if err != nil {
		return nil, errors.Join(ErrPolicyQuery, err)
	}
	if len(collected) == 0 {
		return nil, ErrPolicyNotFound
	}
	return tableFromRows(collected), nil
}

// SavePolicy validates table with opts and replaces the stored policy in a
// single transaction. Readers see either the old or the new policy.
func SavePolicy(ctx context.Context, pool *pgxpool.Pool, table rbac.PolicyTable, opts ...rbac.Option) error {
	if _, err := rbac.NewResolver(table, opts...); err != nil {
		return err
	}

	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM rbac_roles`); err != nil {
			return err
		}

		batch := &pgx.Batch{}
		rows := rowsFromTable(table)
		for _, r := range rows {
			if r.Module == nil {
				batch.Queue(`INSERT INTO rbac_roles (name, full_access) VALUES ($1, $2)`, r.Role, r.FullAccess)
			}
		}
		position := make(map[string]int, len(table))
		for _, r := range rows {
			if r.Module != nil {
				batch.Queue(`INSERT INTO rbac_grants (role, position, module, actions) VALUES ($1, $2, $3, $4)`,
					r.Role, position[r.Role], *r.Module, r.Actions)
				position[r.Role]++
			}
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return errors.Join(ErrSavePolicy, err)
	}
	return nil
}

// tableFromRows folds the ordered join result into a table.
func tableFromRows(rows []policyRow) rbac.PolicyTable {
	table := make(rbac.PolicyTable)
	for _, r := range rows {
		entry, ok := table[rbac.Role(r.Role)]
		if !ok {
			entry = rbac.RoleEntry{FullAccess: r.FullAccess, Grants: []rbac.Grant{}}
		}
		if r.Module != nil {
			actions := make([]rbac.Action, len(r.Actions))
			for i, a := range r.Actions {
				actions[i] = rbac.Action(a)
			}
			entry.Grants = append(entry.Grants, rbac.Grant{Module: rbac.Module(*r.Module), Actions: actions})
		}
		table[rbac.Role(r.Role)] = entry
	}
	return table
}

// rowsFromTable flattens table in role order. Each role gets a header row
// with a nil Module, followed by one row per grant in grant order.
func rowsFromTable(table rbac.PolicyTable) []policyRow {
	roles := make([]string, 0, len(table))
	for role := range table {
		roles = append(roles, string(role))
	}
	sort.Strings(roles)

	var rows []policyRow
	for _, role := range roles {
		entry := table[rbac.Role(role)]
		rows = append(rows, policyRow{Role: role, FullAccess: entry.FullAccess})
		for _, g := range entry.Grants {
			module := string(g.Module)
			actions := make([]string, len(g.Actions))
			for i, a := range g.Actions {
				actions[i] = string(a)
			}
			rows = append(rows, policyRow{Role: role, FullAccess: entry.FullAccess, Module: &module, Actions: actions})
		}
	}
	return rows
}
