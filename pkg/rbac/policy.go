package rbac

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// compiledRole is the lookup form of a RoleEntry.
type compiledRole struct {
	grants     []Grant
	index      map[Module]map[Action]struct{}
	fullAccess bool
}

// compile validates the table and builds per-role lookup indexes.
// Roles are visited in sorted order so the reported error is deterministic.
func compile(table PolicyTable, o *options) (map[Role]*compiledRole, []Role, error) {
	if len(table) == 0 {
		return nil, nil, errors.Join(ErrConfiguration, ErrEmptyPolicy)
	}

	roles := make([]Role, 0, len(table))
	for role := range table {
		roles = append(roles, role)
	}
	slices.Sort(roles)

	compiled := make(map[Role]*compiledRole, len(table))
	for _, role := range roles {
		if strings.TrimSpace(string(role)) == "" {
			return nil, nil, errors.Join(ErrConfiguration, ErrEmptyRoleName)
		}

		entry := table[role]
		grants, err := mergeGrants(role, entry.Grants, o)
		if err != nil {
			return nil, nil, err
		}

		index := make(map[Module]map[Action]struct{}, len(grants))
		for _, g := range grants {
			set := make(map[Action]struct{}, len(g.Actions))
			for _, a := range g.Actions {
				set[a] = struct{}{}
			}
			index[g.Module] = set
		}

		compiled[role] = &compiledRole{
			grants:     grants,
			index:      index,
			fullAccess: entry.FullAccess,
		}
	}

	return compiled, roles, nil
}

// mergeGrants returns a fresh grant list where every module appears once.
// Duplicates are unioned keeping first-seen module and action order,
// or rejected when strict mode is on.
func mergeGrants(role Role, grants []Grant, o *options) ([]Grant, error) {
	merged := make([]Grant, 0, len(grants))
	position := make(map[Module]int, len(grants))

	for i, g := range grants {
		if strings.TrimSpace(string(g.Module)) == "" {
			return nil, errors.Join(ErrConfiguration, ErrEmptyModule,
				fmt.Errorf("role %q: grant #%d has no module", role, i))
		}

		for _, a := range g.Actions {
			if strings.TrimSpace(string(a)) == "" {
				return nil, errors.Join(ErrConfiguration, ErrEmptyAction,
					fmt.Errorf("role %q: module %q lists a blank action", role, g.Module))
			}
			if o.allowedActions != nil {
				if _, ok := o.allowedActions[a]; !ok {
					return nil, errors.Join(ErrConfiguration, ErrUnknownAction,
						fmt.Errorf("role %q: module %q uses action %q", role, g.Module, a))
				}
			}
		}

		pos, dup := position[g.Module]
		if !dup {
			position[g.Module] = len(merged)
			merged = append(merged, Grant{Module: g.Module, Actions: appendUnique(nil, g.Actions)})
			continue
		}
		if o.strict {
			return nil, errors.Join(ErrConfiguration, ErrDuplicateGrant,
				fmt.Errorf("role %q: module %q granted more than once", role, g.Module))
		}
		merged[pos].Actions = appendUnique(merged[pos].Actions, g.Actions)
	}

	return merged, nil
}

func appendUnique(dst, src []Action) []Action {
	if dst == nil {
		dst = make([]Action, 0, len(src))
	}
	for _, a := range src {
		if !slices.Contains(dst, a) {
			dst = append(dst, a)
		}
	}
	return dst
}
