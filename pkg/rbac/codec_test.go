package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accesskit/pkg/rbac"
)

const billingPolicyJSON = `{
  "billing_specialist": [
    {"module": "invoices", "actions": ["create", "read", "update", "delete"]},
    {"module": "patients", "actions": ["read"]}
  ]
}`

func TestParseJSON(t *testing.T) {
	t.Parallel()

	t.Run("billing specialist scenario", func(t *testing.T) {
		t.Parallel()
		table, err := rbac.ParseJSON([]byte(billingPolicyJSON))
		require.NoError(t, err)

		r, err := rbac.NewResolver(table)
		require.NoError(t, err)

		assert.True(t, r.HasPermission("billing_specialist", "invoices", "delete"))
		assert.False(t, r.HasPermission("billing_specialist", "patients", "update"))
		assert.False(t, r.HasPermission("billing_specialist", "settings", "read"))
		assert.False(t, r.HasPermission("unknown_role", "invoices", "read"))
	})

	t.Run("full access sentinel", func(t *testing.T) {
		t.Parallel()
		table, err := rbac.ParseJSON([]byte(`{"super_admin": [{"*": true}], "guest": null}`))
		require.NoError(t, err)

		assert.True(t, table["super_admin"].FullAccess)
		assert.Empty(t, table["super_admin"].Grants)
		assert.Contains(t, table, rbac.Role("guest"))
		assert.False(t, table["guest"].FullAccess)
	})

	t.Run("sentinel next to grants", func(t *testing.T) {
		t.Parallel()
		table, err := rbac.ParseJSON([]byte(`{"owner": [{"module": "settings", "actions": ["read"]}, {"*": true}]}`))
		require.NoError(t, err)
		assert.True(t, table["owner"].FullAccess)
		assert.Len(t, table["owner"].Grants, 1)
	})

	malformed := map[string]string{
		"invalid json":         `{"clerk": [`,
		"not an object":        `["clerk"]`,
		"unknown field":        `{"clerk": [{"module": "invoices", "action": ["read"]}]}`,
		"sentinel with module": `{"clerk": [{"*": true, "module": "invoices"}]}`,
		"no module":            `{"clerk": [{"actions": ["read"]}]}`,
		"false sentinel":       `{"clerk": [{"*": false}]}`,
		"duplicate role key":   `{"clerk": [{"module": "invoices", "actions": ["read"]}], "clerk": [{"module": "patients", "actions": ["read"]}]}`,
		"trailing document":    `{"clerk": [{"module": "invoices", "actions": ["read"]}]} {"root": [{"*": true}]}`,
		"trailing garbage":     `{"clerk": []} ]`,
		"unterminated object":  `{"clerk": []`,
	}
	for name, doc := range malformed {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := rbac.ParseJSON([]byte(doc))
			assert.ErrorIs(t, err, rbac.ErrMalformedPolicy)
		})
	}
}

func TestEncodeJSON(t *testing.T) {
	t.Parallel()

	original := rbac.PolicyTable{
		"billing_specialist": {Grants: []rbac.Grant{
			{Module: "invoices", Actions: []rbac.Action{"read"}},
		}},
		"super_admin": {FullAccess: true},
		"guest":       {},
	}

	data, err := rbac.EncodeJSON(original)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"billing_specialist": [{"module": "invoices", "actions": ["read"]}],
		"guest": [],
		"super_admin": [{"*": true}]
	}`, string(data))

	again, err := rbac.EncodeJSON(original)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again), "encoding is stable")

	decoded, err := rbac.ParseJSON(data)
	require.NoError(t, err)
	assert.True(t, decoded["super_admin"].FullAccess)
	assert.Equal(t, original["billing_specialist"], decoded["billing_specialist"])
}
