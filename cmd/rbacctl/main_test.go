package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accesskit/pkg/rbac"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExecute_Usage(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCLI(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "validate")

	code, _, stderr = runCLI(t, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "frobnicate"`)
}

func TestExecute_CommandHelp(t *testing.T) {
	t.Parallel()

	for _, flagName := range []string{"-h", "-help"} {
		t.Run(flagName, func(t *testing.T) {
			t.Parallel()
			code, stdout, stderr := runCLI(t, "check", flagName)
			assert.Equal(t, 0, code)
			assert.Empty(t, stderr)
			assert.Contains(t, stdout, "-role")
			assert.NotContains(t, stdout, "help requested")
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runCLI(t, "validate", "-policy", "testdata/policy.yaml", "-catalog", "testdata/catalog.json")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "policy ok: 2 roles")
	assert.Contains(t, stdout, "catalog ok: 3 routes")
	assert.Contains(t, stdout, "warning: / (dashboard) is readable by full-access roles only")
	assert.Contains(t, stdout, "warning: /help has no module")
	assert.NotContains(t, stdout, "/tasks")

	code, _, stderr = runCLI(t, "validate", "-policy", "testdata/policy.yaml", "-strict")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "rbac.duplicate_grant")

	code, _, _ = runCLI(t, "validate", "-policy", "preset", "-catalog", "preset", "-actions", "create,read,update,delete")
	assert.Equal(t, 0, code)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCLI(t, "check", "-role", "billing_specialist", "-module", "invoices", "-action", "delete")
	assert.Equal(t, 0, code)
	assert.Equal(t, "billing_specialist invoices.delete: allow\n", stdout)

	code, stdout, stderr := runCLI(t, "check", "-role", "receptionist", "-module", "invoices")
	assert.Equal(t, 1, code)
	assert.Equal(t, "receptionist invoices.read: deny\n", stdout)
	assert.Empty(t, stderr)

	code, stdout, _ = runCLI(t, "check", "-role", "super_admin", "-route", "/unknown")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "deny")

	code, _, stderr = runCLI(t, "check", "-module", "invoices")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "-role")
}

func TestNav(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runCLI(t, "nav", "-policy", "testdata/policy.yaml", "-catalog", "testdata/catalog.json", "-role", "clerk")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "PATH")
	assert.Contains(t, stdout, "/tasks")
	assert.NotContains(t, stdout, "Dashboard")
}

func TestScopes(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCLI(t, "scopes", "-policy", "testdata/policy.yaml", "-role", "clerk")
	assert.Equal(t, 0, code)
	assert.Equal(t, "tasks.create tasks.read tasks.update\n", stdout)

	code, stdout, _ = runCLI(t, "scopes", "-policy", "testdata/policy.yaml", "-role", "owner")
	assert.Equal(t, 0, code)
	assert.Equal(t, "*\n", stdout)
}

func TestExport(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runCLI(t, "export", "-policy", "testdata/policy.yaml")
	require.Equal(t, 0, code, stderr)

	table, err := rbac.ParseJSON([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, []rbac.Grant{{Module: "tasks", Actions: []rbac.Action{"read", "update", "create"}}}, table["clerk"].Grants)
	assert.True(t, table["owner"].FullAccess)

	code, stdout, _ = runCLI(t, "export", "-format", "yaml")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "super_admin:")

	code, _, _ = runCLI(t, "export", "-format", "toml")
	assert.Equal(t, 1, code)
}

func TestPublish_RequiresTarget(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCLI(t, "publish", "-policy", "preset")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "-to must be redis or postgres")
}
