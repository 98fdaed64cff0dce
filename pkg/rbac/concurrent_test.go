package rbac_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/accesskit/pkg/rbac"
)

func TestResolver_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t)
	catalog := getTestCatalog()

	const numGoroutines = 50
	const numOperations = 500

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()

			for j := 0; j < numOperations; j++ {
				switch (id + j) % 6 {
				case 0:
					assert.True(t, r.HasPermission("billing_specialist", "invoices", "delete"))
				case 1:
					assert.False(t, r.HasPermission("receptionist", "settings", "read"))
				case 2:
					assert.True(t, r.CanAccessRoute("receptionist", "/patients", catalog))
				case 3:
					assert.Len(t, r.VisibleNavigation("receptionist", catalog), 2)
				case 4:
					grants := r.RolePermissions("billing_specialist")
					grants[0].Actions[0] = rbac.Action("mutated")
				case 5:
					assert.Equal(t, []string{"*"}, r.Scopes("root"))
				}
			}
		}(i)
	}

	wg.Wait()

	assert.True(t, r.HasPermission("billing_specialist", "invoices", "create"))
}
