// Package pg stores the policy table in PostgreSQL using github.com/jackc/pgx/v5.
//
// Connect opens a pool with retries, Migrate applies the embedded goose
// migrations that create rbac_roles and rbac_grants, and PolicySource loads
// the table for rbac.NewResolverFromSource. SavePolicy replaces the stored
// policy atomically after checking it compiles.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//	    return err
//	}
//	resolver, err := rbac.NewResolverFromSource(ctx, pg.NewPolicySource(pool))
package pg
