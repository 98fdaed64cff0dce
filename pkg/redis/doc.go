// Package redis connects to Redis with github.com/redis/go-redis/v9 and
// stores the shared policy document.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	store := redis.NewPolicyStore(client, cfg.PolicyKey)
//	resolver, err := rbac.NewResolverFromSource(ctx, store)
//
// Healthcheck plugs into the rbacd readiness probe.
package redis
