package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/accesskit/pkg/bearer"
	"github.com/dmitrymomot/accesskit/pkg/config"
	"github.com/dmitrymomot/accesskit/pkg/environment"
	"github.com/dmitrymomot/accesskit/pkg/httpserver"
	"github.com/dmitrymomot/accesskit/pkg/logger"
	"github.com/dmitrymomot/accesskit/pkg/pg"
	"github.com/dmitrymomot/accesskit/pkg/policyfile"
	"github.com/dmitrymomot/accesskit/pkg/rbac"
	"github.com/dmitrymomot/accesskit/pkg/rbac/presets"
	"github.com/dmitrymomot/accesskit/pkg/redis"
	"github.com/dmitrymomot/accesskit/pkg/requestid"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "rbacd:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	env := environment.Parse(cfg.Env)
	logOpts := []logger.Option{
		logger.WithEnvironment(env, cfg.Service),
		logger.WithContextExtractors(requestid.LogAttr),
	}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logOpts = append(logOpts, logger.WithLevel(level))
	}
	log := logger.New(logOpts...)

	if env.IsProduction() && cfg.PolicySource == sourcePreset {
		log.Warn("serving the built-in healthcare preset in production")
	}

	source, checks, closeSource, err := openPolicySource(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSource()

	catalog := presets.HealthcareCatalog()
	if cfg.CatalogFile != "" {
		if catalog, err = policyfile.LoadCatalog(cfg.CatalogFile); err != nil {
			return err
		}
	}

	holder := rbac.NewHolder(nil)
	if err := holder.Rebuild(ctx, source, resolverOptions(cfg, log)...); err != nil {
		return err
	}
	log.Info("policy loaded",
		logger.Source(cfg.PolicySource),
		slog.Int("roles", len(holder.Load().Roles())),
		slog.Int("routes", len(catalog)),
	)

	extractor, err := roleExtractor(cfg, env, log)
	if err != nil {
		return err
	}

	checks["policy"] = func(context.Context) error {
		if holder.Load() == nil {
			return errors.New("no policy published")
		}
		return nil
	}

	router := newRouter(&api{
		access:    holder,
		catalog:   catalog,
		extractor: extractor,
		log:       log,
		rateLimit: cfg.APIRateLimit,
	}, httpserver.Readiness(log, cfg.ReadyTimeout, checks))

	return httpserver.New(cfg.HTTP, router, log).Run(ctx)
}

// openPolicySource connects the configured backend. The returned checks feed
// the readiness probe and closeFn releases connections.
func openPolicySource(ctx context.Context, cfg appConfig, log *slog.Logger) (rbac.PolicySource, map[string]httpserver.CheckFunc, func(), error) {
	checks := map[string]httpserver.CheckFunc{}
	noop := func() {}

	switch cfg.PolicySource {
	case sourcePreset:
		return rbac.NewInMemPolicySource(presets.Healthcare()), checks, noop, nil

	case sourceFile:
		src, err := policyfile.NewSource(cfg.PolicyFile)
		if err != nil {
			return nil, nil, noop, err
		}
		return src, checks, noop, nil

	case sourceRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, noop, err
		}
		checks[sourceRedis] = redis.Healthcheck(client)
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Warn("close redis client", logger.Error(err))
			}
		}
		return redis.NewPolicyStore(client, cfg.Redis.PolicyKey), checks, closeFn, nil

	case sourcePostgres:
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return nil, nil, noop, err
		}
		if err := pg.Migrate(ctx, pool, cfg.PG, log.With(logger.Component("migrate"))); err != nil {
			pool.Close()
			return nil, nil, noop, err
		}
		checks[sourcePostgres] = pg.Healthcheck(pool)
		return pg.NewPolicySource(pool), checks, pool.Close, nil

	default:
		return nil, nil, noop, fmt.Errorf("unknown POLICY_SOURCE %q (want %s, %s, %s or %s)",
			cfg.PolicySource, sourcePreset, sourceFile, sourceRedis, sourcePostgres)
	}
}

// roleExtractor reads roles from bearer tokens when BEARER_SECRET is set and
// from the trusted ROLE_HEADER otherwise.
func roleExtractor(cfg appConfig, env environment.Environment, log *slog.Logger) (rbac.RoleExtractor, error) {
	if cfg.Bearer.Secret != "" {
		tokens, err := bearer.New(cfg.Bearer)
		if err != nil {
			return nil, err
		}
		return tokens.RoleExtractor(), nil
	}
	if env.IsProduction() {
		log.Warn("BEARER_SECRET is not set, roles are taken from a client-supplied header",
			slog.String("header", cfg.RoleHeader))
	}
	return rbac.HeaderRoleExtractor(cfg.RoleHeader), nil
}

func resolverOptions(cfg appConfig, log *slog.Logger) []rbac.Option {
	opts := []rbac.Option{
		rbac.WithObserver(rbac.NewLogObserver(log.With(logger.Component("resolver")))),
	}
	if cfg.StrictGrants {
		opts = append(opts, rbac.WithStrictGrants())
	}
	if len(cfg.AllowedActions) > 0 {
		actions := make([]rbac.Action, len(cfg.AllowedActions))
		for i, a := range cfg.AllowedActions {
			actions[i] = rbac.Action(a)
		}
		opts = append(opts, rbac.WithAllowedActions(actions...))
	}
	return opts
}
