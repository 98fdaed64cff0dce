package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dmitrymomot/accesskit/pkg/config"
	"github.com/dmitrymomot/accesskit/pkg/logger"
	"github.com/dmitrymomot/accesskit/pkg/pg"
	"github.com/dmitrymomot/accesskit/pkg/policyfile"
	"github.com/dmitrymomot/accesskit/pkg/rbac"
	"github.com/dmitrymomot/accesskit/pkg/rbac/presets"
	"github.com/dmitrymomot/accesskit/pkg/redis"
)

const presetName = "preset"

// policyFlags are shared by every command that compiles a policy.
type policyFlags struct {
	policy  string
	strict  bool
	actions string
}

func (p *policyFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&p.policy, "policy", presetName, "policy file or \"preset\"")
	fs.BoolVar(&p.strict, "strict", false, "reject duplicate grants")
	fs.StringVar(&p.actions, "actions", "", "comma-separated closed action set")
}

func (p *policyFlags) options() []rbac.Option {
	var opts []rbac.Option
	if p.strict {
		opts = append(opts, rbac.WithStrictGrants())
	}
	if p.actions != "" {
		var actions []rbac.Action
		for _, a := range strings.Split(p.actions, ",") {
			actions = append(actions, rbac.Action(strings.TrimSpace(a)))
		}
		opts = append(opts, rbac.WithAllowedActions(actions...))
	}
	return opts
}

func (p *policyFlags) table(ctx context.Context) (rbac.PolicyTable, error) {
	if p.policy == presetName {
		return presets.Healthcare(), nil
	}
	src, err := policyfile.NewSource(p.policy)
	if err != nil {
		return nil, err
	}
	return src.Load(ctx)
}

func (p *policyFlags) resolver(ctx context.Context) (*rbac.Resolver, error) {
	table, err := p.table(ctx)
	if err != nil {
		return nil, err
	}
	return rbac.NewResolver(table, p.options()...)
}

func loadCatalog(path string) (rbac.RouteCatalog, error) {
	if path == presetName {
		return presets.HealthcareCatalog(), nil
	}
	return policyfile.LoadCatalog(path)
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func runValidate(ctx context.Context, args []string, out io.Writer) error {
	var pf policyFlags
	fs := newFlagSet("validate", out)
	pf.register(fs)
	catalogPath := fs.String("catalog", "", "catalog file or \"preset\" (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := pf.resolver(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "policy ok: %d roles\n", len(r.Roles()))

	if *catalogPath == "" {
		return nil
	}
	catalog, err := loadCatalog(*catalogPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "catalog ok: %d routes\n", len(catalog))

	granted := make(map[rbac.Module]bool)
	for _, role := range r.Roles() {
		for _, g := range r.RolePermissions(role) {
			if g.Allows(rbac.ActionRead) {
				granted[g.Module] = true
			}
		}
	}
	for _, route := range catalog {
		switch {
		case route.Module == "":
			fmt.Fprintf(out, "warning: %s has no module and is closed to every role\n", route.Path)
		case !granted[route.Module]:
			fmt.Fprintf(out, "warning: %s (%s) is readable by full-access roles only\n", route.Path, route.Module)
		}
	}
	return nil
}

func runCheck(ctx context.Context, args []string, out io.Writer) error {
	var pf policyFlags
	fs := newFlagSet("check", out)
	pf.register(fs)
	role := fs.String("role", "", "role name")
	module := fs.String("module", "", "module name")
	action := fs.String("action", string(rbac.ActionRead), "action name")
	path := fs.String("route", "", "check a catalog route instead of module/action")
	catalogPath := fs.String("catalog", presetName, "catalog file or \"preset\", used with -route")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *role == "" || (*path == "" && *module == "") {
		return fmt.Errorf("-role and either -module or -route are required")
	}

	r, err := pf.resolver(ctx)
	if err != nil {
		return err
	}

	var allowed bool
	if *path != "" {
		catalog, err := loadCatalog(*catalogPath)
		if err != nil {
			return err
		}
		allowed = r.CanAccessRoute(rbac.Role(*role), *path, catalog)
		fmt.Fprintf(out, "%s %s: %s\n", *role, *path, verdict(allowed))
	} else {
		allowed = r.HasPermission(rbac.Role(*role), rbac.Module(*module), rbac.Action(*action))
		fmt.Fprintf(out, "%s %s.%s: %s\n", *role, *module, *action, verdict(allowed))
	}
	if !allowed {
		return errDenied
	}
	return nil
}

func verdict(allowed bool) string {
	if allowed {
		return "allow"
	}
	return "deny"
}

func runNav(ctx context.Context, args []string, out io.Writer) error {
	var pf policyFlags
	fs := newFlagSet("nav", out)
	pf.register(fs)
	role := fs.String("role", "", "role name")
	catalogPath := fs.String("catalog", presetName, "catalog file or \"preset\"")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *role == "" {
		return fmt.Errorf("-role is required")
	}

	r, err := pf.resolver(ctx)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(*catalogPath)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tMODULE\tLABEL")
	for _, item := range r.VisibleNavigation(rbac.Role(*role), catalog) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", item.Path, item.Module, item.Label)
	}
	return tw.Flush()
}

func runScopes(ctx context.Context, args []string, out io.Writer) error {
	var pf policyFlags
	fs := newFlagSet("scopes", out)
	pf.register(fs)
	role := fs.String("role", "", "role name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *role == "" {
		return fmt.Errorf("-role is required")
	}

	r, err := pf.resolver(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, strings.Join(r.Scopes(rbac.Role(*role)), " "))
	return nil
}

func runExport(ctx context.Context, args []string, out io.Writer) error {
	var pf policyFlags
	fs := newFlagSet("export", out)
	pf.register(fs)
	format := fs.String("format", string(policyfile.FormatJSON), "output format: json or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := pf.resolver(ctx)
	if err != nil {
		return err
	}
	data, err := policyfile.Encode(r.Table(), policyfile.Format(*format))
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err = io.WriteString(out, "\n")
	}
	return err
}

// runPublish writes a policy to the backend rbacd reads from. Connection
// settings come from the same environment variables rbacd uses.
func runPublish(ctx context.Context, args []string, out io.Writer) error {
	var pf policyFlags
	fs := newFlagSet("publish", out)
	pf.register(fs)
	to := fs.String("to", "", "target backend: redis or postgres")
	if err := fs.Parse(args); err != nil {
		return err
	}

	table, err := pf.table(ctx)
	if err != nil {
		return err
	}

	switch *to {
	case "redis":
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()
		store := redis.NewPolicyStore(client, cfg.PolicyKey)
		if err := store.Save(ctx, table, pf.options()...); err != nil {
			return err
		}
		fmt.Fprintf(out, "published %d roles to redis key %s\n", len(table), store.Key())

	case "postgres":
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := pg.Migrate(ctx, pool, cfg, logger.New(logger.WithFormat(logger.FormatText), logger.WithOutput(os.Stderr))); err != nil {
			return err
		}
		if err := pg.SavePolicy(ctx, pool, table, pf.options()...); err != nil {
			return err
		}
		fmt.Fprintf(out, "published %d roles to postgres\n", len(table))

	default:
		return fmt.Errorf("-to must be redis or postgres")
	}
	return nil
}
