// Package logger builds the *slog.Logger shared by the accesskit binaries.
//
// New takes functional options for level, format and output, applies
// per-environment defaults through WithEnvironment, and wraps the handler so
// ContextExtractor callbacks can stamp request-scoped values (such as the
// request ID) on every record logged with a context.
//
// The attribute helpers (Role, Module, Action, Error...) keep key names
// consistent between the resolver's decision log and the HTTP layer:
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Production, "rbacd"),
//	    logger.WithContextExtractors(requestid.LogAttr),
//	)
//	log.InfoContext(ctx, "policy loaded", logger.Source("postgres"), logger.Error(err))
package logger
