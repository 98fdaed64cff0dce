package rbac

// Reason explains the outcome of a single decision.
type Reason string

const (
	ReasonGranted       Reason = "granted"
	ReasonFullAccess    Reason = "full_access"
	ReasonUnknownRole   Reason = "unknown_role"
	ReasonNoGrant       Reason = "no_grant"
	ReasonActionDenied  Reason = "action_denied"
	ReasonUnmappedRoute Reason = "unmapped_route"
)

// Decision is reported to the Observer after every permission or route check.
type Decision struct {
	Role    Role
	Module  Module
	Action  Action
	Route   string // set by CanAccessRoute only
	Allowed bool
	Reason  Reason
}

// Observer receives decisions as they are made. It runs synchronously on the
// caller's goroutine, so it must be cheap and safe for concurrent use.
type Observer func(Decision)

// Option configures a Resolver.
type Option func(*options)

type options struct {
	observer       Observer
	strict         bool
	allowedActions map[Action]struct{}
}

// WithObserver registers a callback invoked for each HasPermission and
// CanAccessRoute decision. Nil observers are ignored.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		if o != nil {
			opts.observer = o
		}
	}
}

// WithStrictGrants rejects a policy that grants the same module twice within
// one role instead of merging the action sets.
func WithStrictGrants() Option {
	return func(opts *options) { opts.strict = true }
}

// WithAllowedActions closes the action set for this deployment. Grants using
// any other action fail construction with ErrUnknownAction.
func WithAllowedActions(actions ...Action) Option {
	return func(opts *options) {
		if len(actions) == 0 {
			return
		}
		opts.allowedActions = make(map[Action]struct{}, len(actions))
		for _, a := range actions {
			opts.allowedActions[a] = struct{}{}
		}
	}
}
