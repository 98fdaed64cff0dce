package rbac

import "errors"

// ErrConfiguration is the root of every construction-time failure.
// A resolver that fails to build must abort startup.
var ErrConfiguration = errors.New("rbac.configuration")

// Construction errors, always joined with ErrConfiguration.
var (
	// ErrEmptyPolicy is returned when the policy table has no roles.
	ErrEmptyPolicy = errors.New("rbac.empty_policy")

	// ErrEmptyRoleName is returned when a role key is blank.
	ErrEmptyRoleName = errors.New("rbac.empty_role_name")

	// ErrEmptyModule is returned when a grant names no module.
	ErrEmptyModule = errors.New("rbac.empty_module")

	// ErrEmptyAction is returned when a grant lists a blank action.
	ErrEmptyAction = errors.New("rbac.empty_action")

	// ErrUnknownAction is returned when a grant uses an action outside the
	// set configured with WithAllowedActions.
	ErrUnknownAction = errors.New("rbac.unknown_action")

	// ErrDuplicateGrant is returned in strict mode when a role grants the same module twice.
	ErrDuplicateGrant = errors.New("rbac.duplicate_grant")

	// ErrMalformedPolicy is returned when a serialized policy document cannot be decoded.
	ErrMalformedPolicy = errors.New("rbac.malformed_policy")

	// ErrNilSource is returned when a resolver is built from a nil PolicySource.
	ErrNilSource = errors.New("rbac.nil_source")
)
