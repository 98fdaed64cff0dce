package pg

import "errors"

var (
	ErrEmptyConnectionString = errors.New("pg.empty_connection_string")
	ErrParseConfig           = errors.New("pg.invalid_connection_string")
	ErrConnect               = errors.New("pg.connect_failed")
	ErrHealthcheckFailed     = errors.New("pg.healthcheck_failed")
	ErrMigrate               = errors.New("pg.migrate_failed")
	ErrPolicyNotFound        = errors.New("pg.policy_not_found")
	ErrPolicyQuery           = errors.New("pg.policy_query_failed")
	ErrSavePolicy            = errors.New("pg.save_policy_failed")
)
