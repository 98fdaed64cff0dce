package redis

import "errors"

var (
	ErrEmptyConnectionURL = errors.New("redis.empty_connection_url")
	ErrParseURL           = errors.New("redis.invalid_connection_url")
	ErrNotReady           = errors.New("redis.not_ready")
	ErrHealthcheckFailed  = errors.New("redis.healthcheck_failed")
	ErrPolicyNotFound     = errors.New("redis.policy_not_found")
	ErrPolicyStore        = errors.New("redis.policy_store_failed")
)
