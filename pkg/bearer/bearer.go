package bearer

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrymomot/accesskit/pkg/rbac"
)

var (
	ErrEmptySecret  = errors.New("bearer.empty_secret")
	ErrInvalidToken = errors.New("bearer.invalid_token")
	ErrMissingRole  = errors.New("bearer.missing_role")
)

// Config holds the token settings, parsed with pkg/config.
type Config struct {
	Secret string        `env:"BEARER_SECRET"`
	Claim  string        `env:"BEARER_ROLE_CLAIM" envDefault:"role"`
	Issuer string        `env:"BEARER_ISSUER" envDefault:"accesskit"`
	TTL    time.Duration `env:"BEARER_TTL" envDefault:"1h"`
}

// Claims is what a verified token says about the caller.
type Claims struct {
	Role    rbac.Role
	Subject string
}

// Tokens verifies and mints HS256 tokens carrying a role claim.
type Tokens struct {
	secret []byte
	claim  string
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// New validates cfg. Claim defaults to "role" and TTL to one hour.
func New(cfg Config) (*Tokens, error) {
	if cfg.Secret == "" {
		return nil, ErrEmptySecret
	}
	if cfg.Claim == "" {
		cfg.Claim = "role"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &Tokens{
		secret: []byte(cfg.Secret),
		claim:  cfg.Claim,
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    time.Now,
	}, nil
}

// Issue mints a token for subject acting as role.
func (t *Tokens) Issue(role rbac.Role, subject string) (string, error) {
	if strings.TrimSpace(string(role)) == "" {
		return "", ErrMissingRole
	}
	now := t.now()
	claims := jwt.MapClaims{
		t.claim: string(role),
		"iat":   jwt.NewNumericDate(now),
		"nbf":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(now.Add(t.ttl)),
	}
	if subject != "" {
		claims["sub"] = subject
	}
	if t.issuer != "" {
		claims["iss"] = t.issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse verifies signature, expiry and issuer and reads the role claim.
func (t *Tokens) Parse(token string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, opts...)
	if err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}

	role, _ := claims[t.claim].(string)
	if strings.TrimSpace(role) == "" {
		return Claims{}, fmt.Errorf("%w: claim %q", ErrMissingRole, t.claim)
	}
	sub, _ := claims.GetSubject()
	return Claims{Role: rbac.Role(role), Subject: sub}, nil
}

// RoleExtractor reads the role from an "Authorization: Bearer <token>"
// header. Missing, malformed or invalid tokens yield no role, so the guards
// answer 401.
func (t *Tokens) RoleExtractor() rbac.RoleExtractor {
	return func(r *http.Request) (rbac.Role, bool) {
		token, ok := FromHeader(r)
		if !ok {
			return "", false
		}
		claims, err := t.Parse(token)
		if err != nil {
			return "", false
		}
		return claims.Role, true
	}
}

// FromHeader returns the token of an "Authorization: Bearer" header.
func FromHeader(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
