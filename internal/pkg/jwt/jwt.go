package jwt

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrMissingClaims = errors.New("token claims missing")

// Claims are the application claims carried by an access token.
type Claims struct {
	UserID int64
	Email  string
	Roles  []user.Role
}

type Service interface {
	GenerateAccessToken(userID int64, email string, roles []user.Role, rememberMe bool) (token string, expiresAt time.Time, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string, expiresAt time.Time)
	IsTokenRevoked(token string) bool
	PurgeRevoked(ctx context.Context) error
}

type JWTService struct {
	secretKey            string
	accessExpiration     string
	rememberMeExpiration string
	tokenAuth            *jwtauth.JWTAuth
	revokedTokens        map[string]int64
	mu                   sync.RWMutex
	now                  func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessExpiration string, rememberMeExpiration string) Service {
	return &JWTService{
		secretKey:            secretKey,
		accessExpiration:     accessExpiration,
		rememberMeExpiration: rememberMeExpiration,
		tokenAuth:            jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:        make(map[string]int64),
		now:                  time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(userID int64, email string, roles []user.Role, rememberMe bool) (token string, expiresAt time.Time, err error) {
	exp := j.accessExpiration
	if rememberMe {
		exp = j.rememberMeExpiration
	}
	expDuration, err := time.ParseDuration(exp)
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt = j.now().Add(expDuration).Truncate(time.Second)

	roleNames := make([]string, 0, len(roles))
	for _, r := range roles {
		roleNames = append(roleNames, string(r))
	}

	claims := map[string]interface{}{
		"sub":     email,
		"user_id": userID,
		"email":   email,
		"roles":   roleNames,
		"type":    "access",
		"exp":     expiresAt.Unix(),
		"iat":     j.now().Unix(),
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) RevokeToken(token string, expiresAt time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = expiresAt.Unix()
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// PurgeRevoked drops revoked tokens that have expired on their own.
func (j *JWTService) PurgeRevoked(ctx context.Context) error {
	now := j.now().Unix()
	j.mu.Lock()
	defer j.mu.Unlock()
	for token, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, token)
		}
	}
	return ctx.Err()
}

// ClaimsFromContext reads the verified token claims placed by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, err
	}
	if token == nil {
		return Claims{}, ErrMissingClaims
	}

	userID, ok := toInt64(claims["user_id"])
	if !ok {
		return Claims{}, ErrMissingClaims
	}
	email, _ := claims["email"].(string)

	return Claims{
		UserID: userID,
		Email:  email,
		Roles:  toRoles(claims["roles"]),
	}, nil
}

// NewContext stores claims as a verified access token on ctx.
func NewContext(ctx context.Context, c Claims) context.Context {
	roleNames := make([]string, 0, len(c.Roles))
	for _, r := range c.Roles {
		roleNames = append(roleNames, string(r))
	}

	token := jwt.New()
	_ = token.Set("user_id", c.UserID)
	_ = token.Set("email", c.Email)
	_ = token.Set("roles", roleNames)
	_ = token.Set("type", "access")
	return jwtauth.NewContext(ctx, token, nil)
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func toRoles(v interface{}) []user.Role {
	var roles []user.Role
	switch rs := v.(type) {
	case []string:
		for _, r := range rs {
			roles = append(roles, user.Role(r))
		}
	case []interface{}:
		for _, r := range rs {
			if s, ok := r.(string); ok {
				roles = append(roles, user.Role(s))
			}
		}
	}
	return roles
}
