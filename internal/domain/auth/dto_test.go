package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRequest_NormalizeAndValidate(t *testing.T) {
	req := LoginRequest{Email: "  Admin@Example.COM ", Password: "secret"}
	req.Normalize()

	assert.Equal(t, "admin@example.com", req.Email)
	assert.NoError(t, req.Validate())
}

func TestLoginRequest_Validate(t *testing.T) {
	req := LoginRequest{Email: "nope"}

	var errs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &errs)
	m := errs.ToMap()
	assert.Equal(t, "email must be a valid email address", m["email"])
	assert.Equal(t, "password is required", m["password"])
}

func TestRateLimitError(t *testing.T) {
	var err error = &RateLimitError{RetryAfter: 30 * time.Second}

	assert.True(t, errors.Is(err, ErrRateLimitExceeded))

	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 30*time.Second, rl.RetryAfter)
}
