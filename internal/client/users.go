package client

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
)

func (c *Client) ListUsers(ctx context.Context, params ListParams) (page.Page[user.UserResponse], error) {
	var resp page.Page[user.UserResponse]
	err := c.do(ctx, http.MethodGet, "/users", params.values(), nil, &resp)
	return resp, err
}
