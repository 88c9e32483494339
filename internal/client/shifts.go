package client

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
)

const shiftsPath = "/shifts"

func (c *Client) ListShifts(ctx context.Context, params ListParams) (page.Page[shift.ShiftResponse], error) {
	var resp page.Page[shift.ShiftResponse]
	err := c.do(ctx, http.MethodGet, shiftsPath, params.values(), nil, &resp)
	return resp, err
}

func (c *Client) GetShift(ctx context.Context, id int64) (shift.ShiftResponse, error) {
	var resp shift.ShiftResponse
	err := c.do(ctx, http.MethodGet, idPath(shiftsPath, id), nil, nil, &resp)
	return resp, err
}

func (c *Client) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	var resp shift.ShiftResponse
	err := c.do(ctx, http.MethodPost, shiftsPath, nil, req, &resp)
	return resp, err
}

func (c *Client) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	var resp shift.ShiftResponse
	err := c.do(ctx, http.MethodPut, idPath(shiftsPath, req.ID), nil, req, &resp)
	return resp, err
}

func (c *Client) DeleteShift(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath(shiftsPath, id), nil, nil, nil)
}
