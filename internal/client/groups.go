package client

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hcms-backend-go/internal/client/form"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/attendancegroup"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
	"golang.org/x/sync/errgroup"
)

const groupsPath = "/attendance-groups"

func (c *Client) ListGroups(ctx context.Context, params ListParams) (page.Page[attendancegroup.AttendanceGroupResponse], error) {
	var resp page.Page[attendancegroup.AttendanceGroupResponse]
	err := c.do(ctx, http.MethodGet, groupsPath, params.values(), nil, &resp)
	return resp, err
}

func (c *Client) GetGroup(ctx context.Context, id int64) (attendancegroup.AttendanceGroupResponse, error) {
	var resp attendancegroup.AttendanceGroupResponse
	err := c.do(ctx, http.MethodGet, idPath(groupsPath, id), nil, nil, &resp)
	return resp, err
}

func (c *Client) GetWeeklySchedule(ctx context.Context, id int64) (attendancegroup.ResolvedWeek, error) {
	var resp attendancegroup.ResolvedWeek
	err := c.do(ctx, http.MethodGet, idPath(groupsPath, id)+"/weekly-schedule", nil, nil, &resp)
	return resp, err
}

func (c *Client) CreateGroup(ctx context.Context, req attendancegroup.CreateAttendanceGroupRequest) (attendancegroup.AttendanceGroupResponse, error) {
	var resp attendancegroup.AttendanceGroupResponse
	err := c.do(ctx, http.MethodPost, groupsPath, nil, req, &resp)
	return resp, err
}

func (c *Client) UpdateGroup(ctx context.Context, req attendancegroup.UpdateAttendanceGroupRequest) (attendancegroup.AttendanceGroupResponse, error) {
	var resp attendancegroup.AttendanceGroupResponse
	err := c.do(ctx, http.MethodPut, idPath(groupsPath, req.ID), nil, req, &resp)
	return resp, err
}

func (c *Client) DeleteGroup(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath(groupsPath, id), nil, nil, nil)
}

// GroupEditor is everything the group form needs: the form itself and the shifts
// a day or the default can be assigned to.
type GroupEditor struct {
	Form   form.GroupForm
	Shifts []shift.ShiftResponse
}

// LoadGroupEditor fetches the group and the active shifts concurrently. A zero id
// starts a new group.
func (c *Client) LoadGroupEditor(ctx context.Context, id int64) (GroupEditor, error) {
	editor := GroupEditor{Form: form.NewGroupForm()}

	g, gctx := errgroup.WithContext(ctx)
	if id > 0 {
		g.Go(func() error {
			group, err := c.GetGroup(gctx, id)
			if err != nil {
				return err
			}
			editor.Form = form.GroupFormFrom(group)
			return nil
		})
	}
	g.Go(func() error {
		shifts, err := c.ListShifts(gctx, ListParams{Size: page.MaxSize, Sort: "name,asc"})
		if err != nil {
			return err
		}
		editor.Shifts = shifts.Content
		return nil
	})

	if err := g.Wait(); err != nil {
		return GroupEditor{}, err
	}
	return editor, nil
}
