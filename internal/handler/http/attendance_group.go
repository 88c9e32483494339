package http

import (
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/attendancegroup"
	"github.com/cmlabs-hris/hcms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
)

type AttendanceGroupHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetWeeklySchedule(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceGroupHandlerImpl struct {
	groupService attendancegroup.AttendanceGroupService
}

func NewAttendanceGroupHandler(groupService attendancegroup.AttendanceGroupService) AttendanceGroupHandler {
	return &attendanceGroupHandlerImpl{
		groupService: groupService,
	}
}

func (h *attendanceGroupHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := attendancegroup.ListFilter{
		Search: strings.TrimSpace(q.Get("search")),
		Status: attendancegroup.Status(strings.ToUpper(q.Get("status"))),
		Page:   page.FromQuery(q, "name", attendancegroup.SortColumns),
	}

	result, err := h.groupService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, result)
}

func (h *attendanceGroupHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid attendance group id", nil)
		return
	}

	result, err := h.groupService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, result)
}

func (h *attendanceGroupHandlerImpl) GetWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid attendance group id", nil)
		return
	}

	result, err := h.groupService.GetWeeklySchedule(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, result)
}

func (h *attendanceGroupHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req attendancegroup.CreateAttendanceGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.groupService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, result)
}

func (h *attendanceGroupHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid attendance group id", nil)
		return
	}

	var req attendancegroup.UpdateAttendanceGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.groupService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, result)
}

func (h *attendanceGroupHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid attendance group id", nil)
		return
	}

	if err := h.groupService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Message(w, "Successfully deleted attendance group")
}
