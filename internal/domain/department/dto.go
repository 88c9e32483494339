package department

import (
	"sort"
	"strings"

	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/validator"
)

type DepartmentResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	ParentID    *int64               `json:"parentId"`
	MemberCount int                  `json:"memberCount"`
	Children    []DepartmentResponse `json:"children,omitempty"`
}

func NewDepartmentResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		ParentID:    d.ParentID,
		MemberCount: d.MemberCount,
	}
}

// BuildTree nests departments under their parents, sorted by name at every level.
// Departments whose parent is missing from the list become roots.
func BuildTree(depts []Department) []DepartmentResponse {
	known := make(map[int64]bool, len(depts))
	for _, d := range depts {
		known[d.ID] = true
	}

	children := make(map[int64][]Department)
	var roots []Department
	for _, d := range depts {
		if d.ParentID == nil || !known[*d.ParentID] || *d.ParentID == d.ID {
			roots = append(roots, d)
			continue
		}
		children[*d.ParentID] = append(children[*d.ParentID], d)
	}

	var build func(nodes []Department, seen map[int64]bool) []DepartmentResponse
	build = func(nodes []Department, seen map[int64]bool) []DepartmentResponse {
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })
		out := make([]DepartmentResponse, 0, len(nodes))
		for _, n := range nodes {
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			resp := NewDepartmentResponse(n)
			resp.Children = build(children[n.ID], seen)
			out = append(out, resp)
		}
		return out
	}

	return build(roots, make(map[int64]bool, len(depts)))
}

// IsDescendant reports whether candidate sits in the subtree rooted at id.
func IsDescendant(depts []Department, id, candidate int64) bool {
	parent := make(map[int64]*int64, len(depts))
	for _, d := range depts {
		parent[d.ID] = d.ParentID
	}
	for cur, steps := &candidate, 0; cur != nil && steps <= len(depts); steps++ {
		if *cur == id {
			return true
		}
		cur = parent[*cur]
	}
	return false
}

type CreateDepartmentRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	ParentID *int64 `json:"parentId,omitempty" validate:"omitempty,gt=0"`
}

func (r *CreateDepartmentRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validator.Struct(r)
}

type UpdateDepartmentRequest struct {
	ID       int64   `json:"-"`
	Name     *string `json:"name,omitempty" validate:"omitempty,notblank,max=100"`
	ParentID *int64  `json:"parentId" validate:"omitempty,gt=0"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	errs := validator.ValidationErrors{}
	if r.ID <= 0 {
		errs.Add("id", "id is required")
	}
	if r.ParentID != nil && *r.ParentID == r.ID {
		errs.Add("parentId", "parentId must not reference the department itself")
	}
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}
	return errs.OrNil()
}
