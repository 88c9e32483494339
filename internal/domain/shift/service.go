package shift

import (
	"context"

	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
)

type ShiftService interface {
	List(ctx context.Context, filter ListFilter) (page.Page[ShiftResponse], error)
	GetByID(ctx context.Context, id int64) (ShiftResponse, error)
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	Update(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id int64) error
}
