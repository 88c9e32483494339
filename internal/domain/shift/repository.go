package shift

import "context"

type ShiftRepository interface {
	Create(ctx context.Context, shift Shift) (Shift, error)
	GetByID(ctx context.Context, id int64) (Shift, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]Shift, error)
	List(ctx context.Context, filter ListFilter) ([]Shift, int64, error)
	Update(ctx context.Context, shift Shift) (Shift, error)
	SoftDelete(ctx context.Context, id int64, updatedBy *int64) error
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
}
