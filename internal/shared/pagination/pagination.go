package pagination

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Query is bound from ?page=&limit= on list endpoints.
type Query struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// Normalize applies the default page size and clamps out-of-range values.
func (q Query) Normalize() Query {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// Offset returns the row offset of the normalized query.
func (q Query) Offset() int {
	n := q.Normalize()
	return (n.Page - 1) * n.Limit
}

// Result is one page of items plus totals.
type Result[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// NewResult builds a Result for the given normalized query.
func NewResult[T any](items []T, total int64, q Query) Result[T] {
	q = q.Normalize()
	if items == nil {
		items = []T{}
	}
	return Result[T]{
		Items:      items,
		TotalCount: total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: int((total + int64(q.Limit) - 1) / int64(q.Limit)),
	}
}

// Slice pages an in-memory slice. Used by fakes and small lookups.
func Slice[T any](all []T, q Query) Result[T] {
	q = q.Normalize()
	start := q.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + q.Limit
	if end > len(all) {
		end = len(all)
	}
	return NewResult(append([]T(nil), all[start:end]...), int64(len(all)), q)
}
