package query

// TotalPages is ceil(total/limit). Zero rows yield zero pages.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Window is the pagination metadata returned with every page, including
// the failed one.
type Window struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"-"`
	TotalPages int   `json:"totalPages"`
}

// Arbitrate decides whether p lies within the result set of size total.
// The returned Window is populated either way.
func Arbitrate(p Page, total int64) (Window, bool) {
	w := Window{
		Page:       p.Number,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: TotalPages(total, p.Limit),
	}
	return w, p.Number <= w.TotalPages
}
