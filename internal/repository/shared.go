package repository

// FilterOrder carries the raw filter expression of a list request.
type FilterOrder struct {
	Filter string
}

func (fo *FilterOrder) GetFilter() string { return fo.Filter }
