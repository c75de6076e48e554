package domain

type Page[T any] struct {
	Content       []T
	PageNumber    int
	PageSize      int
	TotalElements int64
	TotalPages    int
	Last          bool
}

func NewPage[T any](content []T, page, size int, total int64) Page[T] {
	if size <= 0 {
		size = 1
	}

	totalPages := int((total + int64(size) - 1) / int64(size))

	return Page[T]{
		Content:       content,
		PageNumber:    page,
		PageSize:      size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          page >= totalPages-1,
	}
}
