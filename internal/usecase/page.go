package usecase

import "community/internal/repository"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// 一覧の返却形。pageは0始まり。
type PageDTO[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}

// page<0, size<0, size>MaxPageSize はErrValidation。size=0は既定値。
func pageQuery(page int, size int) (repository.PageQuery, int, error) {
	if size == 0 {
		size = DefaultPageSize
	}
	if page < 0 || size < 0 || size > MaxPageSize {
		return repository.PageQuery{}, 0, ErrValidation
	}
	return repository.PageQuery{Offset: page * size, Limit: size}, size, nil
}
