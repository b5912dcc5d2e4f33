package domain

import (
	"time"

	"github.com/simp-lee/pagination"
)

// BaseModel is the common base struct for all domain models.
// It replaces gorm.Model to avoid the implicit soft delete behavior of DeletedAt.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListQuery holds the pagination and search parameters of a list request.
// Legacy reports whether the request carried no pagination parameters at all,
// in which case the list endpoints answer with the bare-array response shape
// kept for pre-pagination callers.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	Legacy bool
}

// PageResult is a single page of items plus pagination metadata.
type PageResult[T any] = pagination.Pagination[T]
