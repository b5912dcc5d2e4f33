package pkg

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/partstore/internal/domain"
	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ParseListQuery extracts page, limit, and search from the request query.
//
// A request that carries neither "page" nor "limit" is flagged as legacy:
// list endpoints answer such requests with the full collection as a bare
// JSON array instead of the paginated envelope.
func ParseListQuery(c *gin.Context) domain.ListQuery {
	_, hasPage := c.GetQuery("page")
	_, hasLimit := c.GetQuery("limit")

	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if page < 1 {
		page = defaultPage
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return domain.ListQuery{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(c.Query("search")),
		Legacy: !hasPage && !hasLimit,
	}
}

// Paginate returns a GORM scope that applies LIMIT and OFFSET based on the list query.
func Paginate(q domain.ListQuery) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset := (q.Page - 1) * q.Limit
		return db.Offset(offset).Limit(q.Limit)
	}
}

// Search returns a GORM scope that matches the term as a case-insensitive
// substring against any of the given columns. An empty term matches everything.
// Column names must be trusted identifiers, not user input.
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}

		pattern := "%" + strings.ToLower(term) + "%"
		conds := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, col := range columns {
			conds = append(conds, "LOWER("+col+") LIKE ?")
			args = append(args, pattern)
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// NewPageResult creates a PageResult with computed TotalPages.
func NewPageResult[T any](items []T, total int64, q domain.ListQuery) *domain.PageResult[T] {
	totalPages := 0
	if q.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(q.Limit)))
	}

	if items == nil {
		items = []T{}
	}

	return &domain.PageResult[T]{
		Items:        items,
		TotalItems:   total,
		CurrentPage:  q.Page,
		ItemsPerPage: q.Limit,
		TotalPages:   totalPages,
	}
}
