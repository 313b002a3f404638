package utils

import (
	"github.com/kataras/iris/v12"
)

// Pagination is the public listing metadata. HasMore is always computed as
// offset + len(returned) < total.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

func NewPagination(page, limit int, total int64, returned int) Pagination {
	if limit < 1 {
		limit = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	offset := (page - 1) * limit
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    int64(offset+returned) < total,
	}
}

// JSONList is the public listing envelope.
func JSONList(ctx iris.Context, data interface{}, p Pagination) {
	ctx.JSON(iris.Map{"success": true, "data": data, "pagination": p})
}

// PageMeta / JSONPage / JSONError are the admin dashboard envelope.
type PageMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

func JSONPage(ctx iris.Context, data interface{}, page, perPage int, total int64) {
	ctx.JSON(iris.Map{
		"data":  data,
		"meta":  PageMeta{Page: page, PerPage: perPage, Total: total},
		"links": iris.Map{},
	})
}

func JSONError(ctx iris.Context, status int, code, message string) {
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{"error": code, "message": message})
}
