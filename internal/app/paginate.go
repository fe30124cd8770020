package app

import "hotel_adlab/internal/domain"

const DefaultPageSize = 2

type Page struct {
	Items      []domain.HotelRecord `json:"items"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"totalPages"`
	Total      int                  `json:"total"`
	PageSize   int                  `json:"pageSize"`
}

// Paginate slices list into pages of pageSize and clamps requested into [1, totalPages].
func Paginate(list []domain.HotelRecord, pageSize, requested int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := (len(list) + pageSize - 1) / pageSize
	if total < 1 {
		total = 1
	}
	page := requested
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(list) {
		start = len(list)
	}
	if end > len(list) {
		end = len(list)
	}
	items := make([]domain.HotelRecord, end-start)
	copy(items, list[start:end])

	return Page{Items: items, Page: page, TotalPages: total, Total: len(list), PageSize: pageSize}
}
