package handler

import "campaign/backend/internal/repository"

// PageMeta describes where a page sits in the filtered result set.
type PageMeta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// RegistrationPage is the envelope returned when a listing asks for a page.
type RegistrationPage struct {
	Data []RegistrationResponse `json:"data"`
	Meta PageMeta               `json:"meta"`
}

// newRegistrationPage expects p.Limit to be positive.
func newRegistrationPage(items []RegistrationResponse, total int64, p repository.Page) RegistrationPage {
	return RegistrationPage{
		Data: items,
		Meta: PageMeta{
			TotalItems:  total,
			TotalPages:  int((total + int64(p.Limit) - 1) / int64(p.Limit)),
			CurrentPage: p.Number,
			PageSize:    p.Limit,
		},
	}
}
