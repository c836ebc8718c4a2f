package dto

// MessageResponse represents a standard success response
type MessageResponse struct {
	Message string `json:"message"`
}

// PaginationMeta describes one page of a filtered listing. Total and
// TotalPages are computed over the full filtered set, not the slice.
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// PaginatedResponse wraps a page of data with its pagination metadata
type PaginatedResponse struct {
	Data interface{}    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}
