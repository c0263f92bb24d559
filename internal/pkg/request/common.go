package request

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
// IDs are opaque: in-memory stores hand out counters, PostgreSQL hands out UUIDs.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required"`
}

// Validate performs custom validation for ByIDRequest.
func (r *ByIDRequest) Validate() error {
	return nil
}

// ListParams holds the pagination query parameters shared by list endpoints.
type ListParams struct {
	Page      int    `form:"page,default=1" binding:"min=1"`
	PageSize  int    `form:"page_size,default=20" binding:"min=1,max=100"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}
