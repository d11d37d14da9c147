package dto

// SuccessResponse is the envelope for operations that return only a message
type SuccessResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Operation completed successfully"`
}

// NewSuccessResponse creates a message-only success envelope
func NewSuccessResponse(message string) SuccessResponse {
	return SuccessResponse{Success: true, Message: message}
}

// Pagination is attached to every paginated list
type Pagination struct {
	Total int64 `json:"total" example:"42"`
	Page  int   `json:"page" example:"1"`
	Pages int   `json:"pages" example:"5"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Success bool   `json:"success" example:"true"`
	Status  string `json:"status" example:"ok"`
	Store   string `json:"store" example:"postgres"`
}
