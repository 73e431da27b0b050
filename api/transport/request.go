package transport

// CreateTaskRequest is the POST /tasks payload.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	IsComplete  *bool   `json:"isComplete"`
}

// UpdateTaskRequest is the PATCH /tasks/{id} payload. Nil fields were absent
// from the request and must leave the stored value untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsComplete  *bool   `json:"isComplete"`
}

// LoginRequest is the POST /login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
