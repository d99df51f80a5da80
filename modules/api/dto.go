package api

// CreateTodoRequest is the HTTP request for creating a todo.
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SetThemeRequest is the HTTP request for changing the theme preference.
type SetThemeRequest struct {
	Theme string `json:"theme"`
}

// SetAppearanceRequest is the HTTP request for pushing the OS appearance.
type SetAppearanceRequest struct {
	Appearance string `json:"appearance"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
