package http

// APIResponse represents the envelope used for errors and service endpoints.
type APIResponse struct {
	Status  int         `json:"status" example:"200"`
	Message string      `json:"message" example:"OK"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"timestep"`
	Message string                 `json:"message,omitempty" example:"timestep is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
