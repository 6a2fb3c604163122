package manage_managers

// AddManagerRequest HTTP request model
type AddManagerRequest struct {
	Email string `json:"email" validate:"required,email"`
}
