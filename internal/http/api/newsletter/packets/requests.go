package packets

type SignupRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Reason string `json:"reason" binding:"required"`
}
