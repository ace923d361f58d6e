package dto

type AdminLogin struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// AuthPrincipal is what an authenticated session carries.
type AuthPrincipal struct {
	AdminID uint   `json:"id"`
	Email   string `json:"email"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}
