package dto

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is the {success, message} pair both sign-in and sign-up resolve
// to. Failures are results, not errors: the handler maps Success=false to a
// 4xx with Message as the user-facing detail.
type AuthResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type SignInResponse struct {
	AuthResult
	AccessToken  string          `json:"access_token,omitempty"`
	SessionToken string          `json:"session_token,omitempty"`
	TokenType    string          `json:"token_type,omitempty"`
	ExpiresIn    int             `json:"expires_in,omitempty"`
	Profile      *ProfileSummary `json:"profile,omitempty"`
}

type ProfileSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Approved bool   `json:"approved"`
}

type RefreshSessionRequest struct {
	SessionToken string `json:"session_token" validate:"required"`
}

// RefreshSessionResponse reports whether the presented session token is still
// the account's active one. Invalidated=true means another device signed in
// and this session must be discarded.
type RefreshSessionResponse struct {
	Valid       bool            `json:"valid"`
	Invalidated bool            `json:"invalidated"`
	Profile     *ProfileSummary `json:"profile,omitempty"`
}

type PendingProfileResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Approved bool   `json:"approved"`
	Role     string `json:"role"`
}
