package dto

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token string         `json:"token"`
	User  *ProfileOutput `json:"user"`
}

// ProfileOutput represents profile data in API responses
type ProfileOutput struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Timezone  string  `json:"timezone"`
	IsPublic  bool    `json:"is_public"`
}

// UpdateProfileRequest represents profile edits
type UpdateProfileRequest struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
	Timezone  *string `json:"timezone"`
	IsPublic  *bool   `json:"is_public"`
}
