package models

// SignIn is the sign-in request body.
type SignIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp is the registration request body.
type SignUp struct {
	Username        string `json:"username"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ProfileUpdate carries the mutable profile fields. Nil fields are left out
// of the PATCH body.
type ProfileUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Username  *string `json:"username,omitempty"`
}

// Empty reports whether the update would change nothing.
func (p ProfileUpdate) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Username == nil
}

// PasswordChange is the change-password request body.
type PasswordChange struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// PasswordReset completes the forgot-password flow with the mailed code.
type PasswordReset struct {
	Email        string `json:"email"`
	ProvidedCode string `json:"providedCode"`
	NewPassword  string `json:"newPassword"`
}

// Verification submits the code mailed by the verification endpoint.
type Verification struct {
	ProvidedCode string `json:"providedCode"`
	Email        string `json:"email"`
}
