package user

import "time"

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the only shape a user ever leaves the service in.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	UserResponse
	Role        string    `json:"role"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type DeleteUserResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

// Summary is the user as embedded in leave and timesheet listings.
type Summary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToSummary returns nil for a user that was not loaded.
func ToSummary(u *User) *Summary {
	if u == nil || u.ID == 0 {
		return nil
	}
	return &Summary{ID: u.ID, Name: u.Name, Email: u.Email}
}
