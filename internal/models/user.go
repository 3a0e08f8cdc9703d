package models

import (
	"time"

	"github.com/google/uuid"
)

const AuthProviderLocal = "local"

type User struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	DisplayName     string    `json:"displayName"`
	Bio             string    `json:"bio"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	AuthProvider    string    `json:"authProvider"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// PublicUser is the subset of a user visible to other users.
type PublicUser struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	DisplayName     string    `json:"displayName"`
	ProfileImageURL *string   `json:"profileImageUrl"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:              u.ID,
		Username:        u.Username,
		DisplayName:     u.DisplayName,
		ProfileImageURL: u.ProfileImageURL,
	}
}

type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
	DisplayName  string
}

type UpdateProfileParams struct {
	DisplayName     *string
	Bio             *string
	ProfileImageURL *string
}
