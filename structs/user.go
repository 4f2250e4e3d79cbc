package structs

import "time"

// User is referenced by quests for ownership. The password hash is
// never serialized.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Username     string    `db:"username" json:"username"`
	DisplayName  *string   `db:"display_name" json:"displayName"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8,password"`
	Username    string  `json:"username" binding:"required,min=3,max=30,username"`
	DisplayName *string `json:"displayName" binding:"omitempty,max=100"`
}
