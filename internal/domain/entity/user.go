package entity

import "time"

// User usuario del sistema (login por username, hash bcrypt).
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
