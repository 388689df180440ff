package auth

import "time"

// User represents a user in the system as stored in the database and as used
// within the application's business logic.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	// HashedPassword is never serialized: the hash must not leave the
	// service in any response.
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
