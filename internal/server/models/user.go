package models

import "time"

// User is the persisted identity record. PasswordHash holds the salted
// bcrypt digest of the account secret; the plaintext is never stored.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// UserDelta lists the fields changed by one update operation. Nil pointers
// mean "leave unchanged". The delta is transient: it is built per request
// and discarded after the repository write.
type UserDelta struct {
	Name         *string
	Email        *string
	PasswordHash []byte
}

// Empty reports whether the delta would change nothing.
func (d *UserDelta) Empty() bool {
	return d.Name == nil && d.Email == nil && d.PasswordHash == nil
}

// UserView is the caller-facing projection of a User. It deliberately has
// no digest field, so a digest cannot leak into a response by accident.
type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// View strips the secret digest from a record.
func (u *User) View() *UserView {
	return &UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
