package models

import "time"

type User struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash; never leaves the datastore in read paths
}

// UserPatch carries the columns a PATCH /user may change. Nil fields are left alone.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string // already hashed
}

// IsEmpty reports whether the patch would change nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil
}
