package models

import "time"

// TimeLayout is the format used for user timestamps in the store file.
const TimeLayout = "2006-01-02 15:04:05"

// User represents a registered account as persisted in the store file.
type User struct {
	ID        string   `json:"id"`
	Fullname  string   `json:"fullname"`
	Email     string   `json:"email"`
	Username  string   `json:"username"`
	Password  string   `json:"password,omitempty"` // bcrypt hash; strip before responding
	Gender    string   `json:"gender"`
	Hobbies   []string `json:"hobbies"`
	Country   string   `json:"country"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// Sanitized returns a copy safe to send to clients.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// UserDraft is user-supplied registration data before the generated
// fields (id, timestamps, hashed password) are assigned.
type UserDraft struct {
	Fullname string   `json:"fullname"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	Gender   string   `json:"gender"`
	Hobbies  []string `json:"hobbies"`
	Country  string   `json:"country"`
}

// UserUpdate carries the fields an update may change. Nil means "leave as is".
type UserUpdate struct {
	Fullname *string   `json:"fullname"`
	Email    *string   `json:"email"`
	Gender   *string   `json:"gender"`
	Hobbies  *[]string `json:"hobbies"`
	Country  *string   `json:"country"`
}

// Now formats the current UTC time in the store's timestamp layout.
func Now() string {
	return time.Now().UTC().Format(TimeLayout)
}
