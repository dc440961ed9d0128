package models

// User is the authenticated student as the backend describes them.
type User struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Token    string `json:"token,omitempty"`
	Password string `json:"password,omitempty"`
	Photo    string `json:"photo,omitempty"`
}

// Profile returns the user without credentials, safe to persist or render.
func (u User) Profile() User {
	u.Token = ""
	u.Password = ""
	return u
}
