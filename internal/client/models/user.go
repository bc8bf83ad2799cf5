package models

// User is the authenticated identity as returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse is returned by /auth/login and /auth/register.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Session is the authenticated identity plus its bearer token.
type Session struct {
	UserID string
	Email  string
	Name   string
	Token  string
}

// NewSession builds a Session from an auth response.
func NewSession(token string, u User) Session {
	return Session{UserID: u.ID, Email: u.Email, Name: u.Name, Token: token}
}

// User returns the identity part of the session.
func (s Session) User() User {
	return User{ID: s.UserID, Email: s.Email, Name: s.Name}
}
