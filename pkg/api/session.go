package api

import "strings"

// Session carries the authenticated caller's credentials. It is passed
// explicitly into the client constructor instead of living in ambient
// storage, so its lifetime is tied to application start and sign-out.
type Session struct {
	Token string
	User  string
}

// Valid reports whether the session carries a usable token.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.Token) != ""
}
