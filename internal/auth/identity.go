package auth

// Identity is the acting identity of one client session.
// The zero value is Anonymous.
type Identity struct {
	username string
}

// Anonymous returns the identity of a client that is not logged in.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated returns the identity of a logged-in user.
func Authenticated(username string) Identity {
	return Identity{username: username}
}

// IsAuthenticated reports whether the identity is a logged-in user.
func (i Identity) IsAuthenticated() bool {
	return i.username != ""
}

// Username returns the logged-in username, or false when anonymous.
func (i Identity) Username() (string, bool) {
	return i.username, i.IsAuthenticated()
}

// Is reports whether the identity is Authenticated(username).
func (i Identity) Is(username string) bool {
	return i.IsAuthenticated() && i.username == username
}

func (i Identity) String() string {
	if !i.IsAuthenticated() {
		return "anonymous"
	}
	return i.username
}

// RequestContext carries the acting identity of a single request. It is passed
// explicitly into every service call.
type RequestContext struct {
	Identity  Identity
	SessionID string
	RequestID string
}
