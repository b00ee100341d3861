package model

// AnonymousUserID is the owner used when authentication is disabled.
const AnonymousUserID = "00000000-0000-0000-0000-000000000000"

// A Principal is the user performing a request.
type Principal struct {
	UserID string
	// Enforced is false when the server runs without authentication,
	// in which case no ownership nor visibility rule applies.
	Enforced bool
}

// Authenticated returns a principal identified by a verified token subject.
func Authenticated(userID string) Principal {
	return Principal{UserID: userID, Enforced: true}
}

// Anonymous returns a principal for the open variant of the server.
func Anonymous(userID string) Principal {
	if userID == "" {
		userID = AnonymousUserID
	}
	return Principal{UserID: userID}
}
