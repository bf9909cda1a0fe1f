package domain

// Actor is the authenticated identity performing a request.
type Actor struct {
	ID         string
	Email      string
	AccessType AccessType
}

// IsAdmin reports whether the actor holds the admin role. Role is derived
// solely from the access type.
func (a Actor) IsAdmin() bool {
	return a.AccessType == AccessTypeAdmin
}

// Owns reports whether the actor owns the given application.
func (a Actor) Owns(app *Application) bool {
	return app != nil && app.UserID == a.ID
}
