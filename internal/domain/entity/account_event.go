package entity

// AccountEventType names a change to a user account that other services may react to.
type AccountEventType string

const (
	// AccountEventRegistered is emitted after a new user is stored.
	AccountEventRegistered AccountEventType = "user.registered"
	// AccountEventUpdated is emitted after a user's details are overwritten.
	AccountEventUpdated AccountEventType = "user.updated"
	// AccountEventDeleted is emitted after a user is removed.
	AccountEventDeleted AccountEventType = "user.deleted"
)

// String returns the string representation of the event type.
func (t AccountEventType) String() string {
	return string(t)
}
