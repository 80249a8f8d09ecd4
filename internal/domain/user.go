package domain

// UserRecord is the normalized result of a GLPI user search.
type UserRecord struct {
	ID    *int
	Name  string
	Login string
	Email string
}

// Found reports whether the search resolved a numeric GLPI user id.
func (u UserRecord) Found() bool {
	return u.ID != nil
}

// UserID returns the resolved id, or zero when the lookup missed.
func (u UserRecord) UserID() int {
	if u.ID == nil {
		return 0
	}
	return *u.ID
}
