package domain

import "time"

// Owner is a pet owner profile. UserID links the profile to a login when present.
type Owner struct {
	ID        string
	UserID    *string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns "first last" with surrounding blanks trimmed.
func (o *Owner) FullName() string {
	if o == nil {
		return ""
	}
	switch {
	case o.FirstName == "":
		return o.LastName
	case o.LastName == "":
		return o.FirstName
	}
	return o.FirstName + " " + o.LastName
}
