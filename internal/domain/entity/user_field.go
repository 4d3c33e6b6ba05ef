package entity

import (
	"fmt"
	"strings"
)

// UserField names a projectable, non-sensitive user field.
// password and the storage id have no UserField.
type UserField string

const (
	FieldUserID   UserField = "userId"
	FieldUsername UserField = "username"
	FieldFullName UserField = "fullName"
	FieldAge      UserField = "age"
	FieldEmail    UserField = "email"
	FieldIsActive UserField = "isActive"
	FieldHobbies  UserField = "hobbies"
	FieldAddress  UserField = "address"
)

var knownFields = map[UserField]struct{}{
	FieldUserID: {}, FieldUsername: {}, FieldFullName: {}, FieldAge: {},
	FieldEmail: {}, FieldIsActive: {}, FieldHobbies: {}, FieldAddress: {},
}

// DefaultListFields is the projection used by the user list endpoint.
var DefaultListFields = []UserField{FieldUsername, FieldFullName, FieldAge, FieldEmail, FieldAddress}

// ParseUserFields parses a comma-separated field list. Duplicates are dropped.
func ParseUserFields(s string) ([]UserField, error) {
	var out []UserField
	seen := map[UserField]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f := UserField(part)
		if _, ok := knownFields[f]; !ok {
			return nil, fmt.Errorf("unknown field %q", part)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no fields requested")
	}
	return out, nil
}
