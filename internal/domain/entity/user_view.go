package entity

// UserProfile is what create, get-by-id and search return.
type UserProfile struct {
	UserID   int64    `json:"userId" bson:"userId"`
	Username string   `json:"username" bson:"username"`
	FullName FullName `json:"fullName" bson:"fullName"`
	Age      float64  `json:"age" bson:"age"`
	Email    string   `json:"email" bson:"email"`
	IsActive bool     `json:"isActive" bson:"isActive"`
	Hobbies  []string `json:"hobbies" bson:"hobbies"`
	Address  Address  `json:"address" bson:"address"`
}

// UserDetail is returned by update and order-append.
type UserDetail struct {
	UserProfile `bson:",inline"`
	Orders      []Order `json:"orders" bson:"orders"`
}

// UserListing carries only the fields a list request asked for.
type UserListing struct {
	UserID   *int64    `json:"userId,omitempty" bson:"userId,omitempty"`
	Username *string   `json:"username,omitempty" bson:"username,omitempty"`
	FullName *FullName `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Age      *float64  `json:"age,omitempty" bson:"age,omitempty"`
	Email    *string   `json:"email,omitempty" bson:"email,omitempty"`
	IsActive *bool     `json:"isActive,omitempty" bson:"isActive,omitempty"`
	Hobbies  *[]string `json:"hobbies,omitempty" bson:"hobbies,omitempty"`
	Address  *Address  `json:"address,omitempty" bson:"address,omitempty"`
}

// Listing projects u onto fields.
func (u User) Listing(fields []UserField) UserListing {
	var l UserListing
	for _, f := range fields {
		switch f {
		case FieldUserID:
			id := u.UserID
			l.UserID = &id
		case FieldUsername:
			name := u.Username
			l.Username = &name
		case FieldFullName:
			fn := u.FullName
			l.FullName = &fn
		case FieldAge:
			age := u.Age
			l.Age = &age
		case FieldEmail:
			email := u.Email
			l.Email = &email
		case FieldIsActive:
			active := u.IsActive
			l.IsActive = &active
		case FieldHobbies:
			hobbies := append([]string{}, u.Hobbies...)
			l.Hobbies = &hobbies
		case FieldAddress:
			addr := u.Address
			l.Address = &addr
		}
	}
	return l
}
