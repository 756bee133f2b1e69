package models

type User struct {
	BaseModel
	Email            string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash     string   `gorm:"not null" json:"-"`
	Role             UserRole `gorm:"type:varchar(20);not null;default:'job_seeker'" json:"role"`
	HasAccess        bool     `gorm:"not null;default:false" json:"hasAccess"`
	IsVerified       bool     `gorm:"not null;default:false" json:"isVerified"`
	IsOnboarded      bool     `gorm:"not null;default:false" json:"isOnboarded"`
	StripeCustomerID *string  `gorm:"type:varchar(255)" json:"-"`
	StripePriceID    *string  `gorm:"type:varchar(255)" json:"-"`

	Profile *UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

type UserProfile struct {
	BaseModel
	UserID       string  `gorm:"type:varchar(36);uniqueIndex;not null" json:"userId"`
	FirstName    string  `gorm:"type:varchar(100)" json:"firstName"`
	LastName     string  `gorm:"type:varchar(100)" json:"lastName"`
	MobileNumber *string `gorm:"type:varchar(30)" json:"mobileNumber,omitempty"`
	LinkedinURL  *string `gorm:"column:linkedin_url" json:"linkedinUrl,omitempty"`
}

// FullName joins first and last name, falling back to the email.
func (u *User) FullName() string {
	if u.Profile == nil || (u.Profile.FirstName == "" && u.Profile.LastName == "") {
		return u.Email
	}
	if u.Profile.LastName == "" {
		return u.Profile.FirstName
	}
	return u.Profile.FirstName + " " + u.Profile.LastName
}
