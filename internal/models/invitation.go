package models

import "time"

// Verification holds a one-time code secret for a target (an email).
type Verification struct {
	BaseModel
	Type      VerificationType `gorm:"type:varchar(20);not null;uniqueIndex:uq_verification_target_type" json:"type"`
	Target    string           `gorm:"type:varchar(255);not null;uniqueIndex:uq_verification_target_type" json:"target"`
	Secret    string           `gorm:"not null" json:"-"`
	Algorithm string           `gorm:"type:varchar(10);not null" json:"-"`
	Digits    int              `gorm:"not null" json:"-"`
	Period    uint             `gorm:"not null" json:"-"`
	ExpiresAt *time.Time       `gorm:"index" json:"expiresAt,omitempty"`
}

func (v *Verification) Expired(now time.Time) bool {
	return v.ExpiresAt != nil && now.After(*v.ExpiresAt)
}

type UserInvitation struct {
	BaseModel
	Email            string           `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role             UserRole         `gorm:"type:varchar(20);not null" json:"role"`
	OrganizationName *string          `gorm:"type:varchar(255)" json:"organizationName,omitempty"`
	SenderID         string           `gorm:"type:varchar(36);not null" json:"senderId"`
	VerificationID   *string          `gorm:"type:varchar(36)" json:"-"`
	Status           InvitationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	Sender       *User         `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	Verification *Verification `gorm:"foreignKey:VerificationID;constraint:OnDelete:SET NULL" json:"-"`
}
