package models

type Company struct {
	BaseModel
	Name       string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	IsVerified bool   `gorm:"not null;default:false" json:"isVerified"`
}

type Country struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null" json:"name"`
	Code string `gorm:"type:varchar(3);uniqueIndex;not null" json:"code"`
}

type MembershipBody struct {
	BaseModel
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
}
