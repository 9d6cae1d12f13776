package models

import "time"

// Student is the seafarer profile attached to a student-role user.
type Student struct {
	StudID       string    `gorm:"column:studid;primaryKey;size:64" json:"studid"`
	UserID       string    `gorm:"column:userid;uniqueIndex;not null;size:64" json:"userid"`
	DGShippingID string    `gorm:"column:dgshipping_id;size:64" json:"dgshipping_id,omitempty"`
	Rank         string    `gorm:"size:64" json:"rank,omitempty"`
	COCNumber    string    `gorm:"column:coc_number;size:64" json:"coc_number,omitempty"`
	DateOfBirth  string    `gorm:"size:10" json:"date_of_birth,omitempty"`
	Nationality  string    `gorm:"size:64" json:"nationality,omitempty"`
	ProfileImage string    `gorm:"size:512" json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
