package models

// UserProfile is the single per-device profile row. The device identifier
// stands in for authentication; there is no server-side verification.
type UserProfile struct {
	TakerID       string  `gorm:"column:taker_id;uniqueIndex" json:"taker_id"`
	TakerName     string  `gorm:"column:taker_name" json:"taker_name"`
	ProfilePicURL *string `gorm:"column:profile_pic_url" json:"profile_pic_url"`
}

func (UserProfile) TableName() string { return "user_data" }
