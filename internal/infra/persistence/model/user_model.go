package model

import "time"

// UserModel mirrors the 'users' table.
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type UserModel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// UserDetailsModel mirrors the 'user_details' table. Username references users.username.
type UserDetailsModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Username  string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name      string `gorm:"type:varchar(255)"`
	Address   string `gorm:"type:text"`
	Pincode   string `gorm:"type:varchar(10)"`
	Phone     string `gorm:"type:varchar(20)"`
	LoginType string `gorm:"type:varchar(20);not null;default:customer"`
}

// TableName explicitly sets the table name for GORM.
func (UserDetailsModel) TableName() string {
	return "user_details"
}
