package model

import "time"

// CommunityPostModel mirrors the 'community_posts' table.
type CommunityPostModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Username  string `gorm:"type:varchar(100);index;not null"`
	Title     string `gorm:"type:varchar(255);not null"`
	Content   string `gorm:"type:text;not null"`
	ImagePath string `gorm:"type:varchar(255)"`
	CreatedAt time.Time

	Replies []*CommunityReplyModel `gorm:"foreignKey:PostID"`
}

// TableName explicitly sets the table name for GORM.
func (CommunityPostModel) TableName() string {
	return "community_posts"
}

// CommunityReplyModel mirrors the 'community_replies' table.
type CommunityReplyModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	PostID    uint   `gorm:"index;not null"`
	Username  string `gorm:"type:varchar(100);not null"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CommunityReplyModel) TableName() string {
	return "community_replies"
}
