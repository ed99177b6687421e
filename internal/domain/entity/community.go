package entity

import (
	"path/filepath"
	"strings"
	"time"
)

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// IsAllowedImage checks an upload file name against the accepted image extensions.
func IsAllowedImage(filename string) bool {
	return allowedImageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// CommunityPost is a forum thread.
type CommunityPost struct {
	ID         uint
	Username   string
	Title      string
	Content    string
	ImagePath  string
	CreatedAt  time.Time
	AuthorName string
	Replies    []*CommunityReply
}

// CommunityReply is an answer in a thread.
type CommunityReply struct {
	ID         uint
	PostID     uint
	Username   string
	Content    string
	CreatedAt  time.Time
	AuthorName string
}
