package model

import "time"

// BlogPost is a short text post owned by exactly one user.
// Author is the owner's username captured at creation time.
type BlogPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Author    string    `json:"author" gorm:"size:50;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	OwnerID   uint      `json:"owner_id" gorm:"not null;index"`

	// Relations
	Owner *User `json:"-" gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName keeps the table name singular.
func (BlogPost) TableName() string {
	return "blog_post"
}

// IsOwnedBy reports whether userID owns the post. Zero is the anonymous id.
func (p *BlogPost) IsOwnedBy(userID uint) bool {
	return userID != 0 && p.OwnerID == userID
}
