package models

import "time"

// BlogPost is an authored article on the intranet blog. The author owns the
// post; ownership is set at creation and never reassigned.
type BlogPost struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title     string    `json:"title" gorm:"type:varchar(255)" validate:"required"`
	Content   string    `json:"content" validate:"required"`
	Tags      []string  `json:"tags" gorm:"serializer:json;type:text"`
	Category  string    `json:"category" gorm:"type:varchar(100)"`
	AuthorID  string    `json:"authorId" gorm:"index;type:varchar(36)"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Comments  []Comment `json:"comments" gorm:"foreignKey:PostID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment is a reply attached to a blog post.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Content   string    `json:"content" validate:"required"`
	AuthorID  string    `json:"authorId" gorm:"index;type:varchar(36)"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	PostID    string    `json:"postId" gorm:"index;type:varchar(36)"`
	CreatedAt time.Time `json:"createdAt"`
}
