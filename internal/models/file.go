package models

import "time"

// File is the metadata record for an uploaded blob. The blob itself lives
// in the blob store under Path; the two are kept consistent best-effort
// (see FileService.Delete).
type File struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(255)" validate:"required"` // original filename
	Path        string    `json:"-" gorm:"type:varchar(512)"`                        // storage locator, never serialized
	MimeType    string    `json:"mimeType" gorm:"type:varchar(127)"`
	Size        int64     `json:"size" validate:"gt=0"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags" gorm:"serializer:json;type:text"`
	Category    string    `json:"category" gorm:"type:varchar(100)"`
	UploaderID  string    `json:"uploaderId" gorm:"index;type:varchar(36)"`
	Uploader    *User     `json:"uploader,omitempty" gorm:"foreignKey:UploaderID"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
