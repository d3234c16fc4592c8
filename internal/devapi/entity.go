package devapi

import "time"

// Confirmation is one confirmed attendee. Companions are stored as their own
// rows so a companion cannot confirm again under their own name.
type Confirmation struct {
	ID             string    `gorm:"column:id;primaryKey" json:"id"`
	Name           string    `gorm:"column:name" json:"name"`
	NormalizedName string    `gorm:"column:normalized_name;uniqueIndex:idx_confirmations_normalized_name" json:"-"`
	GroupID        string    `gorm:"column:group_id;index" json:"group_id"`
	IsCompanion    bool      `gorm:"column:is_companion" json:"is_companion"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Confirmation) TableName() string { return "confirmations" }

// Photo is an uploaded guest photo stored on the local filesystem.
type Photo struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	OriginalName string    `gorm:"column:original_name" json:"original_name"`
	FilePath     string    `gorm:"column:file_path" json:"-"`
	MimeType     string    `gorm:"column:mime_type" json:"mime_type"`
	Size         int64     `gorm:"column:size" json:"size"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Photo) TableName() string { return "photos" }

// Models lists everything AutoMigrate must create.
func Models() []any {
	return []any{&Confirmation{}, &Photo{}}
}
