package models

import "github.com/gofrs/uuid"

// Tag is a label shared across tasks. Names are globally unique. Deleting a
// tag removes its task associations, never the tasks themselves.
type Tag struct {
	ID    uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name  string    `json:"name" gorm:"size:50;uniqueIndex;not null"`
	Tasks []Task    `json:"-" gorm:"many2many:task_tags;"`
}
