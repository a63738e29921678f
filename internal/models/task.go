package models

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
)

const (
	StatusOpen          = "OPEN"
	StatusWorking       = "WORKING"
	StatusPendingReview = "PENDING_REVIEW"
	StatusCompleted     = "COMPLETED"
	StatusOverdue       = "OVERDUE"
	StatusCancelled     = "CANCELLED"
)

var taskStatuses = map[string]bool{
	StatusOpen:          true,
	StatusWorking:       true,
	StatusPendingReview: true,
	StatusCompleted:     true,
	StatusOverdue:       true,
	StatusCancelled:     true,
}

// ValidStatus reports whether s is one of the six task statuses.
func ValidStatus(s string) bool {
	return taskStatuses[s]
}

var ErrNoOwner = errors.New("task requires an owning user")

type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	User        User       `json:"user" gorm:"foreignKey:UserID"`
	Timestamp   time.Time  `json:"timestamp" gorm:"not null;index"`
	Title       string     `json:"title" gorm:"size:100;not null"`
	Description string     `json:"description" gorm:"size:1000;not null"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []Tag      `json:"tags" gorm:"many2many:task_tags;"`
	Status      string     `json:"status" gorm:"size:20;not null;default:'OPEN'"`
}

// NewTask builds a task for the given owner. Ownership is mandatory: there is
// no default owner anywhere in the system, so a nil owner fails construction.
// The creation timestamp comes from the server clock and is never
// client-writable.
func NewTask(owner uuid.UUID, title, description string) (Task, error) {
	if owner == uuid.Nil {
		return Task{}, ErrNoOwner
	}
	id, err := uuid.NewV4()
	if err != nil {
		return Task{}, err
	}
	return Task{
		ID:          id,
		UserID:      owner,
		Timestamp:   time.Now().UTC(),
		Title:       title,
		Description: description,
		Status:      StatusOpen,
	}, nil
}
