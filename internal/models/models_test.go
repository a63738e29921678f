package models_test

import (
	"testing"

	"todo-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
)

func TestNewTask(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())

	task, err := models.NewTask(owner, "Write report", "Quarterly numbers")
	if err != nil {
		t.Fatalf("NewTask returned error: %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected a generated task ID")
	}
	if task.UserID != owner {
		t.Errorf("Expected owner %s, got %s", owner, task.UserID)
	}
	if task.Status != models.StatusOpen {
		t.Errorf("Expected default status OPEN, got '%s'", task.Status)
	}
	if task.Timestamp.IsZero() {
		t.Error("Expected a server-assigned timestamp")
	}
}

func TestNewTask_NoOwner(t *testing.T) {
	_, err := models.NewTask(uuid.Nil, "Orphan", "Should never exist")
	if err != models.ErrNoOwner {
		t.Errorf("Expected ErrNoOwner, got %v", err)
	}
}

func TestValidStatus(t *testing.T) {
	valid := []string{"OPEN", "WORKING", "PENDING_REVIEW", "COMPLETED", "OVERDUE", "CANCELLED"}
	for _, s := range valid {
		if !models.ValidStatus(s) {
			t.Errorf("Expected '%s' to be a valid status", s)
		}
	}

	invalid := []string{"", "open", "DONE", "IN_PROGRESS", "completed"}
	for _, s := range invalid {
		if models.ValidStatus(s) {
			t.Errorf("Expected '%s' to be rejected", s)
		}
	}
}

func TestTag_Fields(t *testing.T) {
	tag := models.Tag{
		ID:   uuid.Must(uuid.NewV4()),
		Name: "urgent",
	}

	if tag.Name != "urgent" {
		t.Errorf("Expected name 'urgent', got '%s'", tag.Name)
	}
}
