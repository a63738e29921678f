package handlers

import (
	"time"

	"todo-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
)

// Wire representation of a task. The nested user summary, the creation
// timestamp and the tag list are read-only: write payloads carry none of
// these fields and anything a client submits for them is dropped on decode.

type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type TagResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type TaskResponse struct {
	ID          uuid.UUID     `json:"id"`
	User        UserSummary   `json:"user"`
	Timestamp   time.Time     `json:"timestamp"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	DueDate     *time.Time    `json:"due_date"`
	Tags        []TagResponse `json:"tags"`
	Status      string        `json:"status"`
}

func newTagResponses(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, TagResponse{ID: tag.ID, Name: tag.Name})
	}
	return out
}

func newTaskResponse(task models.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		User:        UserSummary{ID: task.UserID, Username: task.User.Username},
		Timestamp:   task.Timestamp,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Tags:        newTagResponses(task.Tags),
		Status:      task.Status,
	}
}

func newTaskResponses(tasks []models.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, newTaskResponse(task))
	}
	return out
}
