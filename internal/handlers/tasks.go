package handlers

import (
	"errors"
	"net/http"
	"time"

	"todo-tracker/backend/internal/models"
	"todo-tracker/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService}
}

// currentUserID resolves the authenticated principal set by the authz
// middleware. Every task operation is scoped to this id; there is no way to
// address another principal's tasks.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid user ID format"})
		return uuid.Nil, false
	}
	return userID, true
}

// taskInput is the write payload for create and full update. It has no
// timestamp, user or tags field: clients cannot write those, and any such
// keys in the request body are dropped on decode.
type taskInput struct {
	Title       string     `json:"title" binding:"required,max=100"`
	Description string     `json:"description" binding:"required,max=1000"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status" binding:"omitempty,oneof=OPEN WORKING PENDING_REVIEW COMPLETED OVERDUE CANCELLED"`
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}

	sortBy := c.DefaultQuery("sortBy", "timestamp")
	order := c.DefaultQuery("order", "desc")

	tasks, err := h.taskService.ListTasks(h.db, owner, sortBy, order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
		return
	}
	c.JSON(http.StatusOK, newTaskResponses(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}
	id := uuid.FromStringOrNil(c.Param("id"))

	task, err := h.taskService.GetTask(h.db, owner, id)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}

	var input taskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorBody(err))
		return
	}

	task, err := models.NewTask(owner, input.Title, input.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build task"})
		return
	}
	task.DueDate = input.DueDate
	if input.Status != "" {
		task.Status = input.Status
	}

	created, err := h.taskService.CreateTask(h.db, task)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskResponse(created))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}
	id := uuid.FromStringOrNil(c.Param("id"))

	var input taskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorBody(err))
		return
	}

	// Full replace: an absent status resets to the default, an absent
	// due_date clears it.
	if input.Status == "" {
		input.Status = models.StatusOpen
	}
	updated := models.Task{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      input.Status,
	}

	task, err := h.taskService.ReplaceTask(h.db, owner, id, updated)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *TaskHandler) PatchTask(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}
	id := uuid.FromStringOrNil(c.Param("id"))

	var input struct {
		Title       *string    `json:"title" binding:"omitempty,max=100"`
		Description *string    `json:"description" binding:"omitempty,max=1000"`
		DueDate     *time.Time `json:"due_date"`
		Status      *string    `json:"status" binding:"omitempty,oneof=OPEN WORKING PENDING_REVIEW COMPLETED OVERDUE CANCELLED"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorBody(err))
		return
	}

	patch := services.TaskPatch{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      input.Status,
	}

	task, err := h.taskService.PatchTask(h.db, owner, id, patch)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}
	id := uuid.FromStringOrNil(c.Param("id"))

	if err := h.taskService.DeleteTask(h.db, owner, id); err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (h *TaskHandler) AttachTag(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID := uuid.FromStringOrNil(c.Param("id"))
	tagID := uuid.FromStringOrNil(c.Param("tagID"))

	task, err := h.taskService.AttachTag(h.db, owner, taskID, tagID)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *TaskHandler) DetachTag(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID := uuid.FromStringOrNil(c.Param("id"))
	tagID := uuid.FromStringOrNil(c.Param("tagID"))

	task, err := h.taskService.DetachTag(h.db, owner, taskID, tagID)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func handleTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Foreign-owned and nonexistent tasks answer identically.
		c.JSON(http.StatusNotFound, gin.H{
			"error": "task not found",
		})
	case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, models.ErrNoOwner):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to process task request",
		})
	}
}
