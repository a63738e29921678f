package services

import (
	"errors"
	"time"

	"todo-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

var ErrInvalidStatus = errors.New("invalid task status")

// TaskPatch carries the fields of a partial update. Nil fields are left
// untouched. The creation timestamp and the owner are not patchable and so
// have no place here.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *string
}

// TaskService is the ownership-scoped store interface for tasks. Every read
// and write takes the requesting principal; a task owned by someone else is
// reported as gorm.ErrRecordNotFound, exactly like a task that does not
// exist. No method bypasses the scoping.
type TaskService interface {
	CreateTask(db *gorm.DB, task models.Task) (models.Task, error)
	GetTask(db *gorm.DB, owner, id uuid.UUID) (models.Task, error)
	ListTasks(db *gorm.DB, owner uuid.UUID, sortBy, order string) ([]models.Task, error)
	ReplaceTask(db *gorm.DB, owner, id uuid.UUID, updated models.Task) (models.Task, error)
	PatchTask(db *gorm.DB, owner, id uuid.UUID, patch TaskPatch) (models.Task, error)
	DeleteTask(db *gorm.DB, owner, id uuid.UUID) error
	AttachTag(db *gorm.DB, owner, taskID, tagID uuid.UUID) (models.Task, error)
	DetachTag(db *gorm.DB, owner, taskID, tagID uuid.UUID) (models.Task, error)
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

func ownedTask(db *gorm.DB, owner, id uuid.UUID) (models.Task, error) {
	var task models.Task
	err := db.Preload("User").Preload("Tags").
		Where("id = ? AND user_id = ?", id, owner).
		First(&task).Error
	return task, err
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, task models.Task) (models.Task, error) {
	if task.UserID == uuid.Nil {
		return models.Task{}, models.ErrNoOwner
	}
	if !models.ValidStatus(task.Status) {
		return models.Task{}, ErrInvalidStatus
	}
	if task.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return models.Task{}, err
		}
		task.ID = id
	}
	if task.Timestamp.IsZero() {
		task.Timestamp = time.Now().UTC()
	}

	if err := db.Create(&task).Error; err != nil {
		return models.Task{}, err
	}
	return ownedTask(db, task.UserID, task.ID)
}

func (s *TaskServiceImpl) GetTask(db *gorm.DB, owner, id uuid.UUID) (models.Task, error) {
	return ownedTask(db, owner, id)
}

var taskSortColumns = map[string]string{
	"timestamp": "timestamp",
	"title":     "title",
	"due_date":  "due_date",
	"status":    "status",
}

// normalizeSort collapses client-supplied sort parameters onto the allowlist.
// Both the query and the cache keys derived from these parameters must use
// the normalized form, or a list cached under an unrecognized spelling would
// never be invalidated.
func normalizeSort(sortBy, order string) (string, string) {
	column, ok := taskSortColumns[sortBy]
	if !ok {
		column = "timestamp"
	}
	if order != "asc" {
		order = "desc"
	}
	return column, order
}

func (s *TaskServiceImpl) ListTasks(db *gorm.DB, owner uuid.UUID, sortBy, order string) ([]models.Task, error) {
	column, order := normalizeSort(sortBy, order)

	var tasks []models.Task
	err := db.Preload("User").Preload("Tags").
		Where("user_id = ?", owner).
		Order(column + " " + order).
		Find(&tasks).Error
	return tasks, err
}

func (s *TaskServiceImpl) ReplaceTask(db *gorm.DB, owner, id uuid.UUID, updated models.Task) (models.Task, error) {
	if !models.ValidStatus(updated.Status) {
		return models.Task{}, ErrInvalidStatus
	}

	task, err := ownedTask(db, owner, id)
	if err != nil {
		return models.Task{}, err
	}

	// Full replace: every writable field takes the supplied value. Owner and
	// creation timestamp are not writable and keep their stored values.
	task.Title = updated.Title
	task.Description = updated.Description
	task.DueDate = updated.DueDate
	task.Status = updated.Status

	if err := db.Save(&task).Error; err != nil {
		return models.Task{}, err
	}
	return ownedTask(db, owner, id)
}

func (s *TaskServiceImpl) PatchTask(db *gorm.DB, owner, id uuid.UUID, patch TaskPatch) (models.Task, error) {
	if patch.Status != nil && !models.ValidStatus(*patch.Status) {
		return models.Task{}, ErrInvalidStatus
	}

	task, err := ownedTask(db, owner, id)
	if err != nil {
		return models.Task{}, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}

	if err := db.Save(&task).Error; err != nil {
		return models.Task{}, err
	}
	return ownedTask(db, owner, id)
}

func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, owner, id uuid.UUID) error {
	task, err := ownedTask(db, owner, id)
	if err != nil {
		return err
	}

	// Clear the association rows first; the join table has no cascade.
	if err := db.Model(&task).Association("Tags").Clear(); err != nil {
		return err
	}
	return db.Delete(&task).Error
}

func (s *TaskServiceImpl) AttachTag(db *gorm.DB, owner, taskID, tagID uuid.UUID) (models.Task, error) {
	task, err := ownedTask(db, owner, taskID)
	if err != nil {
		return models.Task{}, err
	}

	var tag models.Tag
	if err := db.First(&tag, "id = ?", tagID).Error; err != nil {
		return models.Task{}, err
	}

	if err := db.Model(&task).Association("Tags").Append(&tag); err != nil {
		return models.Task{}, err
	}
	return ownedTask(db, owner, taskID)
}

func (s *TaskServiceImpl) DetachTag(db *gorm.DB, owner, taskID, tagID uuid.UUID) (models.Task, error) {
	task, err := ownedTask(db, owner, taskID)
	if err != nil {
		return models.Task{}, err
	}

	var tag models.Tag
	if err := db.First(&tag, "id = ?", tagID).Error; err != nil {
		return models.Task{}, err
	}

	if err := db.Model(&task).Association("Tags").Delete(&tag); err != nil {
		return models.Task{}, err
	}
	return ownedTask(db, owner, taskID)
}
