package services

import (
	"fmt"
	"time"

	"todo-tracker/backend/internal/cache"
	"todo-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	taskCacheTTL = 30 * time.Minute
	listCacheTTL = 10 * time.Minute
)

// CachedTaskService is a read-through decorator over TaskService. Keys are
// always owner-qualified so the cache can never leak a task across
// principals. A nil cache degrades to the plain service.
type CachedTaskService struct {
	taskService TaskService
	cache       cache.Cache
}

func NewCachedTaskService(taskService TaskService, cacheInstance cache.Cache) *CachedTaskService {
	return &CachedTaskService{
		taskService: taskService,
		cache:       cacheInstance,
	}
}

func taskKey(owner, id uuid.UUID) string {
	return fmt.Sprintf("task:%s:%s", owner.String(), id.String())
}

func listKey(owner uuid.UUID, sortBy, order string) string {
	column, dir := normalizeSort(sortBy, order)
	return fmt.Sprintf("tasks:%s:%s:%s", owner.String(), column, dir)
}

func (s *CachedTaskService) invalidate(owner, id uuid.UUID) {
	if s.cache == nil {
		return
	}

	keys := []string{taskKey(owner, id)}
	for sortBy := range taskSortColumns {
		keys = append(keys, listKey(owner, sortBy, "asc"), listKey(owner, sortBy, "desc"))
	}
	s.cache.Delete(keys...)
}

func (s *CachedTaskService) CreateTask(db *gorm.DB, task models.Task) (models.Task, error) {
	created, err := s.taskService.CreateTask(db, task)
	if err != nil {
		return created, err
	}
	s.invalidate(created.UserID, created.ID)
	return created, nil
}

func (s *CachedTaskService) GetTask(db *gorm.DB, owner, id uuid.UUID) (models.Task, error) {
	if s.cache == nil {
		return s.taskService.GetTask(db, owner, id)
	}

	key := taskKey(owner, id)
	var cached models.Task
	if err := s.cache.Get(key, &cached); err == nil {
		return cached, nil
	}

	task, err := s.taskService.GetTask(db, owner, id)
	if err != nil {
		return task, err
	}

	s.cache.Set(key, task, taskCacheTTL)
	return task, nil
}

func (s *CachedTaskService) ListTasks(db *gorm.DB, owner uuid.UUID, sortBy, order string) ([]models.Task, error) {
	if s.cache == nil {
		return s.taskService.ListTasks(db, owner, sortBy, order)
	}

	key := listKey(owner, sortBy, order)
	var cached []models.Task
	if err := s.cache.Get(key, &cached); err == nil {
		return cached, nil
	}

	tasks, err := s.taskService.ListTasks(db, owner, sortBy, order)
	if err != nil {
		return tasks, err
	}

	s.cache.Set(key, tasks, listCacheTTL)
	return tasks, nil
}

func (s *CachedTaskService) ReplaceTask(db *gorm.DB, owner, id uuid.UUID, updated models.Task) (models.Task, error) {
	task, err := s.taskService.ReplaceTask(db, owner, id, updated)
	if err != nil {
		return task, err
	}
	s.invalidate(owner, id)
	return task, nil
}

func (s *CachedTaskService) PatchTask(db *gorm.DB, owner, id uuid.UUID, patch TaskPatch) (models.Task, error) {
	task, err := s.taskService.PatchTask(db, owner, id, patch)
	if err != nil {
		return task, err
	}
	s.invalidate(owner, id)
	return task, nil
}

func (s *CachedTaskService) DeleteTask(db *gorm.DB, owner, id uuid.UUID) error {
	if err := s.taskService.DeleteTask(db, owner, id); err != nil {
		return err
	}
	s.invalidate(owner, id)
	return nil
}

func (s *CachedTaskService) AttachTag(db *gorm.DB, owner, taskID, tagID uuid.UUID) (models.Task, error) {
	task, err := s.taskService.AttachTag(db, owner, taskID, tagID)
	if err != nil {
		return task, err
	}
	s.invalidate(owner, taskID)
	return task, nil
}

func (s *CachedTaskService) DetachTag(db *gorm.DB, owner, taskID, tagID uuid.UUID) (models.Task, error) {
	task, err := s.taskService.DetachTag(db, owner, taskID, tagID)
	if err != nil {
		return task, err
	}
	s.invalidate(owner, taskID)
	return task, nil
}
