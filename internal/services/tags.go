package services

import (
	"errors"

	"todo-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

var ErrTagExists = errors.New("tag name already exists")

type TagService interface {
	CreateTag(db *gorm.DB, name string) (models.Tag, error)
	ListTags(db *gorm.DB) ([]models.Tag, error)
	DeleteTag(db *gorm.DB, id uuid.UUID) error
}

type TagServiceImpl struct{}

func NewTagService() *TagServiceImpl {
	return &TagServiceImpl{}
}

// CreateTag relies on the unique index on name rather than a pre-check, so
// concurrent creates of the same name cannot slip past each other; the loser
// gets ErrTagExists.
func (s *TagServiceImpl) CreateTag(db *gorm.DB, name string) (models.Tag, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return models.Tag{}, err
	}

	tag := models.Tag{ID: id, Name: name}
	if err := db.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Tag{}, ErrTagExists
		}
		return models.Tag{}, err
	}
	return tag, nil
}

func (s *TagServiceImpl) ListTags(db *gorm.DB) ([]models.Tag, error) {
	var tags []models.Tag
	err := db.Order("name asc").Find(&tags).Error
	return tags, err
}

// DeleteTag removes the tag and its task associations. Tasks themselves are
// never touched.
func (s *TagServiceImpl) DeleteTag(db *gorm.DB, id uuid.UUID) error {
	var tag models.Tag
	if err := db.First(&tag, "id = ?", id).Error; err != nil {
		return err
	}

	if err := db.Model(&tag).Association("Tasks").Clear(); err != nil {
		return err
	}
	return db.Delete(&tag).Error
}
