package handlers

import (
	"errors"
	"net/http"

	"todo-tracker/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TagHandler struct {
	db         *gorm.DB
	tagService services.TagService
}

func NewTagHandler(db *gorm.DB, tagService services.TagService) *TagHandler {
	return &TagHandler{db: db, tagService: tagService}
}

func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tagService.ListTags(h.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tags"})
		return
	}
	c.JSON(http.StatusOK, newTagResponses(tags))
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required,max=50"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorBody(err))
		return
	}

	tag, err := h.tagService.CreateTag(h.db, input.Name)
	if err != nil {
		if errors.Is(err, services.ErrTagExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "tag name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create tag"})
		return
	}
	c.JSON(http.StatusCreated, TagResponse{ID: tag.ID, Name: tag.Name})
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	id := uuid.FromStringOrNil(c.Param("id"))

	if err := h.tagService.DeleteTag(h.db, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tag not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete tag"})
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
