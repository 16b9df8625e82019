package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"adaptlearn-service/internal/apperr"
	"adaptlearn-service/internal/models"
	"adaptlearn-service/internal/repository"
)

type PathService struct {
	Repo        *repository.PathRepository
	ContentRepo *repository.ContentRepository
}

func NewPathService(repo *repository.PathRepository, contentRepo *repository.ContentRepository) *PathService {
	return &PathService{Repo: repo, ContentRepo: contentRepo}
}

type CreatePathInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description,omitempty"`
	FocusSkills []string `json:"focus_skills,omitempty"`
	ContentIDs  []string `json:"content_ids,omitempty"`
}

// PathWithContent is a path listing joined with its ordered content.
type PathWithContent struct {
	Path    models.LearningPath   `json:"path"`
	Content []models.ContentPiece `json:"content"`
}

// CreatePath stores a learning path and its ordered content items.
// Every referenced content piece must exist.
func (s *PathService) CreatePath(ctx context.Context, userID string, input CreatePathInput) (*models.LearningPath, error) {
	for _, contentID := range input.ContentIDs {
		piece, err := s.ContentRepo.FindByID(ctx, contentID)
		if err != nil {
			return nil, apperr.Persistencef("load content %s", contentID)
		}
		if piece == nil {
			return nil, apperr.NotFoundf("content %s", contentID)
		}
	}

	path := &models.LearningPath{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		FocusSkills: strings.Join(input.FocusSkills, ","),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, path); err != nil {
		return nil, apperr.Persistencef("store path")
	}

	for i, contentID := range input.ContentIDs {
		item := &models.LearningPathItem{
			PathID:    path.ID,
			ContentID: contentID,
			Position:  i,
		}
		if err := s.Repo.UpsertItem(ctx, item); err != nil {
			return nil, apperr.Persistencef("store path item %d", i)
		}
	}
	return path, nil
}

func (s *PathService) UserPaths(ctx context.Context, userID string) ([]models.LearningPath, error) {
	return s.Repo.FindByUser(ctx, userID)
}

// GetPath returns a path the user owns with its content in position
// order.
func (s *PathService) GetPath(ctx context.Context, userID, pathID string) (*PathWithContent, error) {
	path, err := s.Repo.FindByID(ctx, pathID)
	if err != nil {
		return nil, err
	}
	if path == nil || path.UserID != userID {
		return nil, apperr.NotFoundf("path %s", pathID)
	}

	items, err := s.Repo.FindItems(ctx, pathID)
	if err != nil {
		return nil, err
	}
	content := make([]models.ContentPiece, 0, len(items))
	for _, item := range items {
		piece, err := s.ContentRepo.FindByID(ctx, item.ContentID)
		if err != nil {
			return nil, err
		}
		if piece != nil {
			content = append(content, *piece)
		}
	}
	return &PathWithContent{Path: *path, Content: content}, nil
}
