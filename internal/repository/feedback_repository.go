package repository

import (
	"context"

	"gorm.io/gorm"

	"feedbackhub/internal/model"
)

// FeedbackRepository defines feedback persistence operations.
type FeedbackRepository interface {
	Create(ctx context.Context, post *model.Feedback) error
	Update(ctx context.Context, post *model.Feedback) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Feedback, error)
	ListByOwner(ctx context.Context, username string) ([]model.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new feedback repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Create inserts a post and fills in its id.
func (r *feedbackRepository) Create(ctx context.Context, post *model.Feedback) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update writes title and content only; the owner column is never touched.
func (r *feedbackRepository) Update(ctx context.Context, post *model.Feedback) error {
	res := r.db.WithContext(ctx).
		Model(&model.Feedback{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"title":   post.Title,
			"content": post.Content,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a post by id.
func (r *feedbackRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Feedback{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds a post by id.
func (r *feedbackRepository) FindByID(ctx context.Context, id uint) (*model.Feedback, error) {
	var post model.Feedback
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListByOwner returns the posts of one user in creation order.
func (r *feedbackRepository) ListByOwner(ctx context.Context, username string) ([]model.Feedback, error) {
	posts := []model.Feedback{}
	if err := r.db.WithContext(ctx).Where("username = ?", username).Order("id").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
