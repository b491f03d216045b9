package ai

import (
	"context"

	"github.com/xiebiao/library/internal/domain/recommend"
)

// RecommendationsUseCase 个性化推荐用例
type RecommendationsUseCase struct {
	recommendService *recommend.Service
}

// NewRecommendationsUseCase 创建推荐用例
func NewRecommendationsUseCase(recommendService *recommend.Service) *RecommendationsUseCase {
	return &RecommendationsUseCase{recommendService: recommendService}
}

// Recommendation 推荐结果项
type Recommendation struct {
	ID              uint     `json:"id"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	CoverImage      string   `json:"cover_image"`
	AvailableCopies int      `json:"available_copies"`
	Reason          string   `json:"reason"`
	AverageRating   *float64 `json:"average_rating"`
	ReviewCount     int64    `json:"review_count"`
}

// Execute 执行推荐
func (uc *RecommendationsUseCase) Execute(ctx context.Context, userID uint) ([]*Recommendation, error) {
	books, err := uc.recommendService.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	results := make([]*Recommendation, len(books))
	for i, b := range books {
		results[i] = &Recommendation{
			ID:              b.ID,
			Title:           b.Title,
			Author:          b.Author,
			Category:        b.Category,
			Description:     b.Description,
			CoverImage:      b.CoverImage,
			AvailableCopies: b.AvailableCopies,
			Reason:          b.Reason,
			AverageRating:   b.AverageRating,
			ReviewCount:     b.ReviewCount,
		}
	}
	return results, nil
}
