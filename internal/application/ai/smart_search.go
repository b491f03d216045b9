// Package ai 智能功能用例:相关度检索、个性化推荐、分类建议
// 三个功能都是确定性启发式实现,不调用外部模型服务
package ai

import (
	"context"

	"github.com/xiebiao/library/internal/domain/search"
)

// SmartSearchUseCase 智能检索用例
type SmartSearchUseCase struct {
	searchService *search.Service
}

// NewSmartSearchUseCase 创建智能检索用例
func NewSmartSearchUseCase(searchService *search.Service) *SmartSearchUseCase {
	return &SmartSearchUseCase{searchService: searchService}
}

// SearchResult 检索结果项
type SearchResult struct {
	ID              uint     `json:"id"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	CoverImage      string   `json:"cover_image"`
	AvailableCopies int      `json:"available_copies"`
	TotalCopies     int      `json:"total_copies"`
	Score           int      `json:"score"`
	AverageRating   *float64 `json:"average_rating"`
	ReviewCount     int64    `json:"review_count"`
}

// Execute 执行检索
func (uc *SmartSearchUseCase) Execute(ctx context.Context, query string) ([]*SearchResult, error) {
	ranked, err := uc.searchService.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	results := make([]*SearchResult, len(ranked))
	for i, r := range ranked {
		results[i] = &SearchResult{
			ID:              r.ID,
			Title:           r.Title,
			Author:          r.Author,
			Category:        r.Category,
			Description:     r.Description,
			CoverImage:      r.CoverImage,
			AvailableCopies: r.AvailableCopies,
			TotalCopies:     r.TotalCopies,
			Score:           r.Score,
			AverageRating:   r.AverageRating,
			ReviewCount:     r.ReviewCount,
		}
	}
	return results, nil
}
