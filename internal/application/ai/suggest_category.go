package ai

import (
	"github.com/xiebiao/library/internal/domain/category"
)

// SuggestCategoryUseCase 分类建议用例(编目辅助)
// 纯函数计算,不访问存储
type SuggestCategoryUseCase struct{}

// NewSuggestCategoryUseCase 创建分类建议用例
func NewSuggestCategoryUseCase() *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{}
}

// Execute 依据书名、作者与简介给出最多3个分类建议
func (uc *SuggestCategoryUseCase) Execute(title, author, description string) []category.Suggestion {
	return category.Suggest(title, author, description)
}
