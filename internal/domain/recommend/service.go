package recommend

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/review"
)

// 推荐参数
// 设计说明: 评分>=4视为"喜欢";推荐不足5条时用热门书补齐到10条
const (
	minFavoriteRating  = 4
	maxRecommendations = 10
	backfillThreshold  = 5
)

// RecommendedBook 带评分汇总的推荐结果
type RecommendedBook struct {
	*book.Book
	Reason        string   `json:"reason"`
	AverageRating *float64 `json:"averageRating"`
	ReviewCount   int64    `json:"reviewCount"`
}

// 推荐来源
const (
	ReasonTaste   = "based_on_your_ratings" // 来自用户高分评价的品味画像
	ReasonPopular = "popular"               // 热门补齐
)

// Service 个性化推荐领域服务
// 两阶段策略:
// 1. 品味匹配: 用户评过>=4分的书 → 提取分类/作者 → 找同类可借的书
// 2. 热门补齐: 阶段1不足5条时,按借阅量、平均评分降序补齐到10条
// 两个阶段都排除用户借过的书,阶段2还排除阶段1已选的书
type Service struct {
	bookRepo   book.Repository
	loanRepo   loan.Repository
	reviewRepo review.Repository
}

func NewService(bookRepo book.Repository, loanRepo loan.Repository, reviewRepo review.Repository) *Service {
	return &Service{
		bookRepo:   bookRepo,
		loanRepo:   loanRepo,
		reviewRepo: reviewRepo,
	}
}

// ForUser 为指定用户生成推荐列表
func (s *Service) ForUser(ctx context.Context, userID uint) ([]*RecommendedBook, error) {
	// 用户借过的书(含已归还)一律不再推荐
	borrowedIDs, err := s.loanRepo.ListBookIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	results := make([]*RecommendedBook, 0, maxRecommendations)
	excluded := make([]uint, 0, len(borrowedIDs)+maxRecommendations)
	excluded = append(excluded, borrowedIDs...)

	// 阶段1: 品味匹配
	tasteBooks, err := s.byTaste(ctx, userID, excluded)
	if err != nil {
		return nil, err
	}
	for _, b := range tasteBooks {
		results = append(results, &RecommendedBook{Book: b, Reason: ReasonTaste})
		excluded = append(excluded, b.ID)
	}

	// 阶段2: 热门补齐
	if len(results) < backfillThreshold {
		popular, err := s.bookRepo.ListPopular(ctx, excluded, maxRecommendations-len(results))
		if err != nil {
			return nil, err
		}
		for _, b := range popular {
			results = append(results, &RecommendedBook{Book: b, Reason: ReasonPopular})
		}
	}

	for _, r := range results {
		summary, err := s.reviewRepo.AggregateByBook(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		r.AverageRating = summary.Average
		r.ReviewCount = summary.Count
	}

	return results, nil
}

// byTaste 依据用户高分评价提取分类/作者画像,返回可借的同类书
func (s *Service) byTaste(ctx context.Context, userID uint, excludeIDs []uint) ([]*book.Book, error) {
	favorites, err := s.reviewRepo.ListByUserMinRating(ctx, userID, minFavoriteRating)
	if err != nil {
		return nil, err
	}
	if len(favorites) == 0 {
		return nil, nil
	}

	bookIDs := make([]uint, 0, len(favorites))
	for _, r := range favorites {
		bookIDs = append(bookIDs, r.BookID)
	}
	favoriteBooks, err := s.bookRepo.FindByIDs(ctx, bookIDs)
	if err != nil {
		return nil, err
	}

	categories, authors := distinctTastes(favoriteBooks)
	if len(categories) == 0 && len(authors) == 0 {
		return nil, nil
	}

	return s.bookRepo.FindAvailableByTaste(ctx, categories, authors, excludeIDs, maxRecommendations)
}

// distinctTastes 去重提取分类与作者,保持首次出现顺序
func distinctTastes(books []*book.Book) (categories, authors []string) {
	seenCat := make(map[string]bool)
	seenAuthor := make(map[string]bool)
	for _, b := range books {
		if b.Category != "" && !seenCat[b.Category] {
			seenCat[b.Category] = true
			categories = append(categories, b.Category)
		}
		if b.Author != "" && !seenAuthor[b.Author] {
			seenAuthor[b.Author] = true
			authors = append(authors, b.Author)
		}
	}
	return categories, authors
}
