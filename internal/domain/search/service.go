package search

import (
	"context"
	"sort"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/review"
)

// RankedBook 带相关度得分与评分汇总的检索结果
type RankedBook struct {
	*book.Book
	Score         int      `json:"score"`
	AverageRating *float64 `json:"averageRating"`
	ReviewCount   int64    `json:"reviewCount"`
}

// Service 智能检索领域服务
// 设计说明:
// 1. 全量加载后在内存打分——馆藏规模在万册级,换取打分逻辑不依赖数据库方言
// 2. 排序用 sort.SliceStable: 同分时保持仓储返回的 id 升序,结果可复现
type Service struct {
	bookRepo   book.Repository
	reviewRepo review.Repository
}

func NewService(bookRepo book.Repository, reviewRepo review.Repository) *Service {
	return &Service{
		bookRepo:   bookRepo,
		reviewRepo: reviewRepo,
	}
}

// Search 按相关度检索图书
// 业务规则:
// 1. 检索词归一化后为空 → 返回空集
// 2. 只保留得分>0的书,按得分降序,同分按id升序(稳定排序保证)
// 3. 截断到前20条,并为每条补充评分汇总
func (s *Service) Search(ctx context.Context, query string) ([]*RankedBook, error) {
	terms := NormalizeTerms(query)
	if len(terms) == 0 {
		return []*RankedBook{}, nil
	}

	books, err := s.bookRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]*RankedBook, 0, len(books))
	for _, b := range books {
		score := ScoreBook(b, terms)
		if score > 0 {
			ranked = append(ranked, &RankedBook{Book: b, Score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}

	// 只为最终返回的前20条查评分汇总,避免对全部命中做聚合
	for _, r := range ranked {
		summary, err := s.reviewRepo.AggregateByBook(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		r.AverageRating = summary.Average
		r.ReviewCount = summary.Count
	}

	return ranked, nil
}
