package review

import (
	"context"

	"github.com/xiebiao/library/internal/domain/user"
)

// Service 评价领域服务接口
// 设计说明:
// 1. 提交即"新增或覆盖":同一用户对同一本书只保留一条评价
// 2. 图书存在性校验需要图书聚合,放在应用层用例中
type Service interface {
	// Submit 提交评价(已有则覆盖评分/评语)
	Submit(ctx context.Context, bookID, userID uint, rating int, comment string) (*Review, error)

	// ListByBook 某书的全部评价,按时间降序
	ListByBook(ctx context.Context, bookID uint) ([]*BookReview, error)

	// Delete 删除评价
	// 业务规则: 只有作者本人或admin可以删除
	Delete(ctx context.Context, id uint, requesterID uint, requesterRole user.Role) error
}

type service struct {
	repo Repository
}

// NewService 创建评价领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Submit 提交评价
func (s *service) Submit(ctx context.Context, bookID, userID uint, rating int, comment string) (*Review, error) {
	// 1. 评分校验
	if !IsValidRating(rating) {
		return nil, ErrInvalidRating
	}

	// 2. 已有评价则覆盖
	existing, err := s.repo.FindByBookAndUser(ctx, bookID, userID)
	if err == nil {
		existing.Revise(rating, comment)
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if err != ErrReviewNotFound {
		return nil, err
	}

	// 3. 否则新建
	r := NewReview(bookID, userID, rating, comment)
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

// ListByBook 某书的全部评价
func (s *service) ListByBook(ctx context.Context, bookID uint) ([]*BookReview, error) {
	return s.repo.ListByBook(ctx, bookID)
}

// Delete 删除评价
func (s *service) Delete(ctx context.Context, id uint, requesterID uint, requesterRole user.Role) error {
	// 1. 查询评价
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// 2. 权限检查: 作者本人或admin
	if r.UserID != requesterID && requesterRole != user.RoleAdmin {
		return ErrDeleteForbidden
	}

	// 3. 执行删除
	return s.repo.Delete(ctx, id)
}
