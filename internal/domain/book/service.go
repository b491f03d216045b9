package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务逻辑和业务规则校验
// 2. 不依赖具体的Repository实现(依赖倒置)
// 3. 删除图书前的"无在借副本"校验需要借阅聚合参与,放在应用层用例中
type Service interface {
	// AddBook 新书编目
	// 业务规则:
	// - 书名、作者必填
	// - 副本总数>=1,可借副本数初始化为总数
	AddBook(ctx context.Context, title, author, isbn, publisher string, publishedYear int, category, description, coverImage string, totalCopies int, tags string) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 更新图书信息
	// 业务规则: totalCopies变化时可借副本数同步偏移(见实体AdjustTotalCopies)
	UpdateBook(ctx context.Context, id uint, title, author, isbn, publisher string, publishedYear int, category, description, coverImage string, totalCopies int, tags string) (*Book, error)

	// RemoveBook 删除图书(调用方需先确认无未归还借阅)
	RemoveBook(ctx context.Context, id uint) error

	// ListBooks 条件查询馆藏列表
	ListBooks(ctx context.Context, filter ListFilter) ([]*Book, error)

	// ListCategories 列出全部分类
	ListCategories(ctx context.Context) ([]string, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddBook 新书编目
func (s *service) AddBook(ctx context.Context, title, author, isbn, publisher string, publishedYear int, category, description, coverImage string, totalCopies int, tags string) (*Book, error) {
	// 1. 必填项校验
	if title == "" {
		return nil, ErrTitleRequired
	}
	if author == "" {
		return nil, ErrAuthorRequired
	}

	// 2. 副本数校验(缺省为1)
	if totalCopies == 0 {
		totalCopies = 1
	}
	if totalCopies < 1 {
		return nil, ErrInvalidCopies
	}

	// 3. 创建图书实体
	b := NewBook(title, author, isbn, publisher, publishedYear, category, description, coverImage, totalCopies, tags)

	// 4. 持久化
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 更新图书信息
func (s *service) UpdateBook(ctx context.Context, id uint, title, author, isbn, publisher string, publishedYear int, category, description, coverImage string, totalCopies int, tags string) (*Book, error) {
	// 1. 查询图书
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 基本信息更新
	b.UpdateInfo(title, author, isbn, publisher, publishedYear, category, description, coverImage, tags)

	// 3. 副本总数调整(0表示不修改)
	if totalCopies != 0 && totalCopies != b.TotalCopies {
		if err := b.AdjustTotalCopies(totalCopies); err != nil {
			return nil, err
		}
	}

	// 4. 持久化
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// RemoveBook 删除图书
func (s *service) RemoveBook(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// ListBooks 条件查询馆藏列表
func (s *service) ListBooks(ctx context.Context, filter ListFilter) ([]*Book, error) {
	return s.repo.List(ctx, filter)
}

// ListCategories 列出全部分类
func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}
