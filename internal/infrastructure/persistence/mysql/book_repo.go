package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. LockByID/UpdateAvailableCopies通过getDB(ctx)参与借还事务
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindByIDs 批量查找图书(id升序)
func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	if len(ids) == 0 {
		return []*book.Book{}, nil
	}

	var models []BookModel
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "批量查询图书失败")
	}

	return toBookEntities(models), nil
}

// FindAll 返回全部馆藏(id升序)
// 检索评分引擎依赖这个固定顺序做同分稳定排序
func (r *bookRepository) FindAll(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询馆藏失败")
	}

	return toBookEntities(models), nil
}

// List 条件查询馆藏列表,按created_at降序
func (r *bookRepository) List(ctx context.Context, filter book.ListFilter) ([]*book.Book, error) {
	query := r.db.WithContext(ctx).Model(&BookModel{})

	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR author LIKE ? OR description LIKE ?", keyword, keyword, keyword)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Author != "" {
		query = query.Where("author LIKE ?", "%"+filter.Author+"%")
	}
	if filter.AvailableOnly {
		query = query.Where("available_copies > 0")
	}

	var models []BookModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}

	return toBookEntities(models), nil
}

// ListCategories 去重返回所有非空分类,按字母序
func (r *bookRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&BookModel{}).
		Where("category <> ''").
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}
	return categories, nil
}

// Update 更新图书信息
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	model.ID = b.ID

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除图书(软删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// LockByID 悲观锁查询图书(借还事务中锁定副本计数)
// 教学要点:必须使用getDB(ctx)从context获取事务DB,
// 否则SELECT FOR UPDATE不在事务内,锁立即释放
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	db := getDB(ctx, r.db)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}

	return toBookEntity(&model), nil
}

// UpdateAvailableCopies 原子调整可借副本数
// UPDATE books SET available_copies = available_copies + delta
// WHERE id = ? AND available_copies + delta BETWEEN 0 AND total_copies
// 教学要点:条件写进WHERE,由数据库保证不变量,不靠应用层读改写
func (r *bookRepository) UpdateAvailableCopies(ctx context.Context, id uint, delta int) error {
	db := getDB(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("available_copies + ? >= 0", delta).
		Where("available_copies + ? <= total_copies", delta).
		Update("available_copies", gorm.Expr("available_copies + ?", delta))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新可借副本数失败")
	}

	if result.RowsAffected == 0 {
		// 可能是图书不存在,或者调整越界,再查一次确定原因
		var model BookModel
		if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}
		if delta < 0 {
			return book.ErrNoAvailableCopies
		}
		return book.ErrInvalidCopies
	}

	return nil
}

// FindAvailableByTaste 按口味选书(推荐引擎第一阶段)
// 有可借副本,且分类或作者命中画像,排除借过的书,id升序取前limit本
func (r *bookRepository) FindAvailableByTaste(ctx context.Context, categories, authors []string, excludeIDs []uint, limit int) ([]*book.Book, error) {
	if len(categories) == 0 && len(authors) == 0 {
		return []*book.Book{}, nil
	}

	query := r.db.WithContext(ctx).Model(&BookModel{}).
		Where("available_copies > 0")

	// 分类/作者是"或"关系:任一命中即视为符合口味
	switch {
	case len(categories) > 0 && len(authors) > 0:
		query = query.Where("category IN ? OR author IN ?", categories, authors)
	case len(categories) > 0:
		query = query.Where("category IN ?", categories)
	default:
		query = query.Where("author IN ?", authors)
	}

	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	var models []BookModel
	if err := query.Order("id ASC").Limit(limit).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询口味推荐失败")
	}

	return toBookEntities(models), nil
}

// ListPopular 人气榜(推荐引擎第二阶段回填)
// 排序键: 历史借阅次数降序 → 平均评分降序 → id升序
// 教学要点:借阅次数/平均评分用关联子查询算在ORDER BY里,
// 避免为两个排序键维护冗余计数列
func (r *bookRepository) ListPopular(ctx context.Context, excludeIDs []uint, limit int) ([]*book.Book, error) {
	query := r.db.WithContext(ctx).Model(&BookModel{}).
		Where("available_copies > 0")

	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	var models []BookModel
	err := query.
		Order("(SELECT COUNT(*) FROM loans WHERE loans.book_id = books.id) DESC").
		Order("(SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE reviews.book_id = books.id) DESC").
		Order("id ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询人气榜失败")
	}

	return toBookEntities(models), nil
}

// Count 馆藏种数
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookModel{}).Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计馆藏种数失败")
	}
	return total, nil
}

// SumAvailableCopies 全馆可借副本总数
func (r *bookRepository) SumAvailableCopies(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&BookModel{}).
		Select("COALESCE(SUM(available_copies), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计可借副本总数失败")
	}
	return total, nil
}

// CountByCategory 按分类统计馆藏种数,数量降序
func (r *bookRepository) CountByCategory(ctx context.Context) ([]book.CategoryCount, error) {
	var counts []book.CategoryCount
	err := r.db.WithContext(ctx).Model(&BookModel{}).
		Select("category, COUNT(*) AS count").
		Where("category <> ''").
		Group("category").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "按分类统计馆藏失败")
	}
	return counts, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:              model.ID,
		Title:           model.Title,
		Author:          model.Author,
		ISBN:            model.ISBN,
		Publisher:       model.Publisher,
		PublishedYear:   model.PublishedYear,
		Category:        model.Category,
		Description:     model.Description,
		CoverImage:      model.CoverImage,
		TotalCopies:     model.TotalCopies,
		AvailableCopies: model.AvailableCopies,
		Tags:            model.Tags,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}

// toBookModel 领域实体 → GORM模型(不含ID,由调用方按需回填)
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Publisher:       b.Publisher,
		PublishedYear:   b.PublishedYear,
		Category:        b.Category,
		Description:     b.Description,
		CoverImage:      b.CoverImage,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		Tags:            b.Tags,
	}
}
