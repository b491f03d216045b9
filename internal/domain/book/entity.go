package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是馆藏聚合的根实体,一条记录代表一种书,副本数由两个计数器维护
// 2. 核心不变量: 0 <= AvailableCopies <= TotalCopies 在任何时刻都成立
//    借出时-1,归还时+1,两侧都由仓储层的原子更新语句守护
// 3. Tags为逗号分隔的自由文本,参与关键词检索
type Book struct {
	ID              uint
	Title           string // 书名(必填)
	Author          string // 作者(必填)
	ISBN            string // ISBN号(可选,不要求唯一,同一种书可能多次编目)
	Publisher       string // 出版社(可选)
	PublishedYear   int    // 出版年份(可选)
	Category        string // 分类(可选)
	Description     string // 图书简介(可选)
	CoverImage      string // 封面图片URL(可选)
	TotalCopies     int    // 馆藏副本总数(>=1)
	AvailableCopies int    // 当前可借副本数(0..TotalCopies)
	Tags            string // 标签,逗号分隔
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新图书(工厂方法)
// 新编目图书的可借副本数等于总副本数
func NewBook(title, author, isbn, publisher string, publishedYear int, category, description, coverImage string, totalCopies int, tags string) *Book {
	now := time.Now()
	return &Book{
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		Publisher:       publisher,
		PublishedYear:   publishedYear,
		Category:        category,
		Description:     description,
		CoverImage:      coverImage,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
		Tags:            tags,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsAvailable 是否有可借副本
func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}

// UpdateInfo 更新图书基本信息(空值跳过)
func (b *Book) UpdateInfo(title, author, isbn, publisher string, publishedYear int, category, description, coverImage, tags string) {
	if title != "" {
		b.Title = title
	}
	if author != "" {
		b.Author = author
	}
	if isbn != "" {
		b.ISBN = isbn
	}
	if publisher != "" {
		b.Publisher = publisher
	}
	if publishedYear != 0 {
		b.PublishedYear = publishedYear
	}
	if category != "" {
		b.Category = category
	}
	if description != "" {
		b.Description = description
	}
	if coverImage != "" {
		b.CoverImage = coverImage
	}
	if tags != "" {
		b.Tags = tags
	}
	b.UpdatedAt = time.Now()
}

// AdjustTotalCopies 调整馆藏副本总数(领域行为)
// 业务规则:
// 1. 新总数必须>=1
// 2. 可借副本数同步偏移相同差值(馆藏+2则可借+2)
// 3. 偏移后可借数下限为0: 减少馆藏不会把在借的副本"收回"
func (b *Book) AdjustTotalCopies(newTotal int) error {
	if newTotal < 1 {
		return ErrInvalidCopies
	}

	diff := newTotal - b.TotalCopies
	b.TotalCopies = newTotal
	b.AvailableCopies += diff
	if b.AvailableCopies < 0 {
		b.AvailableCopies = 0
	}
	if b.AvailableCopies > b.TotalCopies {
		b.AvailableCopies = b.TotalCopies
	}
	b.UpdatedAt = time.Now()
	return nil
}
