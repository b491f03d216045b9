package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// CreateBookUseCase 图书编目用例(馆方人员操作)
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建编目用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService}
}

// Execute 执行编目
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.AddBook(ctx,
		req.Title, req.Author, req.ISBN, req.Publisher, req.PublishedYear,
		req.Category, req.Description, req.CoverImage, req.TotalCopies, req.Tags)
	if err != nil {
		return nil, err
	}

	return toBookResponse(b), nil
}

// CreateBookRequest 编目请求
type CreateBookRequest struct {
	Title         string
	Author        string
	ISBN          string
	Publisher     string
	PublishedYear int
	Category      string
	Description   string
	CoverImage    string
	TotalCopies   int
	Tags          string
}

// BookResponse 图书响应DTO
type BookResponse struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Publisher       string `json:"publisher"`
	PublishedYear   int    `json:"published_year"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	CoverImage      string `json:"cover_image"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
	Tags            string `json:"tags"`
	CreatedAt       string `json:"created_at"`
}

// toBookResponse 领域实体 → 应用层DTO
func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:              b.ID,
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
		CreatedAt:       b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
