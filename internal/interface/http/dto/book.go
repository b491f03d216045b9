package dto

// CreateBookRequest HTTP编目请求
// validator tag说明:
// - required: 必填字段
// - min/max: 数值范围校验
type CreateBookRequest struct {
	Title         string `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Author        string `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
	ISBN          string `json:"isbn" binding:"omitempty,max=20" example:"9787115428028"`
	Publisher     string `json:"publisher" binding:"omitempty,max=100" example:"人民邮电出版社"`
	PublishedYear int    `json:"published_year" binding:"omitempty,min=1000,max=2100" example:"2017"`
	Category      string `json:"category" binding:"omitempty,max=50" example:"Technology"`
	Description   string `json:"description" binding:"max=5000" example:"一本关于Go语言的实战书籍"`
	CoverImage    string `json:"cover_image" binding:"omitempty,url,max=500" example:"https://example.com/cover.jpg"`
	TotalCopies   int    `json:"total_copies" binding:"omitempty,min=1,max=1000" example:"3"`
	Tags          string `json:"tags" binding:"omitempty,max=500" example:"golang,programming"`
}

// UpdateBookRequest HTTP图书维护请求(零值字段跳过)
type UpdateBookRequest struct {
	Title         string `json:"title" binding:"omitempty,max=200"`
	Author        string `json:"author" binding:"omitempty,max=100"`
	ISBN          string `json:"isbn" binding:"omitempty,max=20"`
	Publisher     string `json:"publisher" binding:"omitempty,max=100"`
	PublishedYear int    `json:"published_year" binding:"omitempty,min=1000,max=2100"`
	Category      string `json:"category" binding:"omitempty,max=50"`
	Description   string `json:"description" binding:"omitempty,max=5000"`
	CoverImage    string `json:"cover_image" binding:"omitempty,url,max=500"`
	TotalCopies   int    `json:"total_copies" binding:"omitempty,min=1,max=1000"`
	Tags          string `json:"tags" binding:"omitempty,max=500"`
}

// ListBooksRequest HTTP馆藏列表请求
type ListBooksRequest struct {
	Search        string `form:"search" binding:"omitempty,max=100" example:"golang"`
	Category      string `form:"category" binding:"omitempty,max=50" example:"Technology"`
	Author        string `form:"author" binding:"omitempty,max=100" example:"肯尼迪"`
	AvailableOnly bool   `form:"available_only" example:"true"`
}
