package dto

// SmartSearchRequest HTTP智能检索请求
type SmartSearchRequest struct {
	Query string `form:"q" binding:"required,max=200" example:"space robot"`
}

// SuggestCategoryRequest HTTP分类建议请求
type SuggestCategoryRequest struct {
	Title       string `json:"title" binding:"required,max=200" example:"Dune"`
	Author      string `json:"author" binding:"omitempty,max=100" example:"Frank Herbert"`
	Description string `json:"description" binding:"omitempty,max=5000" example:"A story of a desert planet in the far future"`
}
