package dto

// SubmitReviewRequest HTTP提交评价请求
// 同一读者对同一本书重复提交时覆盖原评价
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Comment string `json:"comment" binding:"omitempty,max=2000" example:"非常好的入门书"`
}
