package dto

// BorrowBookRequest HTTP借书请求
type BorrowBookRequest struct {
	BookID uint `json:"book_id" binding:"required" example:"1"`
}

// ListLoansRequest HTTP借阅列表请求
// status为空表示全部状态
type ListLoansRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=active returned overdue" example:"active"`
	UserID uint   `form:"user_id" binding:"omitempty"` // 馆方人员可按读者过滤
}
