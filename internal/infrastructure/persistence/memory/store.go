// Package memory 提供全部仓储接口的内存实现
// 设计说明:
// 1. 单元测试用:不依赖MySQL即可驱动应用层用例,结果可确定性复现
// 2. 所有仓储共享一个Store,借阅榜/评价联查需要跨聚合数据
// 3. 读写都持锁并返回实体副本,避免测试代码与存储产生别名
package memory

import (
	"context"
	"sync"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/review"
	"github.com/xiebiao/library/internal/domain/user"
)

// Store 内存数据存储
type Store struct {
	mu sync.Mutex

	users   map[uint]*user.User
	books   map[uint]*book.Book
	loans   map[uint]*loan.Loan
	reviews map[uint]*review.Review

	nextUserID   uint
	nextBookID   uint
	nextLoanID   uint
	nextReviewID uint
}

// NewStore 创建内存存储
func NewStore() *Store {
	return &Store{
		users:        make(map[uint]*user.User),
		books:        make(map[uint]*book.Book),
		loans:        make(map[uint]*loan.Loan),
		reviews:      make(map[uint]*review.Review),
		nextUserID:   1,
		nextBookID:   1,
		nextLoanID:   1,
		nextReviewID: 1,
	}
}

// TxManager 内存事务管理器
// 内存实现没有真正的事务,直接执行fn
// (单测关注业务规则本身,原子性由MySQL实现的集成测试覆盖)
type TxManager struct{}

// NewTxManager 创建内存事务管理器
func NewTxManager() *TxManager {
	return &TxManager{}
}

// Transaction 直接执行fn
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
