package memory

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/user"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// userRepository 用户仓储内存实现
type userRepository struct {
	store *Store
}

// NewUserRepository 创建用户仓储
func NewUserRepository(store *Store) user.Repository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == u.Email {
			return apperrors.ErrEmailDuplicate
		}
	}

	u.ID = r.store.nextUserID
	r.store.nextUserID++
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	clone := *u
	r.store.users[u.ID] = &clone
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.store.users[id]; ok {
			clone := *u
			users = append(users, &clone)
		}
	}
	return users, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[u.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	u.UpdatedAt = time.Now()
	clone := *u
	r.store.users[u.ID] = &clone
	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.users)), nil
}
