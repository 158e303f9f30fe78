package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ResetCodePrefix     = "reset_password"
	DefaultResetCodeTTL = 15 * time.Minute
)

var (
	ErrResetCodeSaveFailed = errors.New("reset code save failed")
	ErrResetCodeNotFound   = errors.New("reset code not found")
)

// ResetCodeRepository 重置密码码，value 为用户 id，过期即失效
type ResetCodeRepository struct {
	rdb *redis.Client
}

func NewResetCodeRepository(rdb *redis.Client) *ResetCodeRepository {
	return &ResetCodeRepository{rdb: rdb}
}

func (r *ResetCodeRepository) key(code string) string {
	return fmt.Sprintf("%s:%s", ResetCodePrefix, code)
}

func (r *ResetCodeRepository) Save(ctx context.Context, code string, userID uint64, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultResetCodeTTL
	}
	if err := r.rdb.Set(ctx, r.key(code), userID, ttl).Err(); err != nil {
		return ErrResetCodeSaveFailed
	}
	return nil
}

// Consume 一次性取出并删除，防止重放
func (r *ResetCodeRepository) Consume(ctx context.Context, code string) (uint64, error) {
	val, err := r.rdb.GetDel(ctx, r.key(code)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrResetCodeNotFound
	}
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrResetCodeNotFound
	}
	return userID, nil
}
