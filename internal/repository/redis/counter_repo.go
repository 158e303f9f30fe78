package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const CounterKeyPrefix = "notifications"

var (
	ErrCounterIncrFailed  = errors.New("counter increment failed")
	ErrCounterReadFailed  = errors.New("counter read failed")
	ErrCounterClearFailed = errors.New("counter clear failed")
)

// CounterRepository 每个收件人一个 hash，field 为社区 id，value 为未读计数。
// Redis 只是易失的旁路索引，丢了自动归零，不影响主库。
type CounterRepository struct {
	rdb *redis.Client
}

func NewCounterRepository(rdb *redis.Client) *CounterRepository {
	return &CounterRepository{rdb: rdb}
}

func (r *CounterRepository) key(recipientID uint64) string {
	return fmt.Sprintf("%s:%d", CounterKeyPrefix, recipientID)
}

// Incr 用 HINCRBY 原子自增，避免并发发送方丢计数
func (r *CounterRepository) Incr(ctx context.Context, recipientID, communityID uint64) error {
	field := strconv.FormatUint(communityID, 10)
	if err := r.rdb.HIncrBy(ctx, r.key(recipientID), field, 1).Err(); err != nil {
		return ErrCounterIncrFailed
	}
	return nil
}

func (r *CounterRepository) GetMany(ctx context.Context, recipientID uint64, communityIDs []uint64) (map[uint64]int64, error) {
	out := make(map[uint64]int64, len(communityIDs))
	if len(communityIDs) == 0 {
		return out, nil
	}
	fields := make([]string, 0, len(communityIDs))
	for _, id := range communityIDs {
		fields = append(fields, strconv.FormatUint(id, 10))
	}
	vals, err := r.rdb.HMGet(ctx, r.key(recipientID), fields...).Result()
	if err != nil {
		return nil, ErrCounterReadFailed
	}
	for i, v := range vals {
		if v == nil {
			out[communityIDs[i]] = 0
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			continue
		}
		out[communityIDs[i]] = n
	}
	return out, nil
}

// Clear 读取通知列表时删除对应 field，读即清零
func (r *CounterRepository) Clear(ctx context.Context, recipientID, communityID uint64) error {
	field := strconv.FormatUint(communityID, 10)
	if err := r.rdb.HDel(ctx, r.key(recipientID), field).Err(); err != nil {
		return ErrCounterClearFailed
	}
	return nil
}
