package lastread

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one hash per viewer whose fields are marker keys.
type RedisStore struct {
	rdb *redis.Client
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func viewerKey(viewerID string) string {
	return "lastread:" + viewerID
}

func (r *RedisStore) Set(ctx context.Context, viewerID, submissionID string, millis int64) error {
	if viewerID == "" {
		return fmt.Errorf("viewer id is required")
	}
	if err := r.rdb.HSet(ctx, viewerKey(viewerID), Key(submissionID), millis).Err(); err != nil {
		return fmt.Errorf("failed to write marker: %w", err)
	}
	return nil
}

func (r *RedisStore) All(ctx context.Context, viewerID string) (map[string]int64, error) {
	fields, err := r.rdb.HGetAll(ctx, viewerKey(viewerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read markers: %w", err)
	}
	out := make(map[string]int64, len(fields))
	for key, raw := range fields {
		id, ok := SubmissionID(key)
		if !ok {
			continue
		}
		// unparsable values count as never read
		millis, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		out[id] = millis
	}
	return out, nil
}
