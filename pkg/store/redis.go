package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/ghostleg/pkg/round"
)

// Redis key layout.
const (
	redisKeyPrefix = "ghostleg:round:"
	redisIndexKey  = "ghostleg:rounds"
)

// RedisOptions configure the connection of a [RedisStore].
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore keeps each round as a JSON value under ghostleg:round:<id> and
// indexes IDs in the sorted set ghostleg:rounds, scored by creation time in
// milliseconds.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and checks the connection.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	err := ping(ctx, pingAttempts, pingDelay, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		client.Close()
		return nil, storeErr(err, "connect to redis at %s", opts.Addr)
	}
	return &RedisStore{client: client}, nil
}

func redisRoundKey(id string) string { return redisKeyPrefix + id }

// redisRange returns the ZREVRANGE stop index for limit.
func redisRange(limit int) int64 {
	if limit <= 0 {
		return -1
	}
	return int64(limit - 1)
}

func (s *RedisStore) Get(ctx context.Context, id string) (r *round.Round, err error) {
	defer func() { observeLoad(ctx, "redis", id, err) }()
	if err := checkID(id); err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, redisRoundKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, storeErr(err, "get round %s", id)
	}
	return decodeRound(id, data)
}

func decodeRound(id string, data []byte) (*round.Round, error) {
	var r round.Round
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, storeErr(err, "parse round %s", id)
	}
	return loaded(id, &r)
}

func (s *RedisStore) Put(ctx context.Context, r *round.Round) (err error) {
	defer func() { observeSave(ctx, "redis", r.ID, err) }()
	if err := checkID(r.ID); err != nil {
		return err
	}

	data, err := json.Marshal(r)
	if err != nil {
		return storeErr(err, "marshal round")
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisRoundKey(r.ID), data, 0)
		pipe.ZAdd(ctx, redisIndexKey, redis.Z{
			Score:  float64(r.CreatedAt.UnixMilli()),
			Member: r.ID,
		})
		return nil
	})
	if err != nil {
		return storeErr(err, "save round %s", r.ID)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, limit int) ([]Summary, error) {
	ids, err := s.client.ZRevRange(ctx, redisIndexKey, 0, redisRange(limit)).Result()
	if err != nil {
		return nil, storeErr(err, "list rounds")
	}
	out := []Summary{}
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = redisRoundKey(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, storeErr(err, "load rounds")
	}
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			// index entry without a value
			observeLoad(ctx, "redis", ids[i], notFound(ids[i]))
			continue
		}
		r, err := decodeRound(ids[i], []byte(str))
		if err != nil {
			observeLoad(ctx, "redis", ids[i], err)
			continue
		}
		out = append(out, Summarize(r))
	}
	return out, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) (err error) {
	defer func() { observeDelete(ctx, "redis", id, err) }()
	if err := checkID(id); err != nil {
		return err
	}

	var del *redis.IntCmd
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, redisRoundKey(id))
		pipe.ZRem(ctx, redisIndexKey, id)
		return nil
	})
	if err != nil {
		return storeErr(err, "delete round %s", id)
	}
	if del.Val() == 0 {
		return notFound(id)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
