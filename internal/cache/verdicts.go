package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smsflt/sms-filter/internal/model"
)

type RedisOpts struct {
	Addr        string        // "127.0.0.1:6379"
	Password    string        // optional
	DB          int           // default 0
	DialTimeout time.Duration // default 5s
}

// Dial connects to redis and verifies the connection with a ping.
func Dial(opts RedisOpts) (*redis.Client, error) {
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 5 * time.Second
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
	})
	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return rdb, nil
}

// Verdicts caches classification results keyed by a digest of the
// lowercased message text, so repeated texts skip model inference.
// Record creation is unaffected by cache hits.
type Verdicts struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewVerdicts(rdb *redis.Client, ttl time.Duration) *Verdicts {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Verdicts{rdb: rdb, ttl: ttl}
}

func key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "clf:" + hex.EncodeToString(sum[:])
}

// Get returns the cached status for text, or ("", false) on miss.
// Redis errors are treated as misses; the caller falls through to the model.
func (v *Verdicts) Get(ctx context.Context, text string) (model.Status, bool) {
	val, err := v.rdb.Get(ctx, key(text)).Result()
	if err != nil {
		return "", false
	}
	st := model.Status(val)
	if !st.Valid() {
		return "", false
	}
	return st, true
}

func (v *Verdicts) Set(ctx context.Context, text string, st model.Status) {
	_ = v.rdb.Set(ctx, key(text), st.String(), v.ttl).Err()
}
