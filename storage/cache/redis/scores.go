package rediscache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
	"github.com/Swapnil27012000/uomdcs-sub003/core/udrf"
)

const keyPrefix = "udrf:score:"

// ScoreCache keeps auto section scores in redis, as a JSON array, for a limited time.
type ScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ udrf.ScoreCache = (*ScoreCache)(nil) // interface compliance check

func NewClient(conf *core.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
}

func NewScoreCache(client *redis.Client, ttl time.Duration) *ScoreCache {
	return &ScoreCache{client: client, ttl: ttl}
}

func key(deptID int, year string) string {
	return keyPrefix + strconv.Itoa(deptID) + ":" + year
}

func (c *ScoreCache) Get(ctx context.Context, deptID int, year string) ([udrf.SectionCount]float64, bool, error) {
	var scores [udrf.SectionCount]float64

	data, err := c.client.Get(ctx, key(deptID, year)).Bytes()
	if err == redis.Nil {
		return scores, false, nil
	}
	if err != nil {
		return scores, false, errors.Wrap(err, "getting cached scores")
	}
	scores, ok := decodeScores(data)
	return scores, ok, nil
}

// decodeScores reports ok == false for unreadable entries and for scores outside [0, section max].
// Such entries are misses; the next Set overwrites them.
func decodeScores(data []byte) ([udrf.SectionCount]float64, bool) {
	var scores [udrf.SectionCount]float64
	if err := json.Unmarshal(data, &scores); err != nil {
		return [udrf.SectionCount]float64{}, false
	}
	for _, id := range udrf.Sections {
		if v := scores[id.Index()]; !(v >= 0 && v <= id.Max()) {
			return [udrf.SectionCount]float64{}, false
		}
	}
	return scores, true
}

func (c *ScoreCache) Set(ctx context.Context, deptID int, year string, scores [udrf.SectionCount]float64) error {
	data, err := json.Marshal(scores)
	if err != nil {
		return errors.Wrap(err, "encoding scores")
	}
	if err = c.client.Set(ctx, key(deptID, year), data, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "caching scores")
	}
	return nil
}

func (c *ScoreCache) Invalidate(ctx context.Context, deptID int, year string) error {
	if err := c.client.Del(ctx, key(deptID, year)).Err(); err != nil {
		return errors.Wrap(err, "invalidating cached scores")
	}
	return nil
}

// HealthCheck pings redis.
func (c *ScoreCache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
