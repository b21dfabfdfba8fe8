package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"portal/internal/domain"
	"portal/internal/planner"
)

const keyPrefix = "portal:academic-context:"

// ContextCache keeps each student's academic context in redis for one
// planning session so repeated plan requests skip the database. Refresh
// drops the entry after anything that changes the student's enrollments.
type ContextCache struct {
	client *redis.Client
	source planner.ContextLoader
	ttl    time.Duration
	log    zerolog.Logger
}

func NewContextCache(client *redis.Client, source planner.ContextLoader, ttl time.Duration, log zerolog.Logger) *ContextCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ContextCache{
		client: client,
		source: source,
		ttl:    ttl,
		log:    log.With().Str("component", "context_cache").Logger(),
	}
}

// NewRedisClient connects and pings, as the worker services do.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return rdb, nil
}

func key(studentID int) string {
	return fmt.Sprintf("%s%d", keyPrefix, studentID)
}

// LoadAcademicContext serves from redis, falling back to the source. Errors
// from the source are returned as-is; redis failures only cost a cache miss.
func (c *ContextCache) LoadAcademicContext(ctx context.Context, studentID int) (*domain.AcademicContext, error) {
	raw, err := c.client.Get(ctx, key(studentID)).Bytes()
	switch {
	case err == nil:
		var ac domain.AcademicContext
		if jerr := json.Unmarshal(raw, &ac); jerr == nil {
			return &ac, nil
		}
		c.log.Warn().Int("student_id", studentID).Msg("Discarding undecodable cached context")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Int("student_id", studentID).Msg("Context cache read failed")
	}

	ac, err := c.source.LoadAcademicContext(ctx, studentID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(ac)
	if err == nil {
		err = c.client.Set(ctx, key(studentID), data, c.ttl).Err()
	}
	if err != nil {
		c.log.Warn().Err(err).Int("student_id", studentID).Msg("Context cache write failed")
	}

	return ac, nil
}

// Refresh forgets the cached context for a student.
func (c *ContextCache) Refresh(ctx context.Context, studentID int) error {
	return c.client.Del(ctx, key(studentID)).Err()
}
