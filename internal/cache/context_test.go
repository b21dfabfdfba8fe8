package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal/internal/domain"
)

type countingLoader struct {
	calls int
	err   error
}

func (l *countingLoader) LoadAcademicContext(_ context.Context, studentID int) (*domain.AcademicContext, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	sched := "Sun Tue 10:00-11:30"
	return &domain.AcademicContext{
		StudentID:         studentID,
		TermID:            3,
		Completed:         []domain.CompletedCourse{{CourseCode: "101", Credits: 3}},
		Registered:        []domain.RegisteredCourse{{SectionID: 8, CourseCode: "201", Schedule: &sched, Credits: 3}},
		PassedCredits:     3,
		RegisteredCredits: 3,
	}, nil
}

func newCache(t *testing.T, loader *countingLoader) (*ContextCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewContextCache(client, loader, time.Minute, zerolog.Nop()), mr
}

func TestContextCacheHitAndRefresh(t *testing.T) {
	loader := &countingLoader{}
	c, mr := newCache(t, loader)
	ctx := context.Background()

	first, err := c.LoadAcademicContext(ctx, 5)
	require.NoError(t, err)
	assert.True(t, mr.Exists(key(5)))

	second, err := c.LoadAcademicContext(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, loader.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, "Sun Tue 10:00-11:30", *second.Registered[0].Schedule)

	require.NoError(t, c.Refresh(ctx, 5))
	_, err = c.LoadAcademicContext(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, loader.calls)
}

func TestContextCacheExpires(t *testing.T) {
	loader := &countingLoader{}
	c, mr := newCache(t, loader)
	ctx := context.Background()

	_, err := c.LoadAcademicContext(ctx, 1)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)

	_, err = c.LoadAcademicContext(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, loader.calls)
}

func TestContextCacheSourceErrorNotCached(t *testing.T) {
	boom := errors.New("store unreachable")
	loader := &countingLoader{err: boom}
	c, mr := newCache(t, loader)

	_, err := c.LoadAcademicContext(context.Background(), 1)
	assert.Equal(t, boom, err)
	assert.False(t, mr.Exists(key(1)))
}

func TestContextCacheFallsBackWhenRedisDown(t *testing.T) {
	loader := &countingLoader{}
	c, mr := newCache(t, loader)
	mr.Close()

	ac, err := c.LoadAcademicContext(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 4, ac.StudentID)
	assert.Equal(t, 1, loader.calls)
}
