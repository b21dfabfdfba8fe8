package planner

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"portal/internal/domain"
)

// DefaultTitles names the candidates; their count is the number generated.
var DefaultTitles = []string{"Balanced Choice", "Quick Progress", "Major Focused"}

type Generator struct {
	titles []string

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator drawing from src. A nil src is seeded
// from crypto/rand.
func NewGenerator(titles []string, src rand.Source) *Generator {
	if len(titles) == 0 {
		titles = DefaultTitles
	}
	if src == nil {
		src = rand.NewPCG(cryptoSeed(), cryptoSeed())
	}
	return &Generator{
		titles: titles,
		rng:    rand.New(src),
	}
}

// NewSeededGenerator gives reproducible plans for a fixed seed.
func NewSeededGenerator(titles []string, seed uint64) *Generator {
	return NewGenerator(titles, rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func cryptoSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("planner: reading random seed: %v", err))
	}
	return binary.LittleEndian.Uint64(b[:])
}

type timedSection struct {
	section   domain.OpenSection
	intervals []Interval
}

// GeneratePlans builds up to len(titles) candidates by first-fit over
// independent shuffles of eligible. Candidates that accept nothing are
// omitted. The only error is ctx's.
func (g *Generator) GeneratePlans(ctx context.Context, eligible []domain.OpenSection, creditsToAdd int, busy []Interval) ([]domain.CandidatePlan, error) {
	if len(eligible) == 0 || creditsToAdd <= 0 {
		return nil, ctx.Err()
	}

	pool := make([]timedSection, len(eligible))
	for i, s := range eligible {
		pool[i] = timedSection{section: s, intervals: ParseToIntervals(s.ScheduleText())}
	}

	// Sub-seeds are drawn in order so output only depends on the master seed.
	seeds := make([][2]uint64, len(g.titles))
	g.mu.Lock()
	for i := range seeds {
		seeds[i] = [2]uint64{g.rng.Uint64(), g.rng.Uint64()}
	}
	g.mu.Unlock()

	results := make([]*domain.CandidatePlan, len(g.titles))
	eg, gctx := errgroup.WithContext(ctx)
	for i, title := range g.titles {
		eg.Go(func() error {
			rng := rand.New(rand.NewPCG(seeds[i][0], seeds[i][1]))
			p, err := buildCandidate(gctx, title, pool, creditsToAdd, busy, rng)
			if err != nil {
				return err
			}
			results[i] = p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var plans []domain.CandidatePlan
	for _, p := range results {
		if p != nil {
			plans = append(plans, *p)
		}
	}
	return plans, nil
}

func buildCandidate(ctx context.Context, title string, pool []timedSection, creditsToAdd int, busy []Interval, rng *rand.Rand) (*domain.CandidatePlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	order := make([]timedSection, len(pool))
	copy(order, pool)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	var accepted []domain.OpenSection
	added := 0
	used := make(Set)
	taken := make([]Interval, len(busy))
	copy(taken, busy)

	for _, ts := range order {
		credits := ts.section.Course.Credits
		code := ts.section.Code()
		if added+credits > creditsToAdd {
			continue
		}
		if used.Has(code) {
			continue
		}
		if HasOverlap(ts.intervals, taken) {
			continue
		}
		accepted = append(accepted, ts.section)
		taken = append(taken, ts.intervals...)
		used[code] = struct{}{}
		added += credits
	}

	if len(accepted) == 0 {
		return nil, nil
	}
	return &domain.CandidatePlan{
		ID:           uuid.NewString(),
		Title:        title,
		Sections:     accepted,
		AddedCredits: added,
		Rationale:    fmt.Sprintf("Adds %d credit hours across %d courses without time conflicts.", added, len(accepted)),
	}, nil
}
