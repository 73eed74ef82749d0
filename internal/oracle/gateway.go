package oracle

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dhruvbhalode/capstone/internal/logger"
	"github.com/dhruvbhalode/capstone/internal/models"
)

// Gateway wraps the knowledge-tracing client behind an availability flag.
// A periodic probe is the only writer of the flag; request handlers only read
// it, so a plain atomic bool is enough. A reader seeing a stale value for up
// to one probe interval is acceptable: every path has a fallback.
//
// The gateway never surfaces the service's failures to its callers. Forward is
// fire-and-forget, Recommend degrades to pool order, Mastery degrades to an
// empty map.
type Gateway struct {
	client    ClientInterface
	interval  time.Duration
	available atomic.Bool
	log       *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewGateway creates a Gateway probing the service every interval.
// The gateway starts Unavailable until the first successful probe.
func NewGateway(client ClientInterface, interval time.Duration) *Gateway {
	return &Gateway{
		client:   client,
		interval: interval,
		log:      logger.Default().WithPrefix("oracle-gateway"),
	}
}

// Start launches the background probe loop. The first probe runs immediately.
func (g *Gateway) Start(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	g.done = make(chan struct{})

	g.log.Info("starting probe loop: interval=%v", g.interval)
	go func() {
		defer close(g.done)

		g.Probe(ctx)
		ticker := time.NewTicker(g.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				g.log.Debug("probe loop stopping")
				return
			case <-ticker.C:
				g.Probe(ctx)
			}
		}
	}()
}

// Stop halts the probe loop and waits for it to exit.
func (g *Gateway) Stop() {
	g.mu.Lock()
	cancel, done := g.cancel, g.done
	g.cancel, g.done = nil, nil
	g.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	g.log.Info("probe loop stopped")
}

// Available reports the last probed state of the service.
func (g *Gateway) Available() bool {
	return g.available.Load()
}

// Probe runs one liveness check and flips the availability flag on state
// changes. Exposed so tests can drive transitions without waiting on a clock.
func (g *Gateway) Probe(ctx context.Context) {
	err := g.client.Status(ctx)
	if err == nil {
		if !g.available.Swap(true) {
			g.log.Info("scoring service is now available")
		}
		return
	}
	if g.available.Swap(false) {
		g.log.Warn("scoring service has become unavailable: %v", err)
	}
}

// Forward pushes an interaction to the service, best effort. The interaction
// is already durably logged before this is called; a failure here loses
// nothing, so it is logged and swallowed.
func (g *Gateway) Forward(ctx context.Context, in models.Interaction) {
	log := logger.FromContext(ctx).WithPrefix("oracle-gateway")

	if !g.Available() {
		log.Debug("skipping forward, service unavailable: interaction_id=%d", in.ID)
		return
	}

	ev := InteractionEvent{
		UserID:    strconv.FormatInt(in.UserID, 10),
		ProblemID: strconv.FormatInt(in.ProblemID, 10),
		Skills:    in.Skills,
		Correct:   in.Correct,
		Timestamp: in.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err := g.client.PushInteraction(ctx, ev); err != nil {
		log.Warn("failed to forward interaction %d: %v", in.ID, err)
	}
}

// Recommend ranks the candidate pool for a user. When the service is
// unavailable or the request fails, the pool is returned unchanged: a
// deterministic degradation the caller truncates to its shortlist size.
func (g *Gateway) Recommend(ctx context.Context, userID int64, pool []models.Problem, targetDifficulty float64) []models.Problem {
	log := logger.FromContext(ctx).WithPrefix("oracle-gateway")

	if len(pool) == 0 || !g.Available() {
		return pool
	}

	candidates := make([]Candidate, len(pool))
	byID := make(map[string]models.Problem, len(pool))
	for i, p := range pool {
		id := strconv.FormatInt(p.ID, 10)
		candidates[i] = Candidate{
			ID:         id,
			Title:      p.Title,
			Difficulty: p.Difficulty,
			Skills:     p.Skills,
		}
		byID[id] = p
	}

	ranked, err := g.client.RequestRecommendations(ctx, strconv.FormatInt(userID, 10), candidates, targetDifficulty)
	if err != nil {
		log.Warn("recommendation request failed, using fallback order: %v", err)
		return pool
	}

	problems := make([]models.Problem, 0, len(ranked))
	for _, c := range ranked {
		p, ok := byID[c.ID]
		if !ok {
			log.Warn("ranked candidate %q not in pool, dropping", c.ID)
			continue
		}
		problems = append(problems, p)
	}
	return problems
}

// Mastery returns the per-skill mastery estimates for a user, or an empty map
// when the service is unavailable or the request fails. An empty map means
// "unknown", never "zero mastery".
func (g *Gateway) Mastery(ctx context.Context, userID int64) map[string]float64 {
	log := logger.FromContext(ctx).WithPrefix("oracle-gateway")

	if !g.Available() {
		return map[string]float64{}
	}

	mastery, err := g.client.RequestMastery(ctx, strconv.FormatInt(userID, 10))
	if err != nil {
		log.Warn("mastery request failed: %v", err)
		return map[string]float64{}
	}
	if mastery == nil {
		return map[string]float64{}
	}
	return mastery
}
