package swarmlogic

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/skovsen/D2D_SwarmLogic/logging"
)

// World owns every agent, site and obstacle of a simulation. It is not safe
// for concurrent use; Update is the only method that mutates agents.
type World struct {
	Agents    []*Agent
	Sites     []Site
	Kinds     []SiteKind
	Obstacles []Obstacle
	Size      r2.Vec

	queue []Message

	logger  logging.Logger
	rng     *rand.Rand
	workers int

	elapsed   float64
	shortest  float64
	lastFlood FloodStats
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(w *World) {
		w.logger = logging.With(l, "component", "world")
	}
}

// WithSeed seeds the random source used for spawning and for every agent's
// heading jitter.
func WithSeed(seed int64) Option {
	return func(w *World) {
		w.rng = rand.New(rand.NewSource(seed))
	}
}

// WithWorkers moves agents on n goroutines. The message flood always runs on
// the caller's goroutine.
func WithWorkers(n int) Option {
	return func(w *World) {
		w.workers = n
	}
}

// WithAgents adds already constructed agents, in order.
func WithAgents(agents ...*Agent) Option {
	return func(w *World) {
		w.Agents = append(w.Agents, agents...)
	}
}

// NewWorld builds a world from a scene. The arena wall is always appended as
// the last obstacle.
func NewWorld(scene Scene, opts ...Option) *World {
	w := &World{
		Sites:     append([]Site(nil), scene.Sites...),
		Kinds:     append([]SiteKind(nil), scene.Kinds...),
		Obstacles: append([]Obstacle(nil), scene.Obstacles...),
		Size:      scene.Size,
		logger:    logging.NoOpLogger{},
		workers:   1,
		shortest:  math.Inf(1),
	}
	w.Obstacles = append(w.Obstacles, NewInvRect(r2.Vec{}, scene.Size))

	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return w
}

// KindCount is the number of site kinds agents hold beliefs about.
func (w *World) KindCount() int {
	n := 0
	for _, s := range w.Sites {
		if s.Kind+1 > n {
			n = s.Kind + 1
		}
	}
	return n
}

// Populate spawns cfg.Agents agents in the configured region. Agents that
// would start inside an obstacle start at the centre of the arena instead.
func (w *World) Populate(cfg Config) {
	kinds := w.KindCount()
	idle := min(cfg.IdleKinds, kinds)
	for i := 0; i < cfg.Agents; i++ {
		pos := Vec(
			uniform(w.rng, cfg.Spawn.MinX, cfg.Spawn.MaxX),
			uniform(w.rng, cfg.Spawn.MinY, cfg.Spawn.MaxY),
		)
		if w.blocked(pos) {
			pos = r2.Scale(0.5, w.Size)
		}

		id, err := uuid.NewRandomFromReader(w.rng)
		if err != nil {
			id = uuid.New()
		}
		a := NewAgent(id.String(), pos, w.rng.Float64()*2*math.Pi, kinds, rand.New(rand.NewSource(w.rng.Int63())))
		a.Speed = uniform(w.rng, cfg.SpeedMin, cfg.SpeedMax)
		a.TurnRate = cfg.TurnRateDegrees * math.Pi / 180
		a.CommRange = cfg.CommRange
		a.SenseRange = cfg.SenseRange
		a.Scout = w.rng.Float64() < cfg.ScoutProbability
		if idle > 0 {
			a.Beliefs[w.rng.Intn(idle)].Searching = false
		}
		w.Agents = append(w.Agents, a)
	}
	w.logger.Info("population spawned", "agents", cfg.Agents, "kinds", kinds)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func (w *World) blocked(p r2.Vec) bool {
	for i := range w.Obstacles {
		if w.Obstacles[i].Contains(p) {
			return true
		}
	}
	return false
}

// Update advances the simulation by dt seconds: every agent moves, then the
// sites broadcast and the resulting gossip is flooded until it dies out.
func (w *World) Update(dt float64) {
	w.move(dt)

	w.queue = w.queue[:0]
	for _, s := range w.Sites {
		w.queue = append(w.queue, s.Beacon())
	}
	w.lastFlood = w.flood()

	w.elapsed += dt
	w.trackShortest()
	w.logger.Debug("tick",
		"sim_time", w.elapsed,
		"messages", w.lastFlood.Messages,
		"deliveries", w.lastFlood.Deliveries,
	)
}

func (w *World) move(dt float64) {
	step := func(agents []*Agent) {
		for _, a := range agents {
			a.Step(dt, w.Obstacles)
			a.Contain(w.Size)
			a.AvoidObstacles(w.Obstacles)
		}
	}

	n := len(w.Agents)
	if w.workers <= 1 || n < w.workers {
		step(w.Agents)
		return
	}

	chunk := (n + w.workers - 1) / w.workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		wg.Add(1)
		go func(part []*Agent) {
			defer wg.Done()
			step(part)
		}(w.Agents[start:min(start+chunk, n)])
	}
	wg.Wait()
}

// flood drains the queue breadth first. Every accepted delivery strictly
// lowers one agent's estimate for one kind, so the queue always empties.
func (w *World) flood() FloodStats {
	var stats FloodStats
	for head := 0; head < len(w.queue); head++ {
		msg := w.queue[head]
		stats.Messages++
		for _, a := range w.Agents {
			if !w.reaches(msg, a.Position) {
				continue
			}
			relay, ok := a.Inform(msg)
			if !ok {
				continue
			}
			stats.Deliveries++
			w.queue = append(w.queue, relay)
		}
	}
	w.queue = w.queue[:0]
	return stats
}

// reaches reports whether msg can be heard at p: within range and with no
// obstacle in the way.
func (w *World) reaches(msg Message, p r2.Vec) bool {
	dx, dy := math.Abs(p.X-msg.Source.X), math.Abs(p.Y-msg.Source.Y)
	if dx > msg.Range || dy > msg.Range {
		return false
	}
	if dx*dx+dy*dy > msg.Range*msg.Range {
		return false
	}
	return !occluded(w.Obstacles, msg.Source, p)
}
