package swarmlogic

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// scoutSpeedup is the speed multiplier applied to scouts.
const scoutSpeedup = 1.5

// avoidBias is added to every avoidance turn so agents clear obstacles
// instead of grazing them.
var avoidBias = 10 * math.Pi / 180

// An Agent is a thing - anything that can move and gossip about sites
type Agent struct {
	ID       string
	Position r2.Vec
	// Heading in radians counterclockwise from +x, kept in [0, 2π)
	Heading float64
	Speed   float64
	// TurnRate is the maximum random heading change per second
	TurnRate   float64
	CommRange  float64
	SenseRange float64
	Scout      bool

	TripCurrent float64
	TripBest    float64

	// Beliefs is indexed by site kind
	Beliefs    []Belief
	Commitment *Commitment

	rng *rand.Rand
}

// Belief is what an agent thinks about one site kind.
type Belief struct {
	// SqDist is the dead reckoned squared distance to the closest site of this kind
	SqDist    float64
	Searching bool
}

// Commitment is the site kind an agent is currently heading for.
type Commitment struct {
	Kind   int
	SqDist float64
}

// NewAgent creates an agent that knows nothing about any of kinds site kinds
// and is searching for all of them. rng drives heading jitter.
func NewAgent(id string, pos r2.Vec, heading float64, kinds int, rng *rand.Rand) *Agent {
	beliefs := make([]Belief, kinds)
	for i := range beliefs {
		beliefs[i] = Belief{SqDist: math.Inf(1), Searching: true}
	}
	return &Agent{
		ID:       id,
		Position: pos,
		Heading:  wrapAngle(heading),
		TripBest: math.Inf(1),
		Beliefs:  beliefs,
		rng:      rng,
	}
}

// State is the decision state of the agent towards one site kind.
type State int

// The per kind decision states
const (
	NotSearching State = iota
	Searching
	Committed
)

func (s State) String() string {
	switch s {
	case NotSearching:
		return "not-searching"
	case Searching:
		return "searching"
	case Committed:
		return "committed"
	}
	return "unknown"
}

// StateOf reports the decision state towards kind.
func (a *Agent) StateOf(kind int) State {
	if a.Commitment != nil && a.Commitment.Kind == kind {
		return Committed
	}
	if kind >= 0 && kind < len(a.Beliefs) && a.Beliefs[kind].Searching {
		return Searching
	}
	return NotSearching
}

func (a *Agent) effectiveSpeed() float64 {
	if a.Scout {
		return a.Speed * scoutSpeedup
	}
	return a.Speed
}

// Step moves the agent for dt seconds, bouncing off obstacles, grows its
// distance estimates and jitters its heading.
func (a *Agent) Step(dt float64, obstacles []Obstacle) {
	speed := a.effectiveSpeed()
	dist := speed * dt
	a.TripCurrent += dist

	origin := a.Position
	delta := r2.Scale(dist, unitVec(a.Heading))
	for i := 0; i < MaxBounces; i++ {
		hit, reflected, ok := firstCollision(obstacles, origin, delta)
		if !ok {
			break
		}
		origin, delta = hit, reflected
	}
	a.Position = r2.Add(origin, delta)
	if delta.X != 0 || delta.Y != 0 {
		a.Heading = angleOf(delta)
	}

	for kind := range a.Beliefs {
		b := &a.Beliefs[kind]
		b.SqDist = math.Pow(math.Sqrt(b.SqDist)+dist, 2)
		if a.Commitment != nil && a.Commitment.Kind == kind {
			a.Commitment.SqDist = b.SqDist
		}
	}

	a.Heading = wrapAngle(a.Heading + a.jitter(dt*a.TurnRate))
}

// jitter draws uniformly from [-max, max).
func (a *Agent) jitter(max float64) float64 {
	if max <= 0 || a.rng == nil {
		return 0
	}
	return (a.rng.Float64()*2 - 1) * max
}

// Contain turns an agent that has left the arena [0,size) back inwards by
// mirroring its heading on every axis where it is outside and still heading out.
func (a *Agent) Contain(size r2.Vec) {
	for axis := 0; axis < 2; axis++ {
		// <0 outside low side, 0 inside, >0 outside high side
		pos := int(math.Floor(component(a.Position, axis) / component(size, axis)))

		// heading relative to the axis; facing the low side in [π/2, 3π/2)
		rel := a.Heading - float64(axis)*math.Pi/2
		facing := 1
		if rel >= math.Pi/2 && rel < 3*math.Pi/2 {
			facing = -1
		}

		if pos*facing > 0 {
			a.Heading = wrapAngle(float64(1-axis)*math.Pi - a.Heading)
		}
	}
}

// AvoidObstacles steers away from the nearest obstacle boundary ahead of the
// agent within SenseRange.
func (a *Agent) AvoidObstacles(obstacles []Obstacle) {
	ray := unitVec(a.Heading)

	nearest := Hit{T: math.Inf(1)}
	for i := range obstacles {
		for _, h := range obstacles[i].Intersects(a.Position, ray) {
			if h.T > 0 && h.T < a.SenseRange && h.T < nearest.T {
				nearest = h
			}
		}
	}
	if math.IsInf(nearest.T, 1) {
		return
	}

	t := nearest.T - 0.1
	norm := nearest.Normal
	tangent := r2.Vec{X: norm.Y, Y: -norm.X}
	tanComp := acos(r2.Dot(ray, tangent)) - math.Pi/2

	var turns [2]float64
	for i, sign := range [2]float64{-1, 1} {
		normComp := acos(t * sign * r2.Dot(ray, norm) / a.SenseRange)
		turns[i] = remEuclid(tanComp+normComp+math.Pi/2, math.Pi) - math.Pi/2
	}
	turn := turns[0]
	if math.Abs(turns[0]) > math.Abs(turns[1]) {
		turn = turns[1]
	}
	turn += math.Copysign(avoidBias, turn)
	if math.IsNaN(turn) {
		return
	}
	a.Heading = wrapAngle(a.Heading + turn)
}

// acos clamps rounding noise outside [-1, 1].
func acos(x float64) float64 {
	return math.Acos(math.Max(-1, math.Min(1, x)))
}
