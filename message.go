package swarmlogic

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Message is one unit of gossip about a site kind. SqDist is the squared
// distance to the site as estimated by the sender, Range how far the message
// carries from Source.
type Message struct {
	Kind   int
	SqDist float64
	Range  float64
	Source r2.Vec
}

// Inform delivers msg to the agent. A message is only accepted when it is
// strictly better than what the agent already believes; in that case the
// agent may commit to, or arrive at, the site kind and the returned message
// is the agent's relay of it. ok is false when the message was rejected.
func (a *Agent) Inform(msg Message) (relay Message, ok bool) {
	if msg.Kind < 0 || msg.Kind >= len(a.Beliefs) {
		return Message{}, false
	}
	belief := &a.Beliefs[msg.Kind]
	if !(msg.SqDist < belief.SqDist) {
		return Message{}, false
	}
	belief.SqDist = msg.SqDist

	if belief.Searching && !a.Scout {
		if a.Commitment == nil || msg.SqDist < a.Commitment.SqDist {
			a.Commitment = &Commitment{Kind: msg.Kind, SqDist: msg.SqDist}
			a.Heading = wrapAngle(angleOf(r2.Sub(msg.Source, a.Position)))
		}
		if msg.SqDist == 0 {
			a.arrive(msg.Kind)
		}
	}

	return Message{
		Kind:   msg.Kind,
		SqDist: math.Pow(math.Sqrt(msg.SqDist)+a.CommRange, 2),
		Range:  a.CommRange,
		Source: a.Position,
	}, true
}

// arrive turns the agent around at a site of kind and restarts its search.
func (a *Agent) arrive(kind int) {
	a.Heading = wrapAngle(a.Heading + math.Pi)
	a.Beliefs[kind].Searching = false

	if !a.searchingAny() {
		for i := range a.Beliefs {
			a.Beliefs[i].Searching = i != kind
		}
	}

	if math.IsNaN(a.TripCurrent) {
		a.TripCurrent = 0
	} else if a.Commitment != nil && a.Commitment.Kind == kind {
		a.TripBest = math.Min(a.TripBest, a.TripCurrent)
		a.TripCurrent = 0
	}

	a.Commitment = nil
}

func (a *Agent) searchingAny() bool {
	for _, b := range a.Beliefs {
		if b.Searching {
			return true
		}
	}
	return false
}
