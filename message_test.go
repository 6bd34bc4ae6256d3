package swarmlogic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInform_MonotoneAdmission(t *testing.T) {
	a := newTestAgent(1)
	a.Scout = true

	for _, d := range []float64{9, 4, 1} {
		_, ok := a.Inform(Message{Kind: 0, SqDist: d, Range: 1, Source: Vec(1, 0)})
		require.True(t, ok, "sq dist %g", d)
		assert.Equal(t, d, a.Beliefs[0].SqDist)
	}

	before := *a
	beliefs := append([]Belief(nil), a.Beliefs...)
	for _, d := range []float64{1, 4, math.Inf(1), math.NaN()} {
		_, ok := a.Inform(Message{Kind: 0, SqDist: d, Range: 1, Source: Vec(1, 0)})
		assert.False(t, ok, "sq dist %g", d)
	}
	assert.Equal(t, beliefs, a.Beliefs)
	assert.Equal(t, before.Heading, a.Heading)
	assert.Equal(t, before.Commitment, a.Commitment)
}

func TestInform_RelayAttenuates(t *testing.T) {
	a := newTestAgent(2)
	a.Position = Vec(3, 4)
	a.CommRange = 0.5

	relay, ok := a.Inform(Message{Kind: 1, SqDist: 4, Range: 2, Source: Vec(3, 2)})

	require.True(t, ok)
	assert.Equal(t, Message{Kind: 1, SqDist: 6.25, Range: 0.5, Source: Vec(3, 4)}, relay)
}

func TestInform_UnknownKindIgnored(t *testing.T) {
	a := newTestAgent(2)

	for _, kind := range []int{-1, 2, 10} {
		_, ok := a.Inform(Message{Kind: kind, SqDist: 0, Range: 1})
		assert.False(t, ok, "kind %d", kind)
	}
	assert.Nil(t, a.Commitment)
	assert.True(t, math.IsInf(a.Beliefs[0].SqDist, 1))
}

func TestInform_CommitsAndFacesSource(t *testing.T) {
	// a site at (5, 5) with radius 0.2, heard 0.2 away
	a := newTestAgent(1)
	a.Position = Vec(5.2, 5)

	_, ok := a.Inform(Message{Kind: 0, SqDist: 0.04, Range: 0.2, Source: Vec(5, 5)})

	require.True(t, ok)
	assert.Equal(t, Committed, a.StateOf(0))
	require.NotNil(t, a.Commitment)
	assert.Equal(t, 0.04, a.Commitment.SqDist)
	assert.Equal(t, 0.04, a.Beliefs[0].SqDist)
	assert.InDelta(t, math.Pi, a.Heading, eps)
}

func TestInform_OnlyCloserSitesReplaceCommitment(t *testing.T) {
	a := newTestAgent(2)
	_, ok := a.Inform(Message{Kind: 0, SqDist: 1, Source: Vec(0, 1)})
	require.True(t, ok)
	assert.InDelta(t, math.Pi/2, a.Heading, eps)

	// better than the kind 1 belief but not closer than the commitment
	_, ok = a.Inform(Message{Kind: 1, SqDist: 2, Source: Vec(-1, 0)})
	require.True(t, ok)
	assert.Equal(t, &Commitment{Kind: 0, SqDist: 1}, a.Commitment)
	assert.InDelta(t, math.Pi/2, a.Heading, eps)

	_, ok = a.Inform(Message{Kind: 1, SqDist: 0.5, Source: Vec(-1, 0)})
	require.True(t, ok)
	assert.Equal(t, &Commitment{Kind: 1, SqDist: 0.5}, a.Commitment)
	assert.InDelta(t, math.Pi, a.Heading, eps)
	assert.Equal(t, Searching, a.StateOf(0))
}

func TestInform_NotSearchingKeepsHeading(t *testing.T) {
	a := newTestAgent(2)
	a.Heading = 1
	a.Beliefs[0].Searching = false

	_, ok := a.Inform(Message{Kind: 0, SqDist: 0.5, Range: 1, Source: Vec(-3, -3)})

	require.True(t, ok)
	assert.Equal(t, 1.0, a.Heading)
	assert.Equal(t, 0.5, a.Beliefs[0].SqDist)
	assert.Nil(t, a.Commitment)
	assert.Equal(t, NotSearching, a.StateOf(0))
}

func TestInform_ScoutsNeverCommit(t *testing.T) {
	a := newTestAgent(1)
	a.Scout = true
	a.Heading = 2

	_, ok := a.Inform(Message{Kind: 0, SqDist: 0, Range: 1, Source: Vec(1, 1)})

	require.True(t, ok)
	assert.Nil(t, a.Commitment)
	assert.True(t, a.Beliefs[0].Searching)
	assert.Equal(t, 2.0, a.Heading)
}

func TestInform_ArrivalAtOnlySearchedKind(t *testing.T) {
	a := newTestAgent(3)
	a.Beliefs[0].Searching = false
	a.Beliefs[2].Searching = false

	_, ok := a.Inform(Message{Kind: 1, SqDist: 4, Source: Vec(1, 0)})
	require.True(t, ok)
	require.Equal(t, Committed, a.StateOf(1))
	a.TripCurrent = 7

	_, ok = a.Inform(Message{Kind: 1, SqDist: 0, Source: Vec(1, 0)})
	require.True(t, ok)

	assert.Equal(t, []bool{true, false, true}, searching(a))
	assert.Nil(t, a.Commitment)
	assert.Equal(t, 7.0, a.TripBest)
	assert.Equal(t, 0.0, a.TripCurrent)
	assert.InDelta(t, math.Pi, a.Heading, eps, "turned around after facing the site")
}

func TestInform_ArrivalKeepsOtherSearches(t *testing.T) {
	a := newTestAgent(2)
	a.TripCurrent = 3

	_, ok := a.Inform(Message{Kind: 0, SqDist: 0, Source: Vec(0, 1)})
	require.True(t, ok)

	assert.Equal(t, []bool{false, true}, searching(a))
	assert.Equal(t, 3.0, a.TripBest)
	assert.InDelta(t, 3*math.Pi/2, a.Heading, eps)
}

func TestInform_ArrivalResetsNaNTrip(t *testing.T) {
	a := newTestAgent(1)
	a.TripCurrent = math.NaN()

	_, ok := a.Inform(Message{Kind: 0, SqDist: 0, Source: Vec(1, 0)})
	require.True(t, ok)

	assert.Equal(t, 0.0, a.TripCurrent)
	assert.True(t, math.IsInf(a.TripBest, 1))
}

func TestInform_BestTripIsMinimum(t *testing.T) {
	a := newTestAgent(1)

	for _, trip := range []float64{5, 8, 2, 6} {
		// single kind: every arrival reopens nothing, so re-enable by hand
		a.Beliefs[0] = Belief{SqDist: math.Inf(1), Searching: true}
		a.TripCurrent = trip
		_, ok := a.Inform(Message{Kind: 0, SqDist: 0, Source: Vec(1, 0)})
		require.True(t, ok)
	}
	assert.Equal(t, 2.0, a.TripBest)
}

func searching(a *Agent) []bool {
	out := make([]bool, len(a.Beliefs))
	for i, b := range a.Beliefs {
		out[i] = b.Searching
	}
	return out
}
