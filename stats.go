package swarmlogic

import "math"

// FloodStats counts the work done by one message flood.
type FloodStats struct {
	// Messages dequeued, site beacons included
	Messages int
	// Deliveries accepted by an agent, each producing one relay
	Deliveries int
}

// LastFlood returns the statistics of the most recent Update.
func (w *World) LastFlood() FloodStats {
	return w.lastFlood
}

// Elapsed is the simulated time in seconds.
func (w *World) Elapsed() float64 {
	return w.elapsed
}

// ShortestTrip is the shortest completed trip between two sites made by any
// agent so far, or +Inf.
func (w *World) ShortestTrip() float64 {
	return w.shortest
}

func (w *World) trackShortest() {
	best := math.Inf(1)
	for _, a := range w.Agents {
		best = math.Min(best, a.TripBest)
	}
	if best < w.shortest {
		w.shortest = best
		w.logger.Info("shortest trip improved", "sim_time", w.elapsed, "distance", best)
	}
}

// Committed counts the agents committed to each site kind.
func (w *World) Committed() []int {
	counts := make([]int, w.KindCount())
	for _, a := range w.Agents {
		if a.Commitment != nil && a.Commitment.Kind < len(counts) {
			counts[a.Commitment.Kind]++
		}
	}
	return counts
}
