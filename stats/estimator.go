package stats

import (
	"fmt"
	"sync"
)

// Estimator is an online mean accumulator: a (sum, count) pair folded one
// sample at a time over a whole tournament, never reset. The pair is
// guarded by a mutex so a progress reader can never observe a torn
// (sum, count) update while games keep folding.
type Estimator struct {
	mu    sync.Mutex
	sum   float64
	count int
}

// Sample folds one observation in.
func (e *Estimator) Sample(value float64) {
	e.mu.Lock()
	e.sum += value
	e.count++
	e.mu.Unlock()
}

// SampleBool folds a 0/1 observation in.
func (e *Estimator) SampleBool(value bool) {
	if value {
		e.Sample(1)
	} else {
		e.Sample(0)
	}
}

// Estimate returns the running mean, or 0 before any sample.
func (e *Estimator) Estimate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.count == 0 {
		return 0
	}
	return e.sum / float64(e.count)
}

// Count returns how many samples have been folded in.
func (e *Estimator) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.count
}

func (e *Estimator) String() string {
	return fmt.Sprintf("%5.1f%% (n=%d)", e.Estimate()*100, e.Count())
}
