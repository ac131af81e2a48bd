package transition

import "sync/atomic"

// MetricsSnapshot is a point-in-time copy of the machine's counters.
type MetricsSnapshot struct {
	GestureStarts  int64
	GestureCommits int64
	GestureCancels int64
	Navigations    int64
}

// Metrics counts transition outcomes. All counters are atomic so gesture
// handling never takes a lock for bookkeeping.
type Metrics struct {
	gestureStarts  atomic.Int64
	gestureCommits atomic.Int64
	gestureCancels atomic.Int64
	navigations    atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordGestureStart()  { m.gestureStarts.Add(1) }
func (m *Metrics) RecordGestureCommit() { m.gestureCommits.Add(1) }
func (m *Metrics) RecordGestureCancel() { m.gestureCancels.Add(1) }
func (m *Metrics) RecordNavigation()    { m.navigations.Add(1) }

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		GestureStarts:  m.gestureStarts.Load(),
		GestureCommits: m.gestureCommits.Load(),
		GestureCancels: m.gestureCancels.Load(),
		Navigations:    m.navigations.Load(),
	}
}
