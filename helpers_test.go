package gesture

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const ms = time.Millisecond

// harness is a dispatcher over a region tree with one full-screen region,
// recording every gesture event.
type harness struct {
	t     *testing.T
	tree  *RegionTree
	view  *Region
	d     *Dispatcher
	sched *TickScheduler
	log   *EventLog
}

func newHarness(t *testing.T, recs ...Recognizer) *harness {
	t.Helper()
	tree := NewRegionTree()
	view := NewRegion("view", HitRect{Width: 1000, Height: 1000})
	tree.Root().AddChild(view)
	for _, r := range recs {
		view.AddGesture(r)
	}
	d := NewDispatcher(tree, nil)
	log := &EventLog{}
	d.SetEventSink(log)
	sched, ok := d.Scheduler().(*TickScheduler)
	require.True(t, ok)
	return &harness{t: t, tree: tree, view: view, d: d, sched: sched, log: log}
}

func (h *harness) run(seqs ...*Sequence) {
	h.d.HandlePacket(Merge(seqs...))
}

func (h *harness) advance(to time.Duration) {
	h.d.AdvanceTo(to)
}

func (h *harness) requireTypes(want ...EventType) {
	h.t.Helper()
	if want == nil {
		want = []EventType{}
	}
	got := h.log.Types()
	if diff := cmp.Diff(want, got); diff != "" {
		h.t.Fatalf("event types mismatch (-want +got):\n%s", diff)
	}
}

func (h *harness) count(t EventType) int {
	n := 0
	for _, e := range h.log.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func touch() *Sequence { return NewSequence(DeviceTouch, 1) }
