package gesture

import (
	"sort"
	"time"
)

// TimerID identifies a scheduled callback. Zero is never returned by a
// Scheduler and cancelling it is a no-op.
type TimerID uint64

// Scheduler runs one-shot or repeating callbacks on the dispatch thread.
// Callbacks must re-enter the same single-threaded context that delivers
// pointer events.
type Scheduler interface {
	Schedule(delay time.Duration, repeats bool, fn func()) TimerID
	Cancel(id TimerID)
}

// Advancer is implemented by schedulers whose clock is driven by the caller.
// The Dispatcher advances such schedulers to each event's timestamp before
// delivering it, so timers due earlier fire first.
type Advancer interface {
	AdvanceTo(now time.Duration)
}

// beforeAdvancer is implemented by schedulers that can move their clock to an
// instant without running the callbacks due exactly then.
type beforeAdvancer interface {
	AdvanceBefore(now time.Duration)
}

type tickTask struct {
	id       TimerID
	due      time.Duration
	interval time.Duration
	repeats  bool
	fn       func()
	seq      uint64
}

// TickScheduler is a Scheduler driven by an explicit clock. Hosts call
// AdvanceTo (or Advance) from their frame loop; tests call it to step time.
// It is not safe for concurrent use.
type TickScheduler struct {
	now    time.Duration
	nextID TimerID
	seq    uint64
	tasks  []*tickTask
}

// NewTickScheduler creates a scheduler whose clock starts at start.
func NewTickScheduler(start time.Duration) *TickScheduler {
	return &TickScheduler{now: start}
}

// Now returns the scheduler clock.
func (s *TickScheduler) Now() time.Duration { return s.now }

// Pending returns the number of scheduled callbacks.
func (s *TickScheduler) Pending() int { return len(s.tasks) }

// Schedule registers fn to run once delay has elapsed on the scheduler clock.
// Repeating tasks run every delay until cancelled; a non-positive delay on a
// repeating task is treated as one nanosecond.
func (s *TickScheduler) Schedule(delay time.Duration, repeats bool, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	if repeats && delay == 0 {
		delay = time.Nanosecond
	}
	s.nextID++
	s.seq++
	s.tasks = append(s.tasks, &tickTask{
		id:       s.nextID,
		due:      s.now + delay,
		interval: delay,
		repeats:  repeats,
		fn:       fn,
		seq:      s.seq,
	})
	return s.nextID
}

// Cancel removes a scheduled callback. Unknown ids are ignored.
func (s *TickScheduler) Cancel(id TimerID) {
	for i, t := range s.tasks {
		if t.id == id {
			copy(s.tasks[i:], s.tasks[i+1:])
			s.tasks[len(s.tasks)-1] = nil
			s.tasks = s.tasks[:len(s.tasks)-1]
			return
		}
	}
}

// Advance moves the clock forward by d.
func (s *TickScheduler) Advance(d time.Duration) {
	s.AdvanceTo(s.now + d)
}

// AdvanceTo moves the clock to now, running every callback that falls due in
// deadline order. Callbacks may schedule or cancel other callbacks. Moving
// the clock backwards is ignored.
func (s *TickScheduler) AdvanceTo(now time.Duration) {
	s.advance(now, now)
}

// AdvanceBefore moves the clock to now but only runs callbacks due strictly
// before it. Callbacks due exactly at now stay pending until the next
// AdvanceTo.
func (s *TickScheduler) AdvanceBefore(now time.Duration) {
	s.advance(now-1, now)
}

// advance runs callbacks due by limit, then sets the clock to now.
func (s *TickScheduler) advance(limit, now time.Duration) {
	if now < s.now {
		return
	}
	for {
		t := s.nextDue(limit)
		if t == nil {
			break
		}
		s.now = t.due
		if t.repeats {
			s.seq++
			t.due += t.interval
			t.seq = s.seq
		} else {
			s.Cancel(t.id)
		}
		t.fn()
	}
	s.now = now
}

// nextDue returns the earliest task due at or before now, ties broken by
// scheduling order.
func (s *TickScheduler) nextDue(now time.Duration) *tickTask {
	if len(s.tasks) == 0 {
		return nil
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	if s.tasks[0].due > now {
		return nil
	}
	return s.tasks[0]
}

// timerSlot owns at most one outstanding timer for a recognizer. Every start
// or stop bumps the generation so a callback that was already dequeued when
// the slot was stopped detects it is stale.
type timerSlot struct {
	id  TimerID
	gen uint64
}

func (t *timerSlot) start(s Scheduler, delay time.Duration, fn func()) {
	t.stop(s)
	if s == nil {
		return
	}
	gen := t.gen
	t.id = s.Schedule(delay, false, func() {
		if gen != t.gen {
			return
		}
		t.id = 0
		t.gen++
		fn()
	})
}

func (t *timerSlot) stop(s Scheduler) {
	t.gen++
	if t.id != 0 && s != nil {
		s.Cancel(t.id)
	}
	t.id = 0
}

func (t *timerSlot) active() bool { return t.id != 0 }
