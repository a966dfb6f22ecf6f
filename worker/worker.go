/*
Package worker runs matching passes on a single persistent goroutine.

Jobs are latest-wins: submitting a job cancels the one running, and only the
most recently submitted job publishes a result. A superseded job publishes
nothing. Results are queued for every subscriber and delivered on a goroutine
of that subscriber, so a slow handler never holds up Submit.

	w := worker.New(st)
	defer w.Close()
	cancel := w.Subscribe(func(r worker.Result) {
	    fmt.Println(string(r.Characters))
	})
	defer cancel()
	w.Submit(worker.Job{Input: written.Descriptor(), Options: matcher.DefaultOptions()})
*/
package worker

import (
	"context"
	"sync"

	"github.com/npillmayer/hanzi"
	"github.com/npillmayer/hanzi/matcher"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'hanzi.worker'
func tracer() tracing.Trace {
	return tracing.Select("hanzi.worker")
}

// State is the state of a worker.
type State int

// Worker states
const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Job is a matching request. A nil Input is treated as a character without
// strokes.
type Job struct {
	Input   *hanzi.CharacterDescriptor
	Options matcher.Options
}

// Result is published to subscribers when a job completes without being
// superseded.
type Result struct {
	JobID      uint64
	Matches    []matcher.Match
	Characters []rune
	Err        error // matching failed for a reason other than supersession
}

type matchFunc func(context.Context, matcher.Source, *hanzi.CharacterDescriptor, matcher.Options) ([]matcher.Match, error)

type pendingJob struct {
	id  uint64
	job Job
}

// Worker executes one matching job at a time.
type Worker struct {
	src   matcher.Source
	match matchFunc

	mu      sync.Mutex // guards the fields below; never held while handlers run
	gen     uint64     // id of the latest submitted job
	pending *pendingJob
	cancel  context.CancelFunc // of the running job
	state   State
	closed  bool

	subsMu  sync.Mutex
	subs    map[uint64]*subscriber
	nextSub uint64

	wake   chan struct{}
	done   chan struct{}
	exited chan struct{}
}

// New creates a worker for reference source src and starts its goroutine.
// Clients should call Close when done.
func New(src matcher.Source) *Worker {
	return newWorker(src, matcher.Run)
}

func newWorker(src matcher.Source, match matchFunc) *Worker {
	w := &Worker{
		src:    src,
		match:  match,
		subs:   make(map[uint64]*subscriber),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go w.loop()
	return w
}

// Submit queues job, superseding every job submitted earlier. It does not
// wait for matching and returns the id of the job, which is reported in its
// Result. After Close, Submit returns 0 and does nothing.
func (w *Worker) Submit(job Job) uint64 {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return 0
	}
	w.gen++
	id := w.gen
	w.pending = &pendingJob{id: id, job: job}
	if w.cancel != nil {
		w.cancel()
	}
	w.mu.Unlock()
	select {
	case w.wake <- struct{}{}:
	default: // wake-up already pending
	}
	tracer().Debugf("submitted job %d", id)
	return id
}

// Subscribe registers a handler for results. Every handler runs on a
// goroutine of its own and receives results in publishing order; it may call
// Submit. The returned function removes the handler, dropping results not yet
// delivered to it.
func (w *Worker) Subscribe(handler func(Result)) (cancel func()) {
	sub := newSubscriber(handler)
	w.subsMu.Lock()
	w.nextSub++
	id := w.nextSub
	w.subs[id] = sub
	w.subsMu.Unlock()
	go sub.deliver()
	return func() {
		w.subsMu.Lock()
		delete(w.subs, id)
		w.subsMu.Unlock()
		sub.stop()
	}
}

// State returns whether the worker is currently matching.
func (w *Worker) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Close cancels the running job, drops a pending one and stops the worker's
// goroutine. Results already published are still delivered. It is safe to
// call Close more than once.
func (w *Worker) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.exited
		return
	}
	w.closed = true
	w.pending = nil
	if w.cancel != nil {
		w.cancel()
	}
	w.mu.Unlock()
	close(w.done)
	<-w.exited
	w.subsMu.Lock()
	for id, sub := range w.subs {
		sub.finish()
		delete(w.subs, id)
	}
	w.subsMu.Unlock()
}

func (w *Worker) loop() {
	defer close(w.exited)
	for {
		select {
		case <-w.done:
			return
		case <-w.wake:
		}
		for w.runNext() {
		}
	}
}

// runNext runs the pending job, if any. It returns false if there was none.
func (w *Worker) runNext() bool {
	w.mu.Lock()
	p := w.pending
	if p == nil || w.closed {
		w.state = Idle
		w.mu.Unlock()
		return false
	}
	w.pending = nil
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.state = Running
	w.mu.Unlock()

	input := p.job.Input
	if input == nil {
		input = &hanzi.CharacterDescriptor{}
	}
	matches, err := w.match(ctx, w.src, input, p.job.Options)
	superseded := ctx.Err() != nil
	cancel()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancel = nil
	if w.closed || p.id != w.gen || (superseded && err != nil) {
		tracer().Debugf("job %d superseded", p.id)
		return true
	}
	if err != nil {
		tracer().Errorf("job %d: %v", p.id, err)
	}
	w.publish(Result{
		JobID:      p.id,
		Matches:    matches,
		Characters: matcher.Characters(matches),
		Err:        err,
	})
	return true
}

// publish is called with w.mu held: no job can be submitted between the
// generation check of a job and queueing its result. Queueing does not block.
func (w *Worker) publish(r Result) {
	w.subsMu.Lock()
	defer w.subsMu.Unlock()
	tracer().Debugf("job %d published %d matches to %d subscribers", r.JobID, len(r.Matches), len(w.subs))
	for _, sub := range w.subs {
		sub.post(r)
	}
}

// subscriber is the mailbox of one handler.
type subscriber struct {
	handler func(Result)
	mu      sync.Mutex
	queue   []Result
	closing bool // deliver what is queued, then stop
	stopped bool // stop without delivering
	signal  chan struct{}
}

func newSubscriber(handler func(Result)) *subscriber {
	return &subscriber{handler: handler, signal: make(chan struct{}, 1)}
}

func (s *subscriber) post(r Result) {
	s.mu.Lock()
	s.queue = append(s.queue, r)
	s.mu.Unlock()
	s.notify()
}

func (s *subscriber) notify() {
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *subscriber) stop() {
	s.mu.Lock()
	s.stopped = true
	s.queue = nil
	s.mu.Unlock()
	s.notify()
}

func (s *subscriber) finish() {
	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()
	s.notify()
}

func (s *subscriber) deliver() {
	for range s.signal {
		for {
			s.mu.Lock()
			if s.stopped || len(s.queue) == 0 {
				done := s.stopped || s.closing
				s.mu.Unlock()
				if done {
					return
				}
				break
			}
			r := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()
			s.handler(r)
		}
	}
}
