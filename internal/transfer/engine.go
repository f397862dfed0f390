package transfer

import (
	"context"
	"sync"

	"github.com/tanq16/xdcc/internal/utils"
)

// Observer is told about every task an engine starts or rejects. Calls come
// from the session goroutine and must return quickly.
type Observer interface {
	TaskStarted(t *Task)
	TaskFinished(t *Task, err error)
}

// Engine runs one goroutine per announced transfer with no limit on how many
// run at once. Failures never cancel sibling transfers; Wait reports the
// first one to happen.
type Engine struct {
	cfg      utils.TransferConfig
	dialer   Dialer
	observer Observer

	wg       sync.WaitGroup
	mu       sync.Mutex
	tasks    []*Task
	firstErr error
	failures int
}

func NewEngine(cfg utils.TransferConfig) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) WithDialer(d Dialer) *Engine {
	e.dialer = d
	return e
}

func (e *Engine) WithObserver(o Observer) *Engine {
	e.observer = o
	return e
}

// Start spawns a task for offer and returns without waiting for it.
func (e *Engine) Start(ctx context.Context, offer utils.Announcement) {
	task := NewTask(offer, e.cfg, e.dialer)
	e.mu.Lock()
	e.tasks = append(e.tasks, task)
	e.mu.Unlock()
	if e.observer != nil {
		e.observer.TaskStarted(task)
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		err := task.Run(ctx)
		if err != nil {
			e.record(err)
		}
		if e.observer != nil {
			e.observer.TaskFinished(task, err)
		}
	}()
}

// Fail records an announcement that could not be turned into a task.
func (e *Engine) Fail(offer utils.Announcement, err error) {
	task := NewTask(offer, e.cfg, e.dialer)
	task.err = err
	task.state.Store(int32(Failed))
	e.mu.Lock()
	e.tasks = append(e.tasks, task)
	e.mu.Unlock()
	e.record(err)
	if e.observer != nil {
		e.observer.TaskStarted(task)
		e.observer.TaskFinished(task, err)
	}
}

func (e *Engine) record(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failures++
	if e.firstErr == nil {
		e.firstErr = err
	}
}

// Wait blocks until every started task has finished.
func (e *Engine) Wait() error {
	e.wg.Wait()
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.firstErr
}

// Tasks returns a snapshot of the tasks started so far, in announcement order.
func (e *Engine) Tasks() []*Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Task(nil), e.tasks...)
}

// Failures is the number of failed tasks; complete only after Wait.
func (e *Engine) Failures() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.failures
}
