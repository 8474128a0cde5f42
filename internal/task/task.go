// Package task runs per-frame callbacks. Registration returns a handle
// that is the only way to remove the task again.
package task

import "log/slog"

// Status is returned by a task function after each run
type Status int

const (
	// Cont keeps the task scheduled for the next frame
	Cont Status = iota
	// Done removes the task
	Done
)

// Func is the body of a task
type Func func(t *Task) Status

// Task is a handle to a registered callback
type Task struct {
	Name string
	// Frame counts the runs of this task, starting at 0 on the first run
	Frame int

	fn      Func
	removed bool
}

// Active reports whether the task is still scheduled
func (t *Task) Active() bool {
	return t != nil && !t.removed
}

// Manager is a single-threaded frame scheduler
type Manager struct {
	tasks []*Task
	log   *slog.Logger
}

// NewManager creates an empty scheduler
func NewManager(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{log: log}
}

// Add schedules fn to run once per Step, after all tasks added before it
func (m *Manager) Add(name string, fn Func) *Task {
	t := &Task{Name: name, fn: fn}
	m.tasks = append(m.tasks, t)
	m.log.Debug("task added", "task", name)
	return t
}

// Remove deschedules t. It is safe to call from inside a running task,
// including t itself. It returns false when t was not scheduled.
func (m *Manager) Remove(t *Task) bool {
	if !t.Active() {
		return false
	}
	t.removed = true
	m.log.Debug("task removed", "task", t.Name)
	return true
}

// Step runs every scheduled task once. Tasks added during the step
// first run on the next step.
func (m *Manager) Step() {
	n := len(m.tasks)
	for i := 0; i < n; i++ {
		t := m.tasks[i]
		if t.removed {
			continue
		}
		status := t.fn(t)
		t.Frame++
		if status == Done {
			m.Remove(t)
		}
	}
	m.compact()
}

func (m *Manager) compact() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.removed {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.tasks); i++ {
		m.tasks[i] = nil
	}
	m.tasks = live
}

// Len returns the number of scheduled tasks
func (m *Manager) Len() int {
	count := 0
	for _, t := range m.tasks {
		if !t.removed {
			count++
		}
	}
	return count
}
