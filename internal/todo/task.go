package todo

import "container/list"

// Task is one item of a Document. Obtain tasks from a Document; the zero
// value is not attached to any list.
type Task struct {
	// Done marks the task completed.
	Done bool

	// Priority is stored but not used for ordering.
	Priority int

	text string
	elem *list.Element
	doc  *Document
}

// Text returns the task text.
func (t *Task) Text() string {
	return t.text
}

// SetText replaces the task text.
func (t *Task) SetText(text string) error {
	if !t.Live() {
		return ErrForeignTask
	}
	if err := checkLine(text); err != nil {
		return err
	}
	t.text = text
	return nil
}

// Toggle flips the done flag.
func (t *Task) Toggle() {
	t.Done = !t.Done
}

// Live reports whether the task still belongs to a document.
func (t *Task) Live() bool {
	return t != nil && t.elem != nil && t.doc != nil
}

// Next returns the following task, or nil.
func (t *Task) Next() *Task {
	if !t.Live() {
		return nil
	}
	return taskOf(t.elem.Next())
}

// Prev returns the preceding task, or nil.
func (t *Task) Prev() *Task {
	if !t.Live() {
		return nil
	}
	return taskOf(t.elem.Prev())
}

func taskOf(e *list.Element) *Task {
	if e == nil {
		return nil
	}
	return e.Value.(*Task)
}
