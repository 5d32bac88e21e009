// Package todo holds the in-memory task list: an ordered sequence of tasks
// plus an ordered, key-unique option map.
//
// Tasks are handles into an intrusive doubly-linked list. A *Task stays valid
// across insertions, deletions and moves elsewhere in the list, so a UI can
// keep a selected task across redraws. Deleting a task kills its handle; any
// later mutation through it fails with ErrForeignTask.
package todo

import (
	"container/list"
	"errors"
	"strings"
)

// Recognized option keys.
const (
	OptionAutosync = "autosync"
	OptionOrigin   = "origin"
	OptionVersion  = "version"
)

var (
	// ErrForeignTask is returned when a task handle does not belong to the
	// document, either because it came from another document or because it
	// was deleted.
	ErrForeignTask = errors.New("task does not belong to this list")

	// ErrDestroyed is returned by mutations on a destroyed document.
	ErrDestroyed = errors.New("list has been destroyed")

	// ErrMultiline is returned when task or title text contains a newline,
	// which the file format cannot represent.
	ErrMultiline = errors.New("text must not contain a newline")

	// ErrEmptyKey is returned when an option key is empty, which the file
	// format cannot represent.
	ErrEmptyKey = errors.New("option key must not be empty")
)

// Document is a titled task list with options.
type Document struct {
	// Title is the first line of the file.
	Title string

	tasks     *list.List
	options   []Option
	destroyed bool
}

// New returns an empty document.
func New(title string) *Document {
	return &Document{Title: title, tasks: list.New()}
}

// Len returns the number of tasks.
func (d *Document) Len() int {
	if d.destroyed {
		return 0
	}
	return d.tasks.Len()
}

// First returns the first task, or nil if the list is empty.
func (d *Document) First() *Task {
	if d.destroyed {
		return nil
	}
	return taskOf(d.tasks.Front())
}

// Last returns the last task, or nil if the list is empty.
func (d *Document) Last() *Task {
	if d.destroyed {
		return nil
	}
	return taskOf(d.tasks.Back())
}

// Tasks returns the tasks in list order.
func (d *Document) Tasks() []*Task {
	out := make([]*Task, 0, d.Len())
	for t := d.First(); t != nil; t = t.Next() {
		out = append(out, t)
	}
	return out
}

// At returns the task at 0-based position i, or nil when out of range.
func (d *Document) At(i int) *Task {
	if i < 0 || i >= d.Len() {
		return nil
	}
	t := d.First()
	for ; i > 0; i-- {
		t = t.Next()
	}
	return t
}

// Index returns the 0-based position of t, or -1 if t is not in the list.
func (d *Document) Index(t *Task) int {
	if !d.owns(t) {
		return -1
	}
	i := 0
	for cur := d.First(); cur != nil; cur = cur.Next() {
		if cur == t {
			return i
		}
		i++
	}
	return -1
}

// Append adds a task at the end of the list.
func (d *Document) Append(text string, done bool, priority int) (*Task, error) {
	if d.destroyed {
		return nil, ErrDestroyed
	}
	if err := checkLine(text); err != nil {
		return nil, err
	}
	t := &Task{text: text, Done: done, Priority: priority}
	t.elem = d.tasks.PushBack(t)
	t.doc = d
	return t, nil
}

// InsertBefore adds a task immediately before anchor.
func (d *Document) InsertBefore(anchor *Task, text string, done bool, priority int) (*Task, error) {
	if d.destroyed {
		return nil, ErrDestroyed
	}
	if !d.owns(anchor) {
		return nil, ErrForeignTask
	}
	if err := checkLine(text); err != nil {
		return nil, err
	}
	t := &Task{text: text, Done: done, Priority: priority}
	t.elem = d.tasks.InsertBefore(t, anchor.elem)
	t.doc = d
	return t, nil
}

// InsertAfter adds a task immediately after anchor.
func (d *Document) InsertAfter(anchor *Task, text string, done bool, priority int) (*Task, error) {
	if d.destroyed {
		return nil, ErrDestroyed
	}
	if !d.owns(anchor) {
		return nil, ErrForeignTask
	}
	if err := checkLine(text); err != nil {
		return nil, err
	}
	t := &Task{text: text, Done: done, Priority: priority}
	t.elem = d.tasks.InsertAfter(t, anchor.elem)
	t.doc = d
	return t, nil
}

// Delete removes t from the list. The handle is dead afterwards.
func (d *Document) Delete(t *Task) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if !d.owns(t) {
		return ErrForeignTask
	}
	d.tasks.Remove(t.elem)
	t.elem = nil
	t.doc = nil
	return nil
}

// MoveUp swaps t with its predecessor. It is a no-op for the first task.
func (d *Document) MoveUp(t *Task) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if !d.owns(t) {
		return ErrForeignTask
	}
	if prev := t.elem.Prev(); prev != nil {
		d.tasks.MoveBefore(t.elem, prev)
	}
	return nil
}

// MoveDown swaps t with its successor. It is a no-op for the last task.
func (d *Document) MoveDown(t *Task) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if !d.owns(t) {
		return ErrForeignTask
	}
	if next := t.elem.Next(); next != nil {
		d.tasks.MoveAfter(t.elem, next)
	}
	return nil
}

// SetTitle replaces the title.
func (d *Document) SetTitle(title string) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if err := checkLine(title); err != nil {
		return err
	}
	d.Title = title
	return nil
}

// Destroy releases all tasks and options. Every task handle dies and further
// mutations return ErrDestroyed.
func (d *Document) Destroy() {
	if d.destroyed {
		return
	}
	for e := d.tasks.Front(); e != nil; e = e.Next() {
		t := e.Value.(*Task)
		t.elem = nil
		t.doc = nil
	}
	d.tasks.Init()
	d.options = nil
	d.Title = ""
	d.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (d *Document) Destroyed() bool {
	return d.destroyed
}

func (d *Document) owns(t *Task) bool {
	return t != nil && t.doc == d && t.elem != nil
}

func checkLine(s string) error {
	if strings.ContainsRune(s, '\n') {
		return ErrMultiline
	}
	return nil
}
