package googletasks

import (
	"slices"
	"strings"

	tasks "google.golang.org/api/tasks/v1"

	"tasked/internal/todo"
)

// Change sets the status of an existing remote task.
type Change struct {
	ID   string
	Done bool
}

// Insertion creates a remote task. The task goes after the remote task
// After, or after the task created by Plan.Insert[AfterInsert] when
// AfterInsert is not negative, or first when neither is set.
type Insertion struct {
	Title       string
	Done        bool
	After       string
	AfterInsert int
}

// Ref names the remote task for one local task: an existing remote ID, or
// Plan.Insert[Insert] when ID is empty.
type Ref struct {
	ID     string
	Insert int
}

// Move places remote task ID directly after After, or first when After is
// empty.
type Move struct {
	ID    string
	After string
}

// Plan is the set of API calls that makes a remote list match a document.
type Plan struct {
	Patch  []Change
	Insert []Insertion
	Delete []string

	// Order lists the remote task of every local task in document order.
	Order []Ref

	// Reorder is set when matched tasks appear in a different relative order
	// locally, so tasks must be moved after the inserts and deletes.
	Reorder bool
}

// Empty reports whether the plan makes no changes.
func (p Plan) Empty() bool {
	return len(p.Patch) == 0 && len(p.Insert) == 0 && len(p.Delete) == 0 && !p.Reorder
}

// Reconcile compares the remote tasks with doc. Tasks are matched by title in
// order, each remote task matching at most one local task.
func Reconcile(remote []*tasks.Task, doc *todo.Document) Plan {
	var plan Plan
	used := make([]bool, len(remote))
	after, afterInsert := "", -1
	lastMatched := -1

	for t := doc.First(); t != nil; t = t.Next() {
		idx := -1
		for i, r := range remote {
			if !used[i] && normalizeTitle(r.Title) == t.Text() {
				idx = i
				break
			}
		}

		if idx < 0 {
			plan.Insert = append(plan.Insert, Insertion{
				Title:       t.Text(),
				Done:        t.Done,
				After:       after,
				AfterInsert: afterInsert,
			})
			after, afterInsert = "", len(plan.Insert)-1
			plan.Order = append(plan.Order, Ref{Insert: afterInsert})
			continue
		}

		used[idx] = true
		r := remote[idx]
		plan.Order = append(plan.Order, Ref{ID: r.Id, Insert: -1})
		if idx < lastMatched {
			plan.Reorder = true
		}
		lastMatched = idx
		if (r.Status == statusCompleted) != t.Done {
			plan.Patch = append(plan.Patch, Change{ID: r.Id, Done: t.Done})
		}
		after, afterInsert = r.Id, -1
	}

	for i, r := range remote {
		if !used[i] {
			plan.Delete = append(plan.Delete, r.Id)
		}
	}
	return plan
}

// Reorder returns the moves that turn the remote order current into want.
// Each task in want ends up directly after its predecessor in want; IDs of
// current missing from want end up after all of them.
func Reorder(current, want []string) []Move {
	order := slices.Clone(current)
	var moves []Move
	prev := ""
	for _, id := range want {
		pos := slices.Index(order, id)
		target := 0
		if prev != "" {
			target = slices.Index(order, prev) + 1
		}
		if pos != target {
			if pos >= 0 {
				order = slices.Delete(order, pos, pos+1)
			}
			if prev != "" {
				target = slices.Index(order, prev) + 1
			}
			order = slices.Insert(order, target, id)
			moves = append(moves, Move{ID: id, After: prev})
		}
		prev = id
	}
	return moves
}

// ToDocument builds a document from a remote list. Deleted tasks are
// skipped; line breaks in titles become spaces.
func ToDocument(title string, items []*tasks.Task) (*todo.Document, error) {
	doc := todo.New(normalizeTitle(title))
	for _, item := range items {
		if item.Deleted {
			continue
		}
		if _, err := doc.Append(normalizeTitle(item.Title), item.Status == statusCompleted, 0); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// normalizeTitle makes a remote title fit on one line.
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r\n", " ")
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	return strings.TrimSpace(title)
}
