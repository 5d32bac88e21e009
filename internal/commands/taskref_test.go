package commands

import (
	"errors"
	"testing"

	"tasked/internal/todo"
)

func TestParseTaskRef(t *testing.T) {
	num, err := ParseTaskRef([]string{"5", "ignored"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != 5 {
		t.Errorf("expected 5, got %d", num)
	}
}

func TestParseTaskRef_Missing(t *testing.T) {
	_, err := ParseTaskRef(nil)
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_Invalid(t *testing.T) {
	for _, ref := range []string{"a1", "-1", "1.5", "", "٣", "99999999999999999999"} {
		_, err := ParseTaskRef([]string{ref})
		if err == nil {
			t.Errorf("expected error for %q", ref)
			continue
		}
		expected := "invalid task number: " + ref
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	}
}

func TestTaskAt(t *testing.T) {
	doc := todo.New("L")
	first, _ := doc.Append("a", false, 0)
	second, _ := doc.Append("b", false, 0)

	if got, err := TaskAt(doc, 1); err != nil || got != first {
		t.Errorf("expected first task, got %v, %v", got, err)
	}
	if got, err := TaskAt(doc, 2); err != nil || got != second {
		t.Errorf("expected second task, got %v, %v", got, err)
	}
	for _, num := range []int{0, -1, 3} {
		_, err := TaskAt(doc, num)
		if err == nil {
			t.Errorf("expected error for %d", num)
		}
	}
}
