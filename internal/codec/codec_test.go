package codec_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tasked/internal/codec"
	"tasked/internal/stream"
	"tasked/internal/todo"
)

type taskView struct {
	Text string
	Done bool
}

type docView struct {
	Title   string
	Tasks   []taskView
	Options []todo.Option
}

func view(d *todo.Document) docView {
	v := docView{Title: d.Title, Tasks: []taskView{}, Options: d.Options()}
	for _, t := range d.Tasks() {
		v.Tasks = append(v.Tasks, taskView{Text: t.Text(), Done: t.Done})
	}
	return v
}

func mustUnmarshal(t *testing.T, text string) *todo.Document {
	t.Helper()
	doc, err := codec.Unmarshal(text)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return doc
}

func TestUnmarshal_Groceries(t *testing.T) {
	input := "Groceries\n[ ] Milk\n[X] Eggs\n"
	doc := mustUnmarshal(t, input)

	want := docView{
		Title:   "Groceries",
		Tasks:   []taskView{{"Milk", false}, {"Eggs", true}},
		Options: []todo.Option{},
	}
	if diff := cmp.Diff(want, view(doc)); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
	if got := codec.Marshal(doc); got != input {
		t.Errorf("expected byte-identical output %q, got %q", input, got)
	}
}

func TestUnmarshal_EscapedOption(t *testing.T) {
	doc := mustUnmarshal(t, "My list\n# autosync=1 origin=http://x\\ y\n[ ] Buy milk\n")

	want := docView{
		Title: "My list",
		Tasks: []taskView{{"Buy milk", false}},
		Options: []todo.Option{
			{Key: "autosync", Value: "1"},
			{Key: "origin", Value: "http://x y"},
		},
	}
	if diff := cmp.Diff(want, view(doc)); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshal_Lenient(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  docView
	}{
		{
			name:  "empty input",
			input: "",
			want:  docView{Tasks: []taskView{}, Options: []todo.Option{}},
		},
		{
			name:  "title without newline",
			input: "Only title",
			want:  docView{Title: "Only title", Tasks: []taskView{}, Options: []todo.Option{}},
		},
		{
			name:  "lowercase x and blank lines",
			input: "T\n\n\n  [x] indented\n",
			want:  docView{Title: "T", Tasks: []taskView{{"indented", true}}, Options: []todo.Option{}},
		},
		{
			name:  "one space after bracket separates the text",
			input: "T\n[ ]    spaced out\n",
			want:  docView{Title: "T", Tasks: []taskView{{"   spaced out", false}}, Options: []todo.Option{}},
		},
		{
			name:  "no space after bracket",
			input: "T\n[X]tight\n",
			want:  docView{Title: "T", Tasks: []taskView{{"tight", true}}, Options: []todo.Option{}},
		},
		{
			name:  "empty task text keeps the next line",
			input: "T\n[ ] \n[ ]\n[X] B\n",
			want:  docView{Title: "T", Tasks: []taskView{{"", false}, {"", false}, {"B", true}}, Options: []todo.Option{}},
		},
		{
			name:  "garbage lines skipped",
			input: "T\nnot a task\n[?] bad mark\n[X bad close\n[ ] good\n",
			want:  docView{Title: "T", Tasks: []taskView{{"good", false}}, Options: []todo.Option{}},
		},
		{
			name:  "bare key is true",
			input: "T\n# autosync\n",
			want:  docView{Title: "T", Tasks: []taskView{}, Options: []todo.Option{{Key: "autosync", Value: "1"}}},
		},
		{
			name:  "spaces around equals",
			input: "T\n# origin = http://a\n",
			want:  docView{Title: "T", Tasks: []taskView{}, Options: []todo.Option{{Key: "origin", Value: "http://a"}}},
		},
		{
			name:  "option lines anywhere accumulate",
			input: "T\n# a=1\n[ ] one\n# b=2 a=3\n[X] two\n",
			want: docView{
				Title:   "T",
				Tasks:   []taskView{{"one", false}, {"two", true}},
				Options: []todo.Option{{Key: "a", Value: "3"}, {Key: "b", Value: "2"}},
			},
		},
		{
			name:  "empty value",
			input: "T\n# k=\n",
			want:  docView{Title: "T", Tasks: []taskView{}, Options: []todo.Option{{Key: "k", Value: ""}}},
		},
		{
			name:  "trailing backslash at eof",
			input: "T\n# k=v\\",
			want:  docView{Title: "T", Tasks: []taskView{}, Options: []todo.Option{{Key: "k", Value: "v"}}},
		},
		{
			name:  "task text is not unescaped",
			input: "T\n[ ] a\\ b=c\n",
			want:  docView{Title: "T", Tasks: []taskView{{`a\ b=c`, false}}, Options: []todo.Option{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustUnmarshal(t, tt.input)
			if diff := cmp.Diff(tt.want, view(doc)); diff != "" {
				t.Errorf("document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	doc := todo.New("Weekend")
	for i, text := range []string{"Paint fence", "", "Call [mum]", "  indented", "ünïcode ✓", "# not an option", "\ttab first", "trailing  "} {
		if _, err := doc.Append(text, i%2 == 1, 0); err != nil {
			t.Fatal(err)
		}
	}
	values := map[string]string{
		"origin":   "https://example.com/a list?x=1",
		"autosync": "1",
		"weird":    "back\\slash\nnew line\ttab",
		"k=ey":     "",
	}
	for _, k := range []string{"origin", "autosync", "weird", "k=ey"} {
		if err := doc.SetOption(k, values[k]); err != nil {
			t.Fatal(err)
		}
	}

	out := codec.Marshal(doc)
	back := mustUnmarshal(t, out)
	if diff := cmp.Diff(view(doc), view(back)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s\nserialized:\n%s", diff, out)
	}
}

func TestMarshal_RoundTripEmptyTextBeforeDoneTask(t *testing.T) {
	doc := todo.New("T")
	if _, err := doc.Append("", false, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.Append("B", true, 0); err != nil {
		t.Fatal(err)
	}

	out := codec.Marshal(doc)
	if out != "T\n[ ] \n[X] B\n" {
		t.Errorf("unexpected serialization %q", out)
	}
	back := mustUnmarshal(t, out)
	want := []taskView{{"", false}, {"B", true}}
	if diff := cmp.Diff(want, view(back).Tasks); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_WrapsLongOptionBlock(t *testing.T) {
	doc := todo.New("T")
	for i := 0; i < 12; i++ {
		key := strings.Repeat(string(rune('a'+i)), 6)
		if err := doc.SetOption(key, strings.Repeat("v", 10)); err != nil {
			t.Fatal(err)
		}
	}

	out := codec.Marshal(doc)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected the option block to wrap, got:\n%s", out)
	}
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, "# ") {
			t.Errorf("expected continuation line to start with %q, got %q", "# ", line)
		}
	}

	back := mustUnmarshal(t, out)
	if diff := cmp.Diff(doc.Options(), back.Options()); diff != "" {
		t.Errorf("options mismatch after wrap (-want +got):\n%s", diff)
	}
}

func TestMarshal_NoOptionLineWithoutOptions(t *testing.T) {
	doc := todo.New("Plain")
	if _, err := doc.Append("one", false, 0); err != nil {
		t.Fatal(err)
	}
	if got := codec.Marshal(doc); got != "Plain\n[ ] one\n" {
		t.Errorf("expected %q, got %q", "Plain\n[ ] one\n", got)
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a b", `a\ b`},
		{"a=b", `a\=b`},
		{`a\b`, `a\\b`},
		{"a\nb", "a\\\nb"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := codec.Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q): expected %q, got %q", tt.in, tt.want, got)
		}
		if got := codec.Unescape(codec.Escape(tt.in)); got != tt.in {
			t.Errorf("Unescape(Escape(%q)): got %q", tt.in, got)
		}
	}
}

func TestUnescape_TrailingBackslash(t *testing.T) {
	if got := codec.Unescape(`abc\`); got != "abc" {
		t.Errorf("expected %q, got %q", "abc", got)
	}
}

func TestNewReader(t *testing.T) {
	doc := mustUnmarshal(t, "Groceries\n[ ] Milk\n")
	data, err := io.ReadAll(codec.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "Groceries\n[ ] Milk\n" {
		t.Errorf("expected %q, got %q", "Groceries\n[ ] Milk\n", data)
	}
}

func TestParse_FileStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.txt")
	if err := os.WriteFile(path, []byte("File\n# k=v\n[X] done\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := stream.OpenFile(path, stream.ModeRead)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	doc, err := codec.Parse(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := docView{
		Title:   "File",
		Tasks:   []taskView{{"done", true}},
		Options: []todo.Option{{Key: "k", Value: "v"}},
	}
	if diff := cmp.Diff(want, view(doc)); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingFileIsCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")

	doc, err := codec.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "" || doc.Len() != 0 {
		t.Errorf("expected empty document, got %+v", view(doc))
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected file to be created: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("expected empty file, got %d bytes", info.Size())
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "todo.txt")
	_, err := codec.Load(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("expected error to name %q, got %q", path, err.Error())
	}
}

func TestSave(t *testing.T) {
	for _, direct := range []bool{false, true} {
		name := "atomic"
		if direct {
			name = "direct"
		}
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "todo.txt")
			if err := os.WriteFile(path, []byte("old content that is much longer than the new one\n"), 0o644); err != nil {
				t.Fatal(err)
			}

			doc := mustUnmarshal(t, "Groceries\n# autosync=1\n[ ] Milk\n[X] Eggs\n")
			if err := codec.SaveWith(doc, path, codec.SaveOptions{Direct: direct}); err != nil {
				t.Fatalf("save failed: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			want := "Groceries\n# autosync=1\n[ ] Milk\n[X] Eggs\n"
			if string(data) != want {
				t.Errorf("expected %q, got %q", want, data)
			}

			back, err := codec.Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(view(doc), view(back)); diff != "" {
				t.Errorf("load after save mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSave_UnwritableDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "todo.txt")
	if err := codec.Save(todo.New("x"), path); err == nil {
		t.Error("expected error saving into a missing directory")
	}
}
