package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"tasked/internal/commands"
	"tasked/internal/config"
	"tasked/internal/exitcode"
	"tasked/internal/remote"
	"tasked/internal/testutil"
)

const groceries = "Groceries\n[ ] Milk\n[X] Eggs\n[ ] Bread\n"

// testConfig returns a config for a list file holding content.
func testConfig(t *testing.T, content string) *config.Config {
	t.Helper()
	return &config.Config{
		Dir:      t.TempDir(),
		ListFile: testutil.WriteList(t, content),
		Log:      log.New(io.Discard),
	}
}

// runCommand is a helper to run a command against cfg.
func runCommand(t *testing.T, cmd commands.Command, cfg *config.Config, remotes remote.Factory, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	code = cmd.Run(context.Background(), cfg, remotes, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, testConfig(t, ""), nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "tasked 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	reg := commands.NewRegistry()
	if err := reg.Register(&commands.ListCmd{}); err != nil {
		t.Fatal(err)
	}
	cmd := commands.NewHelpCmd(reg)

	stdout, stderr, code := runCommand(t, cmd, testConfig(t, ""), nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
	if !strings.Contains(stdout, "list (ls)") {
		t.Errorf("help output should list registered commands, got %q", stdout)
	}
	if strings.Contains(stdout, "  add") {
		t.Error("help output should only list the given registry")
	}
}

// Tests for list command
func TestListCommand(t *testing.T) {
	cmd := &commands.ListCmd{}

	stdout, stderr, code := runCommand(t, cmd, testConfig(t, groceries), nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "list", stdout)
}

func TestListCommand_Open(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetOpen(true)

	stdout, _, code := runCommand(t, cmd, testConfig(t, groceries), nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	testutil.GoldenString(t, "list_open", stdout)
}

func TestListCommand_Empty(t *testing.T) {
	cmd := &commands.ListCmd{}

	stdout, _, code := runCommand(t, cmd, testConfig(t, "Empty\n"), nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "Empty\n------------\nno tasks found\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	cmd := &commands.ListCmd{}
	cfg := testConfig(t, "Empty\n")
	cfg.Quiet = true

	stdout, _, _ := runCommand(t, cmd, cfg, nil)

	if stdout != "Empty\n------------\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestListCommand_CreatesMissingFile(t *testing.T) {
	cmd := &commands.ListCmd{}
	cfg := testConfig(t, "")
	cfg.ListFile = filepath.Join(t.TempDir(), "new.txt")

	_, stderr, code := runCommand(t, cmd, cfg, nil)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d: %s", exitcode.Success, code, stderr)
	}
	if got := testutil.ReadList(t, cfg.ListFile); got != "" {
		t.Errorf("expected an empty file, got %q", got)
	}
}

func TestListCommand_UnreadableFile(t *testing.T) {
	cmd := &commands.ListCmd{}
	cfg := testConfig(t, "")
	cfg.ListFile = filepath.Join(t.TempDir(), "missing", "todo.txt")

	_, stderr, code := runCommand(t, cmd, cfg, nil)

	if code != exitcode.IOError {
		t.Errorf("expected exit code %d, got %d", exitcode.IOError, code)
	}
	if !strings.HasPrefix(stderr, "error: ") {
		t.Errorf("expected error message, got %q", stderr)
	}
}

func TestListCommand_UnexpectedArgument(t *testing.T) {
	cmd := &commands.ListCmd{}

	_, stderr, code := runCommand(t, cmd, testConfig(t, groceries), nil, "extra")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unexpected argument: extra\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	tests := []struct {
		name   string
		top    bool
		before int
		args   []string
		want   string
	}{
		{"append", false, 0, []string{"Butter"}, "Groceries\n[ ] Milk\n[X] Eggs\n[ ] Bread\n[ ] Butter\n"},
		{"joins words", false, 0, []string{"Oat", "milk"}, "Groceries\n[ ] Milk\n[X] Eggs\n[ ] Bread\n[ ] Oat milk\n"},
		{"top", true, 0, []string{"Butter"}, "Groceries\n[ ] Butter\n[ ] Milk\n[X] Eggs\n[ ] Bread\n"},
		{"before", false, 3, []string{"Butter"}, "Groceries\n[ ] Milk\n[X] Eggs\n[ ] Butter\n[ ] Bread\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &commands.AddCmd{}
			cmd.SetTop(tt.top)
			cmd.SetBefore(tt.before)
			cfg := testConfig(t, groceries)

			stdout, stderr, code := runCommand(t, cmd, cfg, nil, tt.args...)

			if code != exitcode.Success {
				t.Fatalf("expected exit code %d, got %d: %s", exitcode.Success, code, stderr)
			}
			if stdout != "ok\n" {
				t.Errorf("expected 'ok\\n', got %q", stdout)
			}
			if got := testutil.ReadList(t, cfg.ListFile); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAddCommand_TopOfEmptyList(t *testing.T) {
	cmd := &commands.AddCmd{}
	cmd.SetTop(true)
	cfg := testConfig(t, "Empty\n")

	_, _, code := runCommand(t, cmd, cfg, nil, "First")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got := testutil.ReadList(t, cfg.ListFile); got != "Empty\n[ ] First\n" {
		t.Errorf("unexpected list %q", got)
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	cmd := &commands.AddCmd{}
	cfg := testConfig(t, groceries)
	cfg.Quiet = true

	stdout, _, code := runCommand(t, cmd, cfg, nil, "Butter")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
}

func TestAddCommand_Errors(t *testing.T) {
	tests := []struct {
		name   string
		top    bool
		before int
		args   []string
		want   string
	}{
		{"no text", false, 0, nil, "error: task text required\n"},
		{"blank text", false, 0, []string{"  "}, "error: task text required\n"},
		{"top and before", true, 2, []string{"x"}, "error: cannot use both --top and --before\n"},
		{"before out of range", false, 9, []string{"x"}, "error: task number out of range: 9\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &commands.AddCmd{}
			cmd.SetTop(tt.top)
			cmd.SetBefore(tt.before)
			cfg := testConfig(t, groceries)

			_, stderr, code := runCommand(t, cmd, cfg, nil, tt.args...)

			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.want {
				t.Errorf("expected %q, got %q", tt.want, stderr)
			}
			if got := testutil.ReadList(t, cfg.ListFile); got != groceries {
				t.Errorf("list should be unchanged, got %q", got)
			}
		})
	}
}

// Tests for done command
func TestDoneCommand_Toggles(t *testing.T) {
	cmd := &commands.DoneCmd{}
	cfg := testConfig(t, groceries)

	if _, _, code := runCommand(t, cmd, cfg, nil, "1"); code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if _, _, code := runCommand(t, cmd, cfg, nil, "2"); code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}

	want := "Groceries\n[X] Milk\n[ ] Eggs\n[ ] Bread\n"
	if got := testutil.ReadList(t, cfg.ListFile); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTaskCommands_BadReference(t *testing.T) {
	tests := []struct {
		name string
		cmd  commands.Command
		args []string
		want string
	}{
		{"done missing", &commands.DoneCmd{}, nil, "error: task number required\n"},
		{"done letters", &commands.DoneCmd{}, []string{"a1"}, "error: invalid task number: a1\n"},
		{"done zero", &commands.DoneCmd{}, []string{"0"}, "error: task number out of range: 0\n"},
		{"rm past end", &commands.RmCmd{}, []string{"4"}, "error: task number out of range: 4\n"},
		{"mv past end", &commands.MvCmd{}, []string{"7", "up"}, "error: task number out of range: 7\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, groceries)

			_, stderr, code := runCommand(t, tt.cmd, cfg, nil, tt.args...)

			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.want {
				t.Errorf("expected %q, got %q", tt.want, stderr)
			}
		})
	}
}

// Tests for rm command
func TestRmCommand(t *testing.T) {
	cmd := &commands.RmCmd{}
	cfg := testConfig(t, groceries)

	stdout, _, code := runCommand(t, cmd, cfg, nil, "2")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	want := "Groceries\n[ ] Milk\n[ ] Bread\n"
	if got := testutil.ReadList(t, cfg.ListFile); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// Tests for mv command
func TestMvCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"2", "up"}, "Groceries\n[X] Eggs\n[ ] Milk\n[ ] Bread\n"},
		{[]string{"2", "down"}, "Groceries\n[ ] Milk\n[ ] Bread\n[X] Eggs\n"},
		{[]string{"1", "up"}, groceries},
		{[]string{"3", "down"}, groceries},
	}
	for _, tt := range tests {
		cmd := &commands.MvCmd{}
		cfg := testConfig(t, groceries)

		_, stderr, code := runCommand(t, cmd, cfg, nil, tt.args...)

		if code != exitcode.Success {
			t.Fatalf("%v: expected exit code %d, got %d: %s", tt.args, exitcode.Success, code, stderr)
		}
		if got := testutil.ReadList(t, cfg.ListFile); got != tt.want {
			t.Errorf("%v: expected %q, got %q", tt.args, tt.want, got)
		}
	}
}

func TestMvCommand_Direction(t *testing.T) {
	cmd := &commands.MvCmd{}

	_, stderr, code := runCommand(t, cmd, testConfig(t, groceries), nil, "1")
	if code != exitcode.UserError || stderr != "error: direction required (up or down)\n" {
		t.Errorf("unexpected result %d %q", code, stderr)
	}

	_, stderr, code = runCommand(t, cmd, testConfig(t, groceries), nil, "1", "sideways")
	if code != exitcode.UserError || stderr != "error: invalid direction: sideways\n" {
		t.Errorf("unexpected result %d %q", code, stderr)
	}
}

// Tests for title command
func TestTitleCommand(t *testing.T) {
	cmd := &commands.TitleCmd{}
	cfg := testConfig(t, groceries)

	stdout, _, code := runCommand(t, cmd, cfg, nil)
	if code != exitcode.Success || stdout != "Groceries\n" {
		t.Errorf("unexpected result %d %q", code, stdout)
	}

	stdout, _, code = runCommand(t, cmd, cfg, nil, "Weekend", "shop")
	if code != exitcode.Success || stdout != "ok\n" {
		t.Errorf("unexpected result %d %q", code, stdout)
	}
	if got := testutil.ReadList(t, cfg.ListFile); !strings.HasPrefix(got, "Weekend shop\n[ ] Milk\n") {
		t.Errorf("unexpected list %q", got)
	}
}

// Tests for opt command
func TestOptCommand(t *testing.T) {
	cfg := testConfig(t, "L\n# autosync=1\n[ ] a\n")

	stdout, _, code := runCommand(t, &commands.OptCmd{}, cfg, nil)
	if code != exitcode.Success || stdout != "autosync=1\n" {
		t.Errorf("list: unexpected result %d %q", code, stdout)
	}

	_, _, code = runCommand(t, &commands.OptCmd{}, cfg, nil, "origin", "http://h/l")
	if code != exitcode.Success {
		t.Errorf("set: expected exit code %d, got %d", exitcode.Success, code)
	}

	stdout, _, code = runCommand(t, &commands.OptCmd{}, cfg, nil, "origin")
	if code != exitcode.Success || stdout != "http://h/l\n" {
		t.Errorf("get: unexpected result %d %q", code, stdout)
	}

	unset := &commands.OptCmd{}
	unset.SetUnset(true)
	_, _, code = runCommand(t, unset, cfg, nil, "autosync")
	if code != exitcode.Success {
		t.Errorf("unset: expected exit code %d, got %d", exitcode.Success, code)
	}

	want := "L\n# origin=http://h/l\n[ ] a\n"
	if got := testutil.ReadList(t, cfg.ListFile); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestOptCommand_Errors(t *testing.T) {
	cfg := testConfig(t, groceries)

	_, stderr, code := runCommand(t, &commands.OptCmd{}, cfg, nil, "missing")
	if code != exitcode.UserError || stderr != "error: option not set: missing\n" {
		t.Errorf("get: unexpected result %d %q", code, stderr)
	}

	unset := &commands.OptCmd{}
	unset.SetUnset(true)
	_, stderr, code = runCommand(t, unset, cfg, nil, "missing")
	if code != exitcode.UserError || stderr != "error: option not set: missing\n" {
		t.Errorf("unset: unexpected result %d %q", code, stderr)
	}

	_, stderr, code = runCommand(t, unset, cfg, nil)
	if code != exitcode.UserError || stderr != "error: --unset takes exactly one key\n" {
		t.Errorf("unset no key: unexpected result %d %q", code, stderr)
	}
}

func TestOptCommand_EmptyKey(t *testing.T) {
	content := "L\n# origin=http://h/l autosync=1\n[ ] a\n"
	cfg := testConfig(t, content)

	_, stderr, code := runCommand(t, &commands.OptCmd{}, cfg, nil, "", "x")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: option key must not be empty\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if got := testutil.ReadList(t, cfg.ListFile); got != content {
		t.Errorf("list should be unchanged, got %q", got)
	}
}

// Tests for pull and push commands
func TestPullCommand(t *testing.T) {
	fake := testutil.NewFakeTransport("Remote\n[X] x\n[ ] y\n")
	cfg := testConfig(t, "Local\n# origin=http://h/l\n[ ] a\n")

	stdout, stderr, code := runCommand(t, &commands.PullCmd{}, cfg, fake.Factory())

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d: %s", exitcode.Success, code, stderr)
	}
	if stdout != "pulled 2 task(s)\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if len(fake.Origins) != 1 || fake.Origins[0] != "http://h/l" {
		t.Errorf("expected origin to be opened, got %v", fake.Origins)
	}
	want := "Remote\n# origin=http://h/l\n[X] x\n[ ] y\n"
	if got := testutil.ReadList(t, cfg.ListFile); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPushCommand(t *testing.T) {
	fake := testutil.NewFakeTransport("")
	content := "Local\n# origin=http://h/l\n[ ] a\n[X] b\n"
	cfg := testConfig(t, content)

	stdout, stderr, code := runCommand(t, &commands.PushCmd{}, cfg, fake.Factory())

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d: %s", exitcode.Success, code, stderr)
	}
	if stdout != "pushed 2 task(s)\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if fake.Content() != content {
		t.Errorf("expected %q, got %q", content, fake.Content())
	}
	if got := testutil.ReadList(t, cfg.ListFile); got != content {
		t.Errorf("local list should be unchanged, got %q", got)
	}
}

func TestSyncCommands_NoOrigin(t *testing.T) {
	for _, cmd := range []commands.Command{&commands.PullCmd{}, &commands.PushCmd{}} {
		fake := testutil.NewFakeTransport("")

		_, stderr, code := runCommand(t, cmd, testConfig(t, groceries), fake.Factory())

		if code != exitcode.UserError {
			t.Errorf("%s: expected exit code %d, got %d", cmd.Name(), exitcode.UserError, code)
		}
		if stderr != "error: "+remote.ErrNoOrigin.Error()+"\n" {
			t.Errorf("%s: unexpected stderr %q", cmd.Name(), stderr)
		}
		if len(fake.Origins) != 0 {
			t.Errorf("%s: transport should not be opened", cmd.Name())
		}
	}
}

func TestSyncCommands_TransportFailure(t *testing.T) {
	content := "L\n# origin=http://h/l\n[ ] a\n"

	pullFake := testutil.NewFakeTransport("R\n")
	pullFake.PullErr = errors.New("connection refused")
	cfg := testConfig(t, content)
	_, stderr, code := runCommand(t, &commands.PullCmd{}, cfg, pullFake.Factory())
	if code != exitcode.SyncError || stderr != "error: connection refused\n" {
		t.Errorf("pull: unexpected result %d %q", code, stderr)
	}
	if got := testutil.ReadList(t, cfg.ListFile); got != content {
		t.Errorf("pull: local list should be unchanged, got %q", got)
	}

	pushFake := testutil.NewFakeTransport("")
	pushFake.OpenErr = errors.New("no route")
	_, stderr, code = runCommand(t, &commands.PushCmd{}, testConfig(t, content), pushFake.Factory())
	if code != exitcode.SyncError || stderr != "error: no route\n" {
		t.Errorf("push: unexpected result %d %q", code, stderr)
	}
}
