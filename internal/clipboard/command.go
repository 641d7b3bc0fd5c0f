package clipboard

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

var (
	execCommandFn = exec.Command
	lookPathFn    = exec.LookPath
	getenvFn      = os.Getenv
)

// candidate clipboard programs, in priority order.
var clipboardCommands = [][]string{
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"wl-copy"},
}

// CommandWriter pipes text into an external clipboard program's stdin.
type CommandWriter struct {
	name string
	args []string
}

// NewCommandWriter parses a command line such as "xclip -selection clipboard".
func NewCommandWriter(command string) (*CommandWriter, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("clipboard command is empty")
	}
	return &CommandWriter{name: fields[0], args: fields[1:]}, nil
}

// Name returns the program name.
func (w *CommandWriter) Name() string {
	return w.name
}

// Write starts the program, writes text to its stdin and waits for it to
// exit. stdout and stderr stay on the null device so that Wait returns when
// the program exits even if it forked a child to own the selection.
func (w *CommandWriter) Write(text string) error {
	cmd := execCommandFn(w.name, w.args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%s: %w", w.name, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s: %w", w.name, err)
	}

	_, writeErr := io.WriteString(stdin, text)
	closeErr := stdin.Close()
	waitErr := cmd.Wait()

	switch {
	case writeErr != nil:
		return fmt.Errorf("%s: write: %w", w.name, writeErr)
	case closeErr != nil:
		return fmt.Errorf("%s: close stdin: %w", w.name, closeErr)
	case waitErr != nil:
		return fmt.Errorf("%s: %w", w.name, waitErr)
	}
	return nil
}

// DetectCommand returns the first clipboard program found in PATH. wl-copy
// is preferred when a Wayland session is detected.
func DetectCommand() (*CommandWriter, error) {
	candidates := clipboardCommands
	if getenvFn("WAYLAND_DISPLAY") != "" {
		candidates = append([][]string{{"wl-copy"}}, candidates...)
	}
	for _, c := range candidates {
		if _, err := lookPathFn(c[0]); err == nil {
			return &CommandWriter{name: c[0], args: c[1:]}, nil
		}
	}
	return nil, fmt.Errorf("no clipboard program found in PATH (looked for: xclip, xsel, wl-copy)")
}

// detectingWriter resolves the clipboard program on first use.
type detectingWriter struct {
	resolved *CommandWriter
}

func (w *detectingWriter) Name() string {
	if w.resolved != nil {
		return w.resolved.Name()
	}
	return BackendCommand
}

func (w *detectingWriter) Write(text string) error {
	if w.resolved == nil {
		cw, err := DetectCommand()
		if err != nil {
			return err
		}
		w.resolved = cw
	}
	return w.resolved.Write(text)
}
