package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/pico/internal/config"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func stubSave(t *testing.T, err error) *[]string {
	t.Helper()
	var paths []string
	orig := saveConfigFn
	saveConfigFn = func(cfg *config.Config, path string) error {
		paths = append(paths, path)
		return err
	}
	t.Cleanup(func() { saveConfigFn = orig })
	return &paths
}

func TestFieldsRoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DefaultFormat = "RGB"
	cfg.LogLevel = "warning"
	cfg.TimeoutSeconds = 15

	f := fieldsFromConfig(cfg)
	if f.defaultFormat != "rgb" || f.logLevel != "warn" || f.timeout != "15" {
		t.Fatalf("fieldsFromConfig() = %+v", f)
	}

	got, err := f.apply(cfg)
	if err != nil {
		t.Fatalf("apply() error: %v", err)
	}
	if got == cfg {
		t.Fatal("apply() must not modify the base config in place")
	}
	if got.TimeoutSeconds != 15 || got.DefaultFormat != "rgb" {
		t.Fatalf("apply() = %+v", got)
	}
}

func TestFieldsApply(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(f *formFields)
		check   func(t *testing.T, cfg *config.Config)
		wantErr bool
	}{
		{
			name:  "empty timeout waits forever",
			edit:  func(f *formFields) { f.timeout = "  " },
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.TimeoutSeconds != 0 {
					t.Fatalf("timeout = %d, want 0", cfg.TimeoutSeconds)
				}
			},
		},
		{
			name:    "negative timeout",
			edit:    func(f *formFields) { f.timeout = "-3" },
			wantErr: true,
		},
		{
			name:    "non-numeric timeout",
			edit:    func(f *formFields) { f.timeout = "soon" },
			wantErr: true,
		},
		{
			name:    "blank hotkey",
			edit:    func(f *formFields) { f.hotkey = " " },
			wantErr: true,
		},
		{
			name: "command dropped for non-command backend",
			edit: func(f *formFields) {
				f.clipboardBackend = "osc52"
				f.clipboardCommand = "xsel -ib"
			},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Clipboard.Command != "" {
					t.Fatalf("clipboard.command = %q, want empty", cfg.Clipboard.Command)
				}
			},
		},
		{
			name:  "display trimmed",
			edit:  func(f *formFields) { f.display = " :1 " },
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Display != ":1" {
					t.Fatalf("display = %q, want :1", cfg.Display)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := config.DefaultConfig()
			f := fieldsFromConfig(base)
			tt.edit(f)
			got, err := f.apply(base)
			if (err != nil) != tt.wantErr {
				t.Fatalf("apply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestComputeDiffLines(t *testing.T) {
	a := config.DefaultConfig()
	if lines := computeDiffLines(a, a.Clone()); lines != nil {
		t.Fatalf("identical configs produced diff %+v", lines)
	}

	b := a.Clone()
	b.Swatch = config.SwatchNever
	lines := computeDiffLines(a, b)

	var removed, added []string
	for _, l := range lines {
		switch l.kind {
		case diffRemoved:
			removed = append(removed, l.text)
		case diffAdded:
			added = append(added, l.text)
		}
	}
	if len(removed) != 1 || removed[0] != "swatch: always" {
		t.Fatalf("removed = %v", removed)
	}
	if len(added) != 1 || added[0] != "swatch: never" {
		t.Fatalf("added = %v", added)
	}
}

func TestFilterDiffContextElides(t *testing.T) {
	var lines []diffLine
	for i := 0; i < 10; i++ {
		lines = append(lines, diffLine{kind: diffContext, text: "ctx"})
	}
	lines[8] = diffLine{kind: diffAdded, text: "new"}

	got := filterDiffContext(lines, 2)
	if len(got) == 0 || got[0].text != "..." {
		t.Fatalf("expected leading ellipsis, got %+v", got)
	}
	if len(got) != 5 {
		t.Fatalf("kept %d lines, want 5 (ellipsis + 2 ctx + change + 1 ctx)", len(got))
	}
}

func TestModelSaveFlow(t *testing.T) {
	paths := stubSave(t, nil)
	path := filepath.Join(t.TempDir(), "config.yaml")

	m := newModel(path, config.DefaultConfig())
	m.fields.notify = true
	m = m.submit()
	if m.phase != phasePreview {
		t.Fatalf("phase = %v, want preview (err %v)", m.phase, m.err)
	}
	if !strings.Contains(m.viewPreview(), "notify: true") {
		t.Fatalf("preview missing change:\n%s", m.viewPreview())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	if m.phase != phaseResult || !m.saved || m.err != nil {
		t.Fatalf("after enter: phase=%v saved=%v err=%v", m.phase, m.saved, m.err)
	}
	if len(*paths) != 1 || (*paths)[0] != path {
		t.Fatalf("save calls = %v", *paths)
	}

	_, cmd := m.Update(keyRune('x'))
	if cmd == nil {
		t.Fatal("any key on the result screen should quit")
	}
}

func TestPreviewScrollsToFirstChangeOnShortTerminal(t *testing.T) {
	stubSave(t, nil)

	m := newModel("config.yaml", config.DefaultConfig())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	m = next.(model)
	m.fields.clipboardEnabled = false
	m = m.submit()
	if m.phase != phasePreview {
		t.Fatalf("phase = %v, want preview (err %v)", m.phase, m.err)
	}

	if m.diff[m.scroll].kind == diffContext {
		t.Fatalf("scroll = %d points at context line %q", m.scroll, m.diff[m.scroll].text)
	}
	view := m.viewPreview()
	if !strings.Contains(view, "enabled: false") {
		t.Fatalf("preview on a 12-row terminal hides the change:\n%s", view)
	}
}

func TestModelPreviewBack(t *testing.T) {
	paths := stubSave(t, nil)

	m := newModel("config.yaml", config.DefaultConfig())
	m.fields.swatch = config.SwatchAuto
	m = m.submit()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(model)
	if m.phase != phaseEditing || m.pending != nil {
		t.Fatalf("esc should return to the form, phase=%v", m.phase)
	}
	if m.fields.swatch != config.SwatchAuto {
		t.Fatal("edits should survive going back to the form")
	}
	if len(*paths) != 0 {
		t.Fatalf("nothing should be saved, got %v", *paths)
	}
}

func TestModelNoChanges(t *testing.T) {
	stubSave(t, nil)
	m := newModel("config.yaml", config.DefaultConfig()).submit()
	if m.phase != phaseResult || !errors.Is(m.err, errNoChanges) {
		t.Fatalf("phase=%v err=%v, want result with errNoChanges", m.phase, m.err)
	}
	if !strings.Contains(m.viewResult(), "No changes") {
		t.Fatalf("result view = %q", m.viewResult())
	}
}

func TestModelSaveError(t *testing.T) {
	stubSave(t, errors.New("read-only file system"))
	m := newModel("config.yaml", config.DefaultConfig())
	m.fields.defaultFormat = "hsl"
	m = m.submit()

	next, _ := m.Update(keyRune('y'))
	m = next.(model)
	if m.saved || m.err == nil {
		t.Fatalf("saved=%v err=%v, want failure", m.saved, m.err)
	}
	if !strings.Contains(m.viewResult(), "read-only") {
		t.Fatalf("result view should show error: %q", m.viewResult())
	}
}

func TestRunRequiresTerminal(t *testing.T) {
	orig := isTerminalFn
	isTerminalFn = func() bool { return false }
	t.Cleanup(func() { isTerminalFn = orig })

	if err := Run("config.yaml", nil); err == nil {
		t.Fatal("expected error without a terminal")
	}
}
