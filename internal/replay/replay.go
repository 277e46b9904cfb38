// Package replay runs scripted editing scenarios against a session.
//
// A script is a YAML list of scenarios. Each one starts a fresh session on
// the given text, feeds keys in key notation and compares the result:
//
//	- name: delete a word
//	  text: "hello world\n"
//	  keys: dw
//	  expect: "world\n"
//	  expect_cursor: 0
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dshills/modalcore/internal/config"
	"github.com/dshills/modalcore/internal/editor"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/input/vim"
)

// ErrNoScenarios is returned for a script without scenarios.
var ErrNoScenarios = errors.New("script has no scenarios")

// Scenario is one scripted edit.
type Scenario struct {
	Name string `yaml:"name"`
	// Mode is the global mode to edit in, Vim when empty.
	Mode   string `yaml:"mode"`
	Text   string `yaml:"text"`
	Cursor int    `yaml:"cursor"`
	Keys   string `yaml:"keys"`

	Expect       string `yaml:"expect"`
	ExpectCursor *int   `yaml:"expect_cursor"`
	ExpectStatus string `yaml:"expect_status"`
}

// Result is the outcome of running a Scenario.
type Result struct {
	Scenario Scenario
	Text     string
	Cursor   int
	Status   string
	Err      error
}

// Passed returns true if the run matched every expectation.
func (r Result) Passed() bool {
	sc := r.Scenario
	if r.Err != nil || r.Text != sc.Expect {
		return false
	}
	if sc.ExpectCursor != nil && *sc.ExpectCursor != r.Cursor {
		return false
	}
	return sc.ExpectStatus == "" || sc.ExpectStatus == r.Status
}

// Parse decodes a script. Unknown fields are errors.
func Parse(data []byte) ([]Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var scenarios []Scenario
	if err := dec.Decode(&scenarios); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoScenarios
		}
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if len(scenarios) == 0 {
		return nil, ErrNoScenarios
	}
	for i := range scenarios {
		if scenarios[i].Name == "" {
			scenarios[i].Name = fmt.Sprintf("scenario %d", i+1)
		}
	}
	return scenarios, nil
}

// Runner runs scenarios with a shared configuration.
type Runner struct {
	cfg config.Config
	log *zap.Logger
}

// NewRunner returns a runner editing with cfg.
func NewRunner(cfg config.Config, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, log: log.Named("replay")}
}

// Run plays sc in a new session.
func (r *Runner) Run(sc Scenario) Result {
	res := Result{Scenario: sc}

	s, err := editor.New(editor.WithConfig(r.cfg), editor.WithLogger(r.log))
	if err != nil {
		res.Err = err
		return res
	}
	defer s.Close()

	b := s.InitWithText(sc.Name, sc.Text)
	b.ClearFlags(buffer.FlagDirty)
	s.Window().SetCursor(buffer.Location(sc.Cursor))

	name := sc.Mode
	if name == "" {
		name = vim.Name
	}
	if err := s.SetGlobalMode(name); err != nil {
		res.Err = err
		return res
	}

	if _, err := s.AddCommandText(sc.Keys); err != nil {
		res.Err = err
	}
	res.Text = b.Text()
	if w := s.Window(); w != nil {
		res.Cursor = int(w.Cursor())
	}
	res.Status = s.CommandText()

	r.log.Debug("scenario",
		zap.String("name", sc.Name),
		zap.Bool("passed", res.Passed()))
	return res
}

// RunAll plays every scenario in order.
func (r *Runner) RunAll(scenarios []Scenario) []Result {
	results := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		results = append(results, r.Run(sc))
	}
	return results
}

const (
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorReset = "\x1b[0m"
)

// Diff shows how got differs from want. Removed text is wrapped in [-..-]
// and added text in {+..+}, or colored red and green when color is set.
func Diff(want, got string, color bool) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(want, got, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, d := range diffs {
		text := d.Text
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			sb.WriteString(text)
		case diffmatchpatch.DiffDelete:
			if color {
				sb.WriteString(colorRed + text + colorReset)
			} else {
				sb.WriteString("[-" + text + "-]")
			}
		case diffmatchpatch.DiffInsert:
			if color {
				sb.WriteString(colorGreen + text + colorReset)
			} else {
				sb.WriteString("{+" + text + "+}")
			}
		}
	}
	return sb.String()
}

// Report describes a failed result, or returns "" for a pass.
func Report(res Result, color bool) string {
	if res.Passed() {
		return ""
	}
	sc := res.Scenario
	var sb strings.Builder
	fmt.Fprintf(&sb, "FAIL %s\n", sc.Name)
	if res.Err != nil {
		fmt.Fprintf(&sb, "  error: %v\n", res.Err)
	}
	if res.Text != sc.Expect {
		fmt.Fprintf(&sb, "  text:\n%s\n", indent(Diff(sc.Expect, res.Text, color)))
	}
	if sc.ExpectCursor != nil && *sc.ExpectCursor != res.Cursor {
		fmt.Fprintf(&sb, "  cursor: got %d, want %d\n", res.Cursor, *sc.ExpectCursor)
	}
	if sc.ExpectStatus != "" && sc.ExpectStatus != res.Status {
		fmt.Fprintf(&sb, "  status: got %q, want %q\n", res.Status, sc.ExpectStatus)
	}
	return sb.String()
}

func indent(s string) string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
