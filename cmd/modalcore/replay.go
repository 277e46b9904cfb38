package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/modalcore/internal/replay"
)

func newReplayCmd(a *app) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>...",
		Short: "Run scripted editing scenarios",
		Long: `Run the scenarios of each YAML script and report those whose text,
cursor or status do not match. Exits non-zero if any scenario fails.

A script is a list of scenarios:

  - name: delete a word
    mode: vim
    text: "hello world\n"
    cursor: 0
    keys: dw
    expect: "world\n"
    expect_cursor: 0`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			useColor, err := colorMode(color, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			runner := replay.NewRunner(a.cfg, a.log.Logger)
			out := cmd.OutOrStdout()
			total, failed := 0, 0
			for _, path := range args {
				data, err := a.fs.Read(path)
				if err != nil {
					return err
				}
				scenarios, err := replay.Parse(data)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				for _, res := range runner.RunAll(scenarios) {
					total++
					if report := replay.Report(res, useColor); report != "" {
						failed++
						fmt.Fprint(out, report)
					}
				}
			}

			fmt.Fprintf(out, "%d scenarios, %d failed\n", total, failed)
			if failed > 0 {
				return failedError{n: failed}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "auto", "color diffs: auto, always or never")
	return cmd
}

// colorMode resolves the --color flag. auto colors only when out is a
// terminal.
func colorMode(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid --color %q", mode)
	}
}
