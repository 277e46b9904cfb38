package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/modalcore/internal/editor"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/input/vim"
)

func newKeysCmd(a *app) *cobra.Command {
	var (
		write    bool
		modeName string
		cursor   int
	)

	cmd := &cobra.Command{
		Use:   "keys <file> <keys>",
		Short: "Apply keys to a file and print the result",
		Long: `Open a file, feed it keys written in key notation and print the
resulting text. The status line is printed to stderr.

Examples:
  modalcore keys main.go 'dwjp'
  modalcore keys --write notes.txt 'ggOtitle<Esc>'
  modalcore keys --mode standard notes.txt 'hello<C-a><C-c>'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := editor.New(
				editor.WithFileSystem(a.fs),
				editor.WithConfig(a.cfg),
				editor.WithLogger(a.log.Logger),
			)
			if err != nil {
				return err
			}
			defer s.Close()

			b, err := s.InitWithFileOrDir(args[0])
			if err != nil {
				return err
			}
			if b.FilePath() == "" {
				return fmt.Errorf("%s is a directory", args[0])
			}
			s.Window().SetCursor(buffer.Location(cursor))
			if err := s.SetGlobalMode(modeName); err != nil {
				return err
			}

			if _, err := s.AddCommandText(args[1]); err != nil {
				return err
			}
			if status := s.CommandText(); status != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), status)
			}

			if write {
				if _, err := s.SaveBuffer(b); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), s.CommandText())
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), b.Text())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "save the file instead of printing it")
	cmd.Flags().StringVarP(&modeName, "mode", "m", vim.Name, "editing mode (vim or standard)")
	cmd.Flags().IntVar(&cursor, "cursor", 0, "starting cursor offset")
	return cmd
}
