package main

import (
	"fmt"
	"os"

	"github.com/coveshell/cove/internal/completion"
	"github.com/coveshell/cove/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	completeLine string
	completePos  int
)

// completeCmd runs one completion request and prints the result, for shell
// integration and scripting. The resulting line and cursor go to stdout;
// candidate lists go to stderr so callers can capture the line alone.
var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Complete a command line once and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		if completePos < 0 || completePos > len(completeLine) {
			completePos = len(completeLine)
		}

		logger, err := initLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		engine, err := buildEngine(cfg, nil, logger)
		if err != nil {
			return err
		}

		action := engine.Complete(cmd.Context(), completeLine, completePos)
		newLine, newPos := action.Apply(completeLine, completePos)
		fmt.Printf("%s\t%d\n", newLine, newPos)

		if action.Kind == completion.ShowList {
			width := 80
			if w, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil {
				width = w
			}
			fmt.Fprintln(os.Stderr, render.Columns(action.Candidates, width))
		}
		return nil
	},
}

func init() {
	completeCmd.Flags().StringVar(&completeLine, "line", "", "the command line to complete")
	completeCmd.Flags().IntVar(&completePos, "pos", -1, "cursor position in bytes (default end of line)")
	completeCmd.MarkFlagRequired("line")
}
