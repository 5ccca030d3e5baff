package cmd

import (
	"fmt"

	"github.com/sofmeright/curtaincall/src/badge"
	"github.com/sofmeright/curtaincall/src/ci"
	"github.com/sofmeright/curtaincall/src/status"
	"github.com/spf13/cobra"
)

var (
	bdgState  string
	bdgLabel  string
	bdgOutput string
)

var badgeCmd = &cobra.Command{
	Use:   "badge",
	Short: "Render a build-status badge SVG",
	RunE:  runBadge,
}

func init() {
	badgeCmd.Flags().StringVar(&bdgState, "state", "", "terminal state to render (required)")
	badgeCmd.Flags().StringVar(&bdgLabel, "label", "", "badge label (default: status context)")
	badgeCmd.Flags().StringVarP(&bdgOutput, "output", "o", "status.svg", "output path")
	badgeCmd.MarkFlagRequired("state")

	rootCmd.AddCommand(badgeCmd)
}

func runBadge(cmd *cobra.Command, args []string) error {
	state := status.Normalize(bdgState)

	engine, err := badge.NewEngine(cfg.Badge.Font, cfg.Badge.FontSize)
	if err != nil {
		return err
	}

	label := bdgLabel
	if label == "" {
		label = cfg.Badge.Label
	}
	if label == "" {
		label = statusContext(cfg, ci.Resolve())
	}

	b := badge.Badge{Label: label, Value: string(state), Color: badge.StateColor(state)}
	if err := engine.WriteFile(bdgOutput, b); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%s)\n", bdgOutput, state)
	return nil
}
