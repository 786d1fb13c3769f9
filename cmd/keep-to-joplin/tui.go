package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"keep-to-joplin/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive terminal front end for the converter",
	Long: `tui opens a full-screen terminal interface with directory pickers,
option toggles and a live log pane, and runs the same conversion as
the plain command line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		_, err := tea.NewProgram(tui.New(input, output), tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	tuiCmd.Flags().String("input", "", "prefill for the input directory field")
	tuiCmd.Flags().String("output", "", "prefill for the output directory field")
	rootCmd.AddCommand(tuiCmd)
}
