// Command keep-to-joplin converts a Google Keep Takeout export into
// Markdown files ready for Joplin's directory import.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"keep-to-joplin/internal/app/converter"
)

var (
	inputDir        string
	outputDir       string
	dryRun          bool
	verbose         bool
	includeTrashed  bool
	includeArchived bool
	frontmatter     bool
)

var rootCmd = &cobra.Command{
	Use:   "keep-to-joplin",
	Short: "Convert Google Keep JSON exports to Joplin Markdown",
	Long: `keep-to-joplin converts Google Keep notes exported via Google Takeout
(JSON format) into Markdown files suitable for importing into Joplin.

Text notes, checklists, labels, colors and attachments are preserved;
attachments are copied into a resources/ subdirectory next to the
generated notes. Trashed and archived notes are skipped unless asked
for explicitly.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		conv := converter.Converter{
			InputDir:        inputDir,
			OutputDir:       outputDir,
			IncludeTrashed:  includeTrashed,
			IncludeArchived: includeArchived,
			DryRun:          dryRun,
			Frontmatter:     frontmatter,
		}
		if dryRun || verbose {
			conv.Progress = func(message string) { fmt.Println(message) }
		}

		stats, err := conv.Run()
		if err != nil {
			return err
		}

		fmt.Println("\nSummary")
		fmt.Println("=======")
		fmt.Println(stats.Summary())
		fmt.Printf("Output directory: %s\n", outputDir)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&inputDir, "input", "i", "", "path to directory containing Google Keep JSON files")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "path to output directory for Markdown files")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not write files, only print actions")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print verbose output")
	rootCmd.Flags().BoolVar(&includeTrashed, "include-trashed", false, "export trashed notes as well")
	rootCmd.Flags().BoolVar(&includeArchived, "include-archived", false, "export archived notes as well")
	rootCmd.Flags().BoolVar(&frontmatter, "frontmatter", false, "put note metadata in YAML frontmatter instead of the footer")
	_ = rootCmd.MarkFlagRequired("input")
	_ = rootCmd.MarkFlagRequired("output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
