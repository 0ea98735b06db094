package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wesm/invc/internal/inventory"
)

var (
	searchAbout bool
	searchJSON  bool
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search PATTERN",
	Short: "Search items by name or description",
	Long: `Search items with a SQL LIKE pattern: % matches any run of characters and
_ matches one character. Matching is case-insensitive for ASCII letters.

With [search] auto_wildcard = true in config.toml, a pattern without
wildcards matches anywhere in the text.

Examples:
  invc search 'screw%'
  invc search --about '%warranty%'
  invc search box --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if searchLimit < 1 {
			return fmt.Errorf("--limit must be positive")
		}
		field := inventory.FieldName
		if searchAbout {
			field = inventory.FieldAbout
		}
		pattern := args[0]
		if cfg.Search.AutoWildcard && !strings.ContainsAny(pattern, "%_") {
			pattern = "%" + pattern + "%"
		}

		s, err := openStore("")
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		logger.Debug("search", "field", field.String(), "pattern", pattern)
		total, err := s.CountMatching(ctx, field, pattern)
		if err != nil {
			return err
		}
		items, err := s.PageMatching(ctx, field, pattern, searchLimit, 0)
		if err != nil {
			return err
		}

		if searchJSON {
			return outputItemsJSON(cmd.OutOrStdout(), items, total)
		}
		outputItemsTable(cmd.OutOrStdout(), items, total, 0, true)
		return nil
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchAbout, "about", false, "match descriptions instead of names")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 50, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
