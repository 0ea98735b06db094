package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wesm/invc/internal/inventory"
)

var (
	listParent int64
	listJSON   bool
	listLimit  int
	listOffset int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the children of an item",
	Long: `List one page of the items directly inside --parent (default: the top
level), in id order.

Examples:
  invc list
  invc list --parent 12 --limit 20 --offset 40
  invc list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listLimit < 1 || listOffset < 0 {
			return fmt.Errorf("--limit must be positive and --offset not negative")
		}
		s, err := openStore("")
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		total, err := s.CountChildren(ctx, listParent)
		if err != nil {
			return err
		}
		items, err := s.PageChildren(ctx, listParent, listLimit, listOffset)
		if err != nil {
			return err
		}

		if listJSON {
			return outputItemsJSON(cmd.OutOrStdout(), items, total)
		}
		outputItemsTable(cmd.OutOrStdout(), items, total, listOffset, false)
		return nil
	},
}

func init() {
	listCmd.Flags().Int64Var(&listParent, "parent", inventory.Root, "parent item id (0 is the top level)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	listCmd.Flags().IntVar(&listLimit, "limit", 50, "maximum number of items")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "number of items to skip")
	rootCmd.AddCommand(listCmd)
}
