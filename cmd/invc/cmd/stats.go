package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wesm/invc/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore("")
		if err != nil {
			return err
		}
		defer s.Close()
		return printStats(cmd, s)
	},
}

func printStats(cmd *cobra.Command, s *store.Store) error {
	stats, err := s.GetStats(cmd.Context())
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database: %s\n", s.Path())
	fmt.Fprintf(out, "  Items:       %d\n", stats.ItemCount)
	fmt.Fprintf(out, "  Top level:   %d\n", stats.RootCount)
	fmt.Fprintf(out, "  Total units: %d\n", stats.TotalUnits)
	fmt.Fprintf(out, "  Size:        %.2f MB\n", float64(stats.DatabaseSize)/(1024*1024))
	return nil
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
