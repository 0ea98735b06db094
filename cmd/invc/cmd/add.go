package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/wesm/invc/internal/inventory"
)

var (
	addParent int64
	addCount  int
	addAbout  string
)

var addCmd = &cobra.Command{
	Use:   "add [NAME]",
	Short: "Add an item",
	Long: `Add an item under --parent (default: the top level) and print its id.

Without NAME on a terminal, a form asks for the name, count and description.

Examples:
  invc add "Toolbox" --count 1
  invc add "M4 screws" --parent 12 --count 200 --about "stainless, 10mm"
  invc add`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			if !isatty.IsTerminal(os.Stdin.Fd()) {
				return errors.New("NAME is required when stdin is not a terminal")
			}
			var err error
			if name, err = runAddForm(); err != nil {
				return err
			}
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return errors.New("name must not be empty")
		}
		if addCount < 0 {
			return inventory.ErrNegativeCount
		}

		s, err := openStore("")
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := s.AddItem(cmd.Context(), inventory.Entry{
			Parent: addParent,
			Name:   name,
			About:  addAbout,
			Count:  addCount,
		})
		if err != nil {
			return err
		}

		logger.Info("added item", "id", id, "parent", addParent, "name", name)
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

// runAddForm asks for the item fields, using the flag values as defaults.
func runAddForm() (string, error) {
	var name string
	count := strconv.Itoa(addCount)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Count").
				Value(&count).
				Validate(func(s string) error {
					if n, err := strconv.Atoi(s); err != nil || n < 0 {
						return errors.New("enter a whole number of zero or more")
					}
					return nil
				}),
			huh.NewText().
				Title("Description (optional)").
				Value(&addAbout),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	n, err := strconv.Atoi(count)
	if err != nil {
		return "", fmt.Errorf("parse count: %w", err)
	}
	addCount = n
	return name, nil
}

func init() {
	addCmd.Flags().Int64Var(&addParent, "parent", inventory.Root, "parent item id (0 is the top level)")
	addCmd.Flags().IntVar(&addCount, "count", 1, "number of units")
	addCmd.Flags().StringVar(&addAbout, "about", "", "description")
	rootCmd.AddCommand(addCmd)
}
