package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/x/ansi"
	"github.com/wesm/invc/internal/inventory"
	"golang.org/x/term"
)

// itemJSON is the JSON shape of an item in list and search output.
type itemJSON struct {
	ID     int64  `json:"id"`
	Parent int64  `json:"parent"`
	Name   string `json:"name"`
	About  string `json:"about,omitempty"`
	Count  int    `json:"count"`
}

func outputItemsJSON(w io.Writer, items []inventory.Entry, total int) error {
	out := struct {
		Total int        `json:"total"`
		Items []itemJSON `json:"items"`
	}{Total: total, Items: make([]itemJSON, len(items))}
	for i, e := range items {
		out.Items[i] = itemJSON{ID: e.ID, Parent: e.Parent, Name: e.Name, About: e.About, Count: e.Count}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// nameWidth returns the width left for the name column on the terminal,
// or 0 when stdout is not a terminal.
func nameWidth(fixed int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return max(width-fixed, 10)
}

// outputItemsTable prints items with tabwriter. withParent adds the
// PARENT column used by search results.
func outputItemsTable(w io.Writer, items []inventory.Entry, total, offset int, withParent bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	maxName := nameWidth(24)
	if withParent {
		maxName = nameWidth(32)
	}

	if withParent {
		fmt.Fprintln(tw, "ID\tPARENT\tNAME\tQTY")
		fmt.Fprintln(tw, "──\t──────\t────\t───")
	} else {
		fmt.Fprintln(tw, "ID\tNAME\tQTY")
		fmt.Fprintln(tw, "──\t────\t───")
	}
	for _, e := range items {
		name := strings.ReplaceAll(e.Name, "\t", " ")
		if maxName > 0 {
			name = ansi.Truncate(name, maxName, "...")
		}
		if withParent {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", e.ID, parentLabel(e.Parent), name, e.Count)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%d\n", e.ID, name, e.Count)
		}
	}
	tw.Flush()

	if len(items) == 0 {
		fmt.Fprintf(w, "\nNo items (total %d)\n", total)
		return
	}
	fmt.Fprintf(w, "\nShowing %d-%d of %d\n", offset+1, offset+len(items), total)
}

func parentLabel(id int64) string {
	if id == inventory.Root {
		return "/"
	}
	return strconv.FormatInt(id, 10)
}
