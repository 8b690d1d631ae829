package board

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/uwtype/uwtype/internal/tier"
)

const wideTerminal = 100

var tierColors = map[tier.Tier]*color.Color{
	tier.Diamond: color.New(color.FgCyan, color.Bold),
	tier.Gold:    color.New(color.FgYellow, color.Bold),
	tier.Bronze:  color.New(color.FgRed),
	tier.Warrior: color.New(color.FgWhite),
}

// Render prints both rankings as plain tables. Narrow terminals drop
// the program column from the individual table.
func Render(w io.Writer, view View) error {
	width := terminalWidth()

	if _, err := fmt.Fprintln(w, "Individual Leaderboard"); err != nil {
		return err
	}
	if len(view.Individuals) == 0 {
		if _, err := fmt.Fprintln(w, "No entries yet. Be the first to complete a test!"); err != nil {
			return err
		}
	} else {
		renderIndividuals(w, view, width >= wideTerminal)
	}

	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Faculty Leaderboard"); err != nil {
		return err
	}
	if len(view.Faculties) == 0 {
		if _, err := fmt.Fprintln(w, "No faculty entries yet."); err != nil {
			return err
		}
		return nil
	}
	renderFaculties(w, view)
	return nil
}

func renderIndividuals(w io.Writer, view View, wide bool) {
	table := tablewriter.NewWriter(w)
	headers := []string{"Rank", "Email", "WPM", "Accuracy", "Tier"}
	if wide {
		headers = append(headers, "Program")
	}
	table.SetHeader(headers)
	table.SetBorder(false)
	for _, entry := range view.Individuals {
		t := tier.Classify(float64(entry.Record.WPM))
		row := []string{
			"#" + strconv.Itoa(entry.Rank),
			entry.Record.Email,
			strconv.Itoa(entry.Record.WPM),
			fmt.Sprintf("%.1f%%", entry.Record.Accuracy),
			tierColors[t].Sprint(t.String()),
		}
		if wide {
			row = append(row, entry.Record.Program)
		}
		table.Append(row)
	}
	table.Render()
}

func renderFaculties(w io.Writer, view View) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Faculty", "Avg WPM", "Typists"})
	table.SetBorder(false)
	for _, entry := range view.Faculties {
		table.Append([]string{
			"#" + strconv.Itoa(entry.Rank),
			entry.Faculty,
			strconv.Itoa(entry.AvgWPM),
			strconv.Itoa(entry.Count),
		})
	}
	table.Render()
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
