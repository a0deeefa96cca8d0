// Package report renders store query results for humans (tables) and for
// other tools (CSV, JSON, debug dumps).
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pterm/pterm"

	"github.com/danielbiegler/timebox/internal/models"
)

const tableTimeFormat = "2006-01-02 15:04"

// PrintBoxes writes a table of finished time boxes: one row per note,
// with the box's duration on its final row and the summed hours in the
// header.
func PrintBoxes(w io.Writer, boxes []models.TimeBox) {
	var hours float64
	for i := range boxes {
		hours += boxes[i].DurationHours()
	}

	data := [][]string{
		{"#", "AT", "DESCRIPTION", fmt.Sprintf("TOTAL %.2fH", hours)},
	}

	for i := range boxes {
		box := boxes[i]

		for j, note := range box.Notes {
			num, dur := "", ""

			if j == 0 {
				num = fmt.Sprintf("%d", i+1)
			}

			if j == len(box.Notes)-1 {
				dur = fmt.Sprintf("%.2fh", box.DurationHours())
			}

			data = append(data, []string{
				num,
				note.Time.Local().Format(tableTimeFormat),
				note.Description,
				dur,
			})
		}
	}

	printTable(data, w)
}

// PrintActive writes a table of the active box's notes along with its
// recorded and still-running duration.
func PrintActive(w io.Writer, box *models.TimeBox, now time.Time) {
	running := now.Sub(box.StartTime()).Seconds() / 60 / 60

	data := [][]string{
		{
			"AT",
			"DESCRIPTION",
			fmt.Sprintf("%.2fH NOTED, %.2fH ACTIVE", box.DurationHours(), running),
		},
	}

	for _, note := range box.Notes {
		data = append(data, []string{
			note.Time.Local().Format(tableTimeFormat),
			note.Description,
			"",
		})
	}

	printTable(data, w)
}

// CSV renders finished boxes as semicolon-separated values: one record per
// box, the notes joined into a bulleted description block.
func CSV(boxes []models.TimeBox) (string, error) {
	var buf bytes.Buffer

	cw := csv.NewWriter(&buf)
	cw.Comma = ';'

	err := cw.Write([]string{"time_start", "time_stop", "hours", "description"})
	if err != nil {
		return "", err
	}

	for i := range boxes {
		box := boxes[i]

		descriptions := make([]string, 0, len(box.Notes))
		for _, note := range box.Notes {
			descriptions = append(descriptions, "- "+note.Description)
		}

		err := cw.Write([]string{
			box.StartTime().Local().Format(time.RFC3339),
			box.EndTime().Local().Format(time.RFC3339),
			fmt.Sprintf("%.2f", box.DurationHours()),
			strings.Join(descriptions, "\n"),
		})
		if err != nil {
			return "", err
		}
	}

	cw.Flush()

	return buf.String(), cw.Error()
}

// JSON renders finished boxes as indented JSON, an intermediary for tools
// like jq.
func JSON(boxes []models.TimeBox) (string, error) {
	b, err := json.MarshalIndent(boxes, "", "  ")
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// Debug renders finished boxes as a spew dump for sanity checking.
func Debug(boxes []models.TimeBox) string {
	return spew.Sdump(boxes)
}

func printTable(data [][]string, w io.Writer) {
	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		pterm.Error.Printfln("Failed to render table: %s", err.Error())
		return
	}

	fmt.Fprintln(w, str)
}
