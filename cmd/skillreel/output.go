package main

import (
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"skillreel/internal/services/moderation/domain"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// wantJSON reports whether output should be JSON: forced by --json or stdout is not a terminal
func wantJSON(forced bool, w io.Writer) bool {
	if forced {
		return true
	}
	return !isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range headers {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	cfgs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		cfgs = append(cfgs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(cfgs)

	return tw.Render()
}

var recordHeaders = []string{"Video", "Status", "Skill", "Confidence", "Review", "Reason"}

var recordAligns = []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft}

func recordRow(r domain.Record) []string {
	skill := "-"
	if r.Skill.DetectedSkill != nil {
		skill = *r.Skill.DetectedSkill
	}
	review := ""
	if r.NeedsReview {
		review = "yes"
	}
	return []string{
		r.VideoID,
		r.Status,
		skill,
		strconv.FormatFloat(r.ConfidenceScore, 'f', 2, 64),
		review,
		r.Reason,
	}
}

func renderRecords(recs []domain.Record) string {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, recordRow(r))
	}
	return renderTable(recordHeaders, rows, recordAligns)
}
