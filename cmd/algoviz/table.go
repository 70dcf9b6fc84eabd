package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"algoviz/internal/viz"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

const maxDescriptionWidth = 60

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    maxDescriptionWidth,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderDocument prints a heading, the metadata and one row per frame.
func renderDocument(doc viz.Document, colorize bool) string {
	var b strings.Builder
	for _, line := range renderSectionHeader("Visualization", colorize) {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	kind, message := documentStatus(doc)
	b.WriteString(renderStatusLine("Result", kind, message, colorize))
	b.WriteByte('\n')
	b.WriteString(renderStatusLine("Category", statusInfo, doc.Metadata.Category, colorize))
	b.WriteByte('\n')
	b.WriteString(renderStatusLine("Structures", statusInfo, strings.Join(doc.Metadata.DataStructuresUsed, ", "), colorize))
	b.WriteString("\n\n")

	lines := make(map[int]string, len(doc.LineSync.FrameMappings))
	for _, mapping := range doc.LineSync.FrameMappings {
		parts := make([]string, len(mapping.LineNumbers))
		for i, n := range mapping.LineNumbers {
			parts[i] = strconv.Itoa(n)
		}
		lines[mapping.FrameID] = strings.Join(parts, ",")
	}
	rows := make([][]string, 0, len(doc.Frames()))
	for _, frame := range doc.Frames() {
		rows = append(rows, []string{
			strconv.Itoa(frame.FrameID),
			lines[frame.FrameID],
			panelSummary(frame),
			variableSummary(frame),
			frame.Description,
		})
	}
	b.WriteString(renderTable(
		[]string{"Frame", "Line", "State", "Variables", "Description"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft},
	))
	return b.String()
}

func panelSummary(frame viz.Frame) string {
	panels := frame.Panels()
	if len(panels) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(panels))
	for _, panel := range panels {
		switch p := panel.(type) {
		case viz.ArrayPanel:
			parts = append(parts, "["+joinScalars(p.Values)+"]")
		case viz.StackPanel:
			parts = append(parts, "stack["+joinScalars(p.Values)+"]")
		case viz.QueuePanel:
			parts = append(parts, "queue["+joinScalars(p.Values)+"]")
		case viz.TreePanel:
			parts = append(parts, fmt.Sprintf("tree(%d nodes)", len(p.Nodes)))
		case viz.GraphPanel:
			parts = append(parts, fmt.Sprintf("graph(%d nodes, %d edges)", len(p.Nodes), len(p.Edges)))
		case viz.LinkedListPanel:
			parts = append(parts, fmt.Sprintf("list(%d nodes)", len(p.Nodes)))
		default:
			parts = append(parts, string(panel.Kind()))
		}
	}
	return strings.Join(parts, " ")
}

func variableSummary(frame viz.Frame) string {
	parts := make([]string, len(frame.Variables))
	for i, v := range frame.Variables {
		parts[i] = v.Name + "=" + v.Value
	}
	return strings.Join(parts, " ")
}

func joinScalars(values []viz.Scalar) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, ",")
}
