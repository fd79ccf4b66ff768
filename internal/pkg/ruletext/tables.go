package ruletext

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Table is a pipe-delimited table found inside rule text
type Table struct {
	Name               string
	DiceType           string
	Header             []string
	Rows               []Row
	IsLevelProgression bool
	// Start and End are byte offsets of the table within the scanned text
	Start int
	End   int
}

// Row is one data row of a Table. Cells has at least two entries.
type Row struct {
	Cells []string
}

// Key is the first cell of the row
func (r Row) Key() string {
	return r.Cells[0]
}

// Range reads the first cell as a roll value or range ("3", "2-6", "00")
func (r Row) Range() (int, int, bool) {
	return ParseRollRange(r.Cells[0])
}

var (
	tableNameLine  = regexp.MustCompile(`^(.+?):\s*$`)
	diceHeaderLine = regexp.MustCompile(`^(\d*d\d+)\s*\|\s*(.+?)\s*$`)
	diceTypePrefix = regexp.MustCompile(`^(\d*d\d+)\s*\|`)
	rollRow        = regexp.MustCompile(`^\d+(?:\s*[-–]\s*\d+)?\s*\|.+`)
	ordinalRow     = regexp.MustCompile(`(?i)^\d+(?:st|nd|rd|th)\s*\|.+`)
	rollRange      = regexp.MustCompile(`^(\d+)(?:\s*[-–]\s*(\d+))?$`)
)

type textLine struct {
	text  string
	start int
	end   int
}

func splitLines(text string) []textLine {
	var lines []textLine
	offset := 0
	for _, raw := range strings.SplitAfter(text, "\n") {
		if raw == "" {
			continue
		}
		lines = append(lines, textLine{
			text:  strings.TrimSpace(raw),
			start: offset,
			end:   offset + len(strings.TrimRight(raw, "\r\n")),
		})
		offset += len(raw)
	}
	return lines
}

func isPipeLine(s string) bool {
	before, after, found := strings.Cut(s, "|")
	return found && strings.TrimSpace(before) != "" && strings.TrimSpace(after) != ""
}

func isTextRow(s string) bool {
	return isPipeLine(s) && !rollRow.MatchString(s) && !ordinalRow.MatchString(s)
}

// DetectTables finds every pipe table in text. Four layouts are recognized,
// tried in this order, and a later layout never claims lines an earlier one
// already took:
//
//	Name:               d8 | Name          Name:               Name:
//	d6 | Header         1 | Row            Header | Header     Level | Header
//	1 | Row             2-3 | Row          Text | Row          1st | Row
//	2-3 | Row                                                  5th | Row
//
// Results are ordered by position.
func DetectTables(text string) []Table {
	if !strings.Contains(text, "|") {
		return nil
	}

	lines := splitLines(text)
	var tables []Table

	add := func(t Table) {
		for _, existing := range tables {
			if t.Start < existing.End && existing.Start < t.End {
				return
			}
		}
		tables = append(tables, t)
	}

	// named header followed by roll rows
	scanNamed(lines, rollRow.MatchString, func(t Table) {
		t.DiceType = ParseDiceType(strings.Join(t.Header, " | "))
		add(t)
	})

	// headerless "dN | Name"
	for i := 0; i < len(lines); i++ {
		m := diceHeaderLine.FindStringSubmatch(lines[i].text)
		if m == nil {
			continue
		}
		rows, next := collectRows(lines, i+1, rollRow.MatchString)
		if len(rows) == 0 {
			continue
		}
		add(Table{
			Name:     m[2],
			DiceType: m[1],
			Header:   []string{m[1], m[2]},
			Rows:     rows,
			Start:    lines[i].start,
			End:      lines[next-1].end,
		})
		i = next - 1
	}

	// named header followed by text rows
	scanNamed(lines, isTextRow, func(t Table) {
		t.DiceType = ParseDiceType(strings.Join(t.Header, " | "))
		add(t)
	})

	// named header followed by ordinal level rows
	scanNamed(lines, ordinalRow.MatchString, func(t Table) {
		t.IsLevelProgression = true
		add(t)
	})

	sort.SliceStable(tables, func(i, j int) bool {
		return tables[i].Start < tables[j].Start
	})

	return tables
}

func scanNamed(lines []textLine, isRow func(string) bool, emit func(Table)) {
	for i := 0; i+2 < len(lines); i++ {
		name := tableNameLine.FindStringSubmatch(lines[i].text)
		if name == nil || !isPipeLine(lines[i+1].text) {
			continue
		}
		rows, next := collectRows(lines, i+2, isRow)
		if len(rows) == 0 {
			continue
		}
		emit(Table{
			Name:   strings.TrimSpace(name[1]),
			Header: splitCells(lines[i+1].text),
			Rows:   rows,
			Start:  lines[i].start,
			End:    lines[next-1].end,
		})
		i = next - 1
	}
}

// collectRows reads rows from lines[from:] and returns them with the index
// after the last row. A line without a pipe is skipped when a row follows
// it. A blank line or any other line ends the table.
func collectRows(lines []textLine, from int, isRow func(string) bool) ([]Row, int) {
	var rows []Row
	next := from
	for i := from; i < len(lines); i++ {
		text := lines[i].text
		if isRow(text) {
			rows = append(rows, Row{Cells: splitCells(text)})
			next = i + 1
			continue
		}
		if text == "" || strings.Contains(text, "|") || i+1 >= len(lines) || !isRow(lines[i+1].text) {
			break
		}
	}
	return rows, next
}

func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

// ParseDiceType returns the die ("d8", "1d22") a table header starts with
func ParseDiceType(header string) string {
	m := diceTypePrefix.FindStringSubmatch(strings.TrimSpace(header))
	if m == nil {
		return ""
	}
	return m[1]
}

// ParseRollRange reads "4", "2-6" or "00" (read as 100)
func ParseRollRange(cell string) (int, int, bool) {
	m := rollRange.FindStringSubmatch(strings.TrimSpace(cell))
	if m == nil {
		return 0, 0, false
	}

	lo, err := parseRoll(m[1])
	if err != nil {
		return 0, 0, false
	}
	hi := lo
	if m[2] != "" {
		if hi, err = parseRoll(m[2]); err != nil {
			return 0, 0, false
		}
	}
	if hi < lo {
		return 0, 0, false
	}

	return lo, hi, true
}

func parseRoll(s string) (int, error) {
	if s == "00" || s == "000" {
		return 100, nil
	}
	return strconv.Atoi(s)
}
