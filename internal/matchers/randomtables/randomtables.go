// Package randomtables turns pipe tables found in rule text into roll
// tables and level progressions.
package randomtables

import (
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
)

// Parse reads every table in text. Roll rows ("2-3 | Result") give a roll
// range, level rows ("5th | 3d6") give the level as both bounds and text
// rows keep 0 bounds with the first cell as the result. Extra cells become
// columns.
func Parse(text string) []rules.RandomTable {
	var out []rules.RandomTable
	for _, table := range ruletext.DetectTables(text) {
		entries := make([]rules.RandomTableEntry, 0, len(table.Rows))
		for _, row := range table.Rows {
			entries = append(entries, entry(table, row))
		}
		out = append(out, rules.RandomTable{
			Name:               table.Name,
			DiceType:           table.DiceType,
			IsLevelProgression: table.IsLevelProgression,
			Entries:            entries,
		})
	}
	return out
}

func entry(table ruletext.Table, row ruletext.Row) rules.RandomTableEntry {
	e := rules.RandomTableEntry{Result: row.Cells[1]}
	if len(row.Cells) > 2 {
		e.Columns = row.Cells[2:]
	}

	if table.IsLevelProgression {
		if level, ok := ruletext.Ordinal(row.Key()); ok {
			e.RollMin, e.RollMax = level, level
		}
		return e
	}
	if lo, hi, ok := row.Range(); ok {
		e.RollMin, e.RollMax = lo, hi
		return e
	}

	e.Result = row.Key()
	e.Columns = row.Cells[1:]
	return e
}
