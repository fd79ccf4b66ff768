package ruletext_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
)

type TablesTestSuite struct {
	suite.Suite
}

func TestTablesSuite(t *testing.T) {
	suite.Run(t, new(TablesTestSuite))
}

func (s *TablesTestSuite) TestNamedRollTable() {
	text := "Roll on the table below.\n\nWild Magic:\nd4 | Effect\n1 | You turn blue.\n2-3 | You float.\n4 | Nothing happens.\nAfterwards the effect ends."

	tables := ruletext.DetectTables(text)
	s.Require().Len(tables, 1)

	table := tables[0]
	s.Equal("Wild Magic", table.Name)
	s.Equal("d4", table.DiceType)
	s.Equal([]string{"d4", "Effect"}, table.Header)
	s.Require().Len(table.Rows, 3)
	s.False(table.IsLevelProgression)

	lo, hi, ok := table.Rows[1].Range()
	s.True(ok)
	s.Equal(2, lo)
	s.Equal(3, hi)
	s.Equal("You float.", table.Rows[1].Cells[1])
}

func (s *TablesTestSuite) TestHeaderlessDiceTable() {
	text := "d8 | Personality Trait\n1 | I idolize a hero.\n2 | I am kind.\n"

	tables := ruletext.DetectTables(text)
	s.Require().Len(tables, 1)
	s.Equal("Personality Trait", tables[0].Name)
	s.Equal("d8", tables[0].DiceType)
	s.Len(tables[0].Rows, 2)
}

func (s *TablesTestSuite) TestTextRowTable() {
	text := "Draconic Ancestry:\nDragon | Damage Type | Breath Weapon\nBlack | Acid | 5 by 30 ft. line\nBlue | Lightning | 5 by 30 ft. line\n"

	tables := ruletext.DetectTables(text)
	s.Require().Len(tables, 1)
	s.Equal("Draconic Ancestry", tables[0].Name)
	s.Empty(tables[0].DiceType)
	s.Require().Len(tables[0].Rows, 2)
	s.Equal([]string{"Blue", "Lightning", "5 by 30 ft. line"}, tables[0].Rows[1].Cells)
}

func (s *TablesTestSuite) TestLevelProgressionTable() {
	text := "Sneak Attack:\nLevel | Dice\n1st | 1d6\n3rd | 2d6\n5th | 3d6"

	tables := ruletext.DetectTables(text)
	s.Require().Len(tables, 1)
	s.True(tables[0].IsLevelProgression)
	s.Len(tables[0].Rows, 3)
}

func (s *TablesTestSuite) TestRowWithoutPipeIsSkipped() {
	text := "Wild Surge:\nd6 | Effect\n1 | Fire\n2 Frost\n3 | Wind\n4 | Stone"

	tables := ruletext.DetectTables(text)
	s.Require().Len(tables, 1)
	s.Require().Len(tables[0].Rows, 3)
	s.Equal([]string{"1", "3", "4"}, []string{tables[0].Rows[0].Key(), tables[0].Rows[1].Key(), tables[0].Rows[2].Key()})
	s.Equal(len(text), tables[0].End)
}

func (s *TablesTestSuite) TestTableEndsAtProse() {
	testCases := []struct {
		name string
		text string
		rows int
	}{
		{name: "trailing sentence", text: "Effects:\nd6 | Effect\n1 | Sparks\n2 | Smoke\nThe effect lasts 1 minute.", rows: 2},
		{name: "blank line", text: "Effects:\nd6 | Effect\n1 | Sparks\n\n3 | Rain", rows: 1},
		{name: "missing pipe on last line", text: "Effects:\nd6 | Effect\n1 | Sparks\n2 Smoke", rows: 1},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tables := ruletext.DetectTables(tc.text)
			s.Require().Len(tables, 1)
			s.Len(tables[0].Rows, tc.rows)
			s.Equal("Sparks", tables[0].Rows[0].Cells[1])
			s.True(strings.HasSuffix(tc.text[:tables[0].End], "| "+tables[0].Rows[tc.rows-1].Cells[1]))
		})
	}
}

func (s *TablesTestSuite) TestProseWithPipeIsNotATable() {
	testCases := []struct {
		name string
		text string
	}{
		{name: "single pipe in prose", text: "You can choose fire | cold damage when you cast it."},
		{name: "header with no rows", text: "Options:\nA | B\nThen you rest."},
		{name: "no pipes", text: "Nothing to see here."},
		{name: "empty", text: ""},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Empty(ruletext.DetectTables(tc.text))
		})
	}
}

func (s *TablesTestSuite) TestMultipleTablesInOrder() {
	text := "Power:\nd8 | Power\n1 | Red\n2 | Orange\n\nColor:\nd4 | Color\n1 | Blue\n2-4 | Green\n"

	tables := ruletext.DetectTables(text)
	s.Require().Len(tables, 2)
	s.Equal("Power", tables[0].Name)
	s.Equal("Color", tables[1].Name)
	s.Less(tables[0].Start, tables[1].Start)
}

func (s *TablesTestSuite) TestParseRollRange() {
	testCases := []struct {
		cell   string
		lo, hi int
		ok     bool
	}{
		{cell: "4", lo: 4, hi: 4, ok: true},
		{cell: "2-6", lo: 2, hi: 6, ok: true},
		{cell: "91–00", lo: 91, hi: 100, ok: true},
		{cell: "00", lo: 100, hi: 100, ok: true},
		{cell: "6-2", ok: false},
		{cell: "Blue", ok: false},
	}

	for _, tc := range testCases {
		s.Run(tc.cell, func() {
			lo, hi, ok := ruletext.ParseRollRange(tc.cell)
			s.Equal(tc.ok, ok)
			s.Equal(tc.lo, lo)
			s.Equal(tc.hi, hi)
		})
	}

	s.Equal("1d22", ruletext.ParseDiceType("1d22 | Playing Card"))
	s.Empty(ruletext.ParseDiceType("Level | Card"))
}
