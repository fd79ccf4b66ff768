package randomtables_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/randomtables"
)

type RandomTablesTestSuite struct {
	suite.Suite
}

func TestRandomTablesSuite(t *testing.T) {
	suite.Run(t, new(RandomTablesTestSuite))
}

func (s *RandomTablesTestSuite) TestRollTable() {
	text := "Personality:\nd6 | Trait | Note\n1 | I am brave. | rare\n2-5 | I am kind. | common\n6 | I am loud. | rare"

	tables := randomtables.Parse(text)

	s.Require().Len(tables, 1)
	s.Equal("Personality", tables[0].Name)
	s.Equal("d6", tables[0].DiceType)
	s.Equal([]rules.RandomTableEntry{
		{RollMin: 1, RollMax: 1, Result: "I am brave.", Columns: []string{"rare"}},
		{RollMin: 2, RollMax: 5, Result: "I am kind.", Columns: []string{"common"}},
		{RollMin: 6, RollMax: 6, Result: "I am loud.", Columns: []string{"rare"}},
	}, tables[0].Entries)
}

func (s *RandomTablesTestSuite) TestRowCountRoundTrip() {
	for _, n := range []int{1, 4, 12} {
		s.Run(fmt.Sprintf("%d rows", n), func() {
			var b strings.Builder
			b.WriteString("Trinkets:\nd100 | Trinket\n")
			for i := 1; i <= n; i++ {
				fmt.Fprintf(&b, "%d | Trinket %d\n", i, i)
			}

			tables := randomtables.Parse(b.String())

			s.Require().Len(tables, 1)
			s.Len(tables[0].Entries, n)
			s.Equal(fmt.Sprintf("Trinket %d", n), tables[0].Entries[n-1].Result)
		})
	}
}

func (s *RandomTablesTestSuite) TestRowWithoutPipeContributesNothing() {
	text := "Trinkets:\nd4 | Trinket\n1 | A key\n2 A coin\n"

	tables := randomtables.Parse(text)

	s.Require().Len(tables, 1)
	s.Len(tables[0].Entries, 1)
}

func (s *RandomTablesTestSuite) TestLevelProgression() {
	tables := randomtables.Parse("Martial Arts:\nLevel | Die\n1st | 1d4\n5th | 1d6\n11th | 1d8")

	s.Require().Len(tables, 1)
	s.True(tables[0].IsLevelProgression)
	s.Equal(rules.RandomTableEntry{RollMin: 5, RollMax: 5, Result: "1d6"}, tables[0].Entries[1])
}

func (s *RandomTablesTestSuite) TestTextRows() {
	tables := randomtables.Parse("Draconic Ancestry:\nDragon | Damage Type | Breath\nBlack | Acid | Line\nGold | Fire | Cone")

	s.Require().Len(tables, 1)
	s.Equal(rules.RandomTableEntry{Result: "Gold", Columns: []string{"Fire", "Cone"}}, tables[0].Entries[1])
}

func (s *RandomTablesTestSuite) TestNoTables() {
	s.Empty(randomtables.Parse("You can see in the dark."))
}
