package counters_test

import (
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/counters"
)

func choice(name string, level, value int, subclass string) rules.CounterDefinition {
	return rules.CounterDefinition{Name: name, Level: level, Value: value, Reset: rules.ResetNone, Subclass: subclass}
}

func (s *CountersTestSuite) TestAdditionalAddsToRunningTotal() {
	progress := counters.Progress{"Maneuvers Known": 3}

	got := counters.ParseChoiceProgressions([]rules.Feature{{
		Name:        "Additional Maneuvers",
		Level:       7,
		Description: "You learn two additional maneuvers of your choice.",
	}}, progress)

	s.Equal([]rules.CounterDefinition{choice("Maneuvers Known", 7, 5, "Battle Master")}, got)
	s.Equal(5, progress["Maneuvers Known"])
}

func (s *CountersTestSuite) TestParseChoiceProgressions() {
	testCases := []struct {
		name     string
		features []rules.Feature
		expected []rules.CounterDefinition
	}{
		{
			name: "embedded table",
			features: []rules.Feature{{
				Name:        "Rune Carver (Rune Knight)",
				Level:       3,
				Description: "Fighter Level | Number of Runes\n3rd | 2\n7th | 3\n10th | 4\n15th | 5",
			}},
			expected: []rules.CounterDefinition{
				choice("Runes Known", 3, 2, "Rune Knight"),
				choice("Runes Known", 7, 3, "Rune Knight"),
				choice("Runes Known", 10, 4, "Rune Knight"),
				choice("Runes Known", 15, 5, "Rune Knight"),
			},
		},
		{
			name: "should know",
			features: []rules.Feature{{
				Name:        "Disciple of the Elements",
				Level:       3,
				Description: "At 3rd level you should know 2 elemental disciplines.",
			}},
			expected: []rules.CounterDefinition{choice("Elemental Disciplines Known", 3, 2, "Way of the Four Elements")},
		},
		{
			name: "initial plus growth levels",
			features: []rules.Feature{{
				Name:        "Combat Superiority",
				Level:       3,
				Description: "You learn three maneuvers of your choice. You learn two additional maneuvers of your choice at 7th, 10th, and 15th level.",
			}},
			expected: []rules.CounterDefinition{
				choice("Maneuvers Known", 3, 3, "Battle Master"),
				choice("Maneuvers Known", 7, 5, "Battle Master"),
				choice("Maneuvers Known", 10, 7, "Battle Master"),
				choice("Maneuvers Known", 15, 9, "Battle Master"),
			},
		},
		{
			name: "second option",
			features: []rules.Feature{
				{Name: "Fighting Style", Level: 1, Description: "Choose one of the following styles."},
				{Name: "Additional Fighting Style", Level: 10, Description: "You can choose a second option from the Fighting Style class feature."},
			},
			expected: []rules.CounterDefinition{
				choice("Fighting Styles Known", 1, 1, ""),
				choice("Fighting Styles Known", 10, 2, ""),
			},
		},
		{
			name: "same level mentioned twice",
			features: []rules.Feature{
				{Name: "Metamagic", Level: 3, Description: "You gain two Metamagic options of your choice."},
				{Name: "Metamagic Options", Level: 3, Description: "Choose three of the following."},
			},
			expected: []rules.CounterDefinition{choice("Metamagic Known", 3, 2, "")},
		},
		{
			name:     "unrelated feature",
			features: []rules.Feature{{Name: "Rage", Level: 1, Description: "Choose one of the following."}},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, counters.ParseChoiceProgressions(tc.features, nil))
		})
	}
}
