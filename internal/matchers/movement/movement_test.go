package movement_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/movement"
)

type MovementTestSuite struct {
	suite.Suite
}

func TestMovementSuite(t *testing.T) {
	suite.Run(t, new(MovementTestSuite))
}

func (s *MovementTestSuite) TestParseSpeeds() {
	testCases := []struct {
		name     string
		text     string
		walking  int
		expected []rules.SpeedGrant
	}{
		{
			name:     "flying speed",
			text:     "You have a flying speed of 50 feet. To use this speed, you can't be wearing medium or heavy armor.",
			walking:  25,
			expected: []rules.SpeedGrant{{MovementType: movement.TypeFly, Feet: 50}},
		},
		{
			name:     "equal to walking",
			text:     "You have a swimming speed equal to your walking speed.",
			walking:  30,
			expected: []rules.SpeedGrant{{MovementType: movement.TypeSwim, Feet: 30, EqualsWalking: true}},
		},
		{
			name:    "fly then swim",
			text:    "You have a flying speed of 50 feet. You also have a swim speed equal to your walking speed.",
			walking: 30,
			expected: []rules.SpeedGrant{
				{MovementType: movement.TypeFly, Feet: 50},
				{MovementType: movement.TypeSwim, Feet: 30, EqualsWalking: true},
			},
		},
		{
			name:     "base walking speed",
			text:     "Your base walking speed is 25 feet.",
			expected: []rules.SpeedGrant{{MovementType: movement.TypeWalk, Feet: 25}},
		},
		{
			name:     "first mention wins",
			text:     "You have a climbing speed of 20 feet. Later, your climbing speed of 30 feet applies.",
			expected: []rules.SpeedGrant{{MovementType: movement.TypeClimb, Feet: 20}},
		},
		{
			name: "no speed",
			text: "You can see in dim light within 60 feet of you.",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, movement.ParseSpeeds(tc.text, tc.walking))
		})
	}
}

func (s *MovementTestSuite) TestParseModifiers() {
	testCases := []struct {
		name     string
		text     string
		expected []rules.MovementModifier
	}{
		{
			name: "climbing costs normal",
			text: "Climbing doesn't cost you extra movement.",
			expected: []rules.MovementModifier{
				{Type: rules.MovementCost, Activity: movement.ActivityClimbing, Cost: rules.CostNormal},
			},
		},
		{
			name: "standing from prone",
			text: "When you are prone, standing up uses only 5 feet of your movement.",
			expected: []rules.MovementModifier{
				{Type: rules.MovementCost, Activity: movement.ActivityStandingUp, Cost: "5"},
			},
		},
		{
			name: "running jump",
			text: "You can make a running long jump or a running high jump after moving only 5 feet on foot, rather than 10 feet.",
			expected: []rules.MovementModifier{
				{Type: rules.MovementCost, Activity: movement.ActivityRunningJump, Cost: "5"},
			},
		},
		{
			name: "nonmagical difficult terrain",
			text: "Moving through nonmagical difficult terrain costs you no extra movement.",
			expected: []rules.MovementModifier{
				{Type: rules.MovementCost, Activity: movement.ActivityDifficultTerrain, Cost: rules.CostNormal, Condition: "nonmagical"},
			},
		},
		{
			name: "speed bonus with condition",
			text: "Your speed increases by 10 feet while you aren't wearing heavy armor.",
			expected: []rules.MovementModifier{
				{Type: rules.MovementSpeedBonus, Value: 10, MovementType: movement.TypeWalk, Condition: "while you aren't wearing heavy armor"},
			},
		},
		{
			name: "no movement text",
			text: "You have advantage on Wisdom saving throws.",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, movement.ParseModifiers(tc.text))
		})
	}
}

func (s *MovementTestSuite) TestParseBaseWalking() {
	feet, ok := movement.ParseBaseWalking("Your base walking speed is 25 feet, and it isn't reduced by heavy armor.")
	s.True(ok)
	s.Equal(25, feet)

	_, ok = movement.ParseBaseWalking("You have a flying speed of 50 feet.")
	s.False(ok)
}
