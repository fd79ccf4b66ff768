package scaling_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/scaling"
)

type ScalingTestSuite struct {
	suite.Suite
}

func TestScalingSuite(t *testing.T) {
	suite.Run(t, new(ScalingTestSuite))
}

func level(n int) *int {
	return &n
}

const (
	magicMissile       = "You create three glowing darts of magical force. Each dart hits a creature of your choice that you can see within range."
	magicMissileHigher = "When you cast this spell using a spell slot of 2nd level or higher, the spell creates one more dart for each slot level above 1st."
	eldritchBlast      = "A beam of crackling energy streaks toward a creature within range. The spell creates more than one beam when you reach higher levels: two beams at 5th level, three beams at 11th level, and four beams at 17th level."
)

func (s *ScalingTestSuite) TestSplitHigherLevels() {
	text := "A bright streak flashes.\n\nAt Higher Levels: When you cast this spell using a spell slot of 4th level or higher, the damage increases by 1d6 for each slot level above 3rd.\n\nSource: Player's Handbook p. 241"

	description, higher := scaling.SplitHigherLevels(text)

	s.Equal("A bright streak flashes.\n\nSource: Player's Handbook p. 241", description)
	s.Equal("When you cast this spell using a spell slot of 4th level or higher, the damage increases by 1d6 for each slot level above 3rd.", higher)

	s.Run("no section", func() {
		description, higher := scaling.SplitHigherLevels(" Just text. ")
		s.Equal("Just text.", description)
		s.Empty(higher)
	})
}

func (s *ScalingTestSuite) TestParseIncrement() {
	s.Equal("1d6", scaling.ParseIncrement("the damage increases by 1d6 for each slot level above 3rd"))
	s.Equal("2d8", scaling.ParseIncrement("the healing increases by 2d8"))
	s.Empty(scaling.ParseIncrement("you can target one additional creature"))
}

func (s *ScalingTestSuite) TestParseProjectiles() {
	s.Equal(&rules.ProjectileScaling{Count: 3, PerLevel: 1, Name: "dart"},
		scaling.ParseProjectiles(magicMissile, magicMissileHigher))

	s.Run("no starting count", func() {
		got := scaling.ParseProjectiles("A ray of light.", "you create one additional ray for each slot level above 2nd")
		s.Equal(&rules.ProjectileScaling{Count: 1, PerLevel: 1, Name: "ray"}, got)
	})

	s.Run("count separated from name", func() {
		got := scaling.ParseProjectiles("You hurl four tiny blazing stones at up to four creatures.",
			"the spell creates one more stone for each slot level above 3rd")
		s.Equal(&rules.ProjectileScaling{Count: 4, PerLevel: 1, Name: "stone"}, got)
	})

	s.Run("count names something else", func() {
		got := scaling.ParseProjectiles("Choose two creatures. A ray of fire strikes them.",
			"you create one additional ray for each slot level above 2nd")
		s.Equal(&rules.ProjectileScaling{Count: 1, PerLevel: 1, Name: "ray"}, got)
	})

	s.Run("no projectiles", func() {
		s.Nil(scaling.ParseProjectiles(magicMissile, "the damage increases by 1d6"))
	})
}

func (s *ScalingTestSuite) TestParseBeams() {
	s.Equal(&rules.ProjectileScaling{Count: 1, PerLevel: 1, Name: "beam"}, scaling.ParseBeams(eldritchBlast))
	s.Nil(scaling.ParseBeams(magicMissile))
}

func (s *ScalingTestSuite) TestEffectType() {
	testCases := []struct {
		description string
		expected    rules.EffectType
	}{
		{description: "Fire Damage", expected: rules.EffectDamage},
		{description: "Heal", expected: rules.EffectHealing},
		{description: "Regain Hit Points", expected: rules.EffectHealing},
		{description: "Healing damage", expected: rules.EffectDamage},
		{description: "Temporary Hit Points", expected: rules.EffectOther},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			s.Equal(tc.expected, scaling.EffectType(tc.description))
		})
	}
}

func (s *ScalingTestSuite) TestDamageTypeName() {
	s.Equal("Acid", scaling.DamageTypeName("ACID damage"))
	s.Equal("Fire", scaling.DamageTypeName(" fire Damage "))
	s.Empty(scaling.DamageTypeName("Temporary Hit Points"))
	s.Empty(scaling.DamageTypeName("Extra fire damage"))
}

func (s *ScalingTestSuite) TestParseEffectsCantrip() {
	rolls := []source.Roll{
		{Description: "Force Damage", Formula: "1d10", Level: level(0)},
		{Description: "Force Damage", Formula: "2d10", Level: level(5)},
	}

	got := scaling.ParseEffects(rolls, 0, eldritchBlast, "")

	s.Require().Len(got, 2)
	s.Equal(rules.ScalingCharacterLevel, got[0].ScalingType)
	s.Equal(0, got[0].MinCharacterLevel)
	s.Equal(5, got[1].MinCharacterLevel)
	s.Equal("Force", got[0].DamageType)
	s.Equal(&rules.ProjectileScaling{Count: 1, PerLevel: 1, Name: "beam"}, got[0].Projectiles)
	s.Nil(got[1].Projectiles)
}

func (s *ScalingTestSuite) TestParseEffectsSlotScaling() {
	rolls := []source.Roll{
		{Description: "Temporary Hit Points", Formula: "1d4", Level: level(1)},
		{Description: "Force Damage", Formula: "3d4+3", Level: level(1)},
		{Description: "Force Damage", Formula: "4d4+4", Level: level(2)},
	}

	got := scaling.ParseEffects(rolls, 1, magicMissile, magicMissileHigher+" The damage increases by 1d4.")

	s.Require().Len(got, 3)
	s.Equal(rules.ScalingSpellSlot, got[1].ScalingType)
	s.Equal(2, got[2].MinSpellSlot)
	s.Empty(got[0].ScalingIncrement)
	s.Equal("1d4", got[1].ScalingIncrement)
	s.Nil(got[0].Projectiles)
	s.Equal(&rules.ProjectileScaling{Count: 3, PerLevel: 1, Name: "dart"}, got[1].Projectiles)
	s.Nil(got[2].Projectiles)
}

func (s *ScalingTestSuite) TestParseEffectsWithoutLevel() {
	got := scaling.ParseEffects([]source.Roll{{Description: "Healing", Formula: "1d8"}}, 1, "", "")

	s.Equal([]rules.SpellEffect{{
		Type:        rules.EffectHealing,
		Description: "Healing",
		DiceFormula: "1d8",
		ScalingType: rules.ScalingNone,
	}}, got)

	s.Run("no rolls", func() {
		got := scaling.ParseEffects(nil, 3, "", "")
		s.NotNil(got)
		s.Empty(got)
	})
}
