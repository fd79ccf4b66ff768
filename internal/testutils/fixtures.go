package testutils

import (
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
)

// PHBCitation is the citation line most fixtures end with
const PHBCitation = "\n\nSource: Player's Handbook (2014) p. 70"

func level(n int) *int {
	return &n
}

// CreateTestFighter creates a fighter with a Battle Master subclass, a
// multiclass feature and starting equipment
func CreateTestFighter() *source.Class {
	return &source.Class{
		Name:        "Fighter",
		HitDie:      10,
		Proficiency: "Strength, Constitution, Acrobatics, Animal Handling, Athletics",
		NumSkills:   2,
		Armor:       "Light Armor, Medium Armor, Heavy Armor, Shields",
		Weapons:     "Simple Weapons, Martial Weapons",
		Autolevels: []source.Autolevel{
			{
				Level: 1,
				Features: []source.Feature{
					{Name: "Starting Fighter", Text: "(a) a greataxe or (b) any martial melee weapon"},
					{
						Name: "Multiclass Fighter",
						Text: "To multiclass as a Fighter you need:\nAbility Score Minimum:\n• Strength 13, or\n• Dexterity 13\nProficiencies Gained: Light armor",
					},
					{Name: "Fighting Style", Text: "Choose one of the following styles." + PHBCitation},
					{
						Name:  "Second Wind",
						Text:  "On your turn, you can use a bonus action to regain hit points. Once you use this feature, you must finish a short or long rest before you can use it again." + PHBCitation,
						Rolls: []source.Roll{{Description: "Healing", Formula: "1d10+1", Level: level(1)}},
					},
				},
			},
			{
				Level: 3,
				Features: []source.Feature{
					{Name: "Martial Archetype: Battle Master", Text: "Those who emulate the archetypal Battle Master employ martial techniques."},
					{
						Name: "Combat Superiority (Battle Master)",
						Text: "You learn three maneuvers of your choice. You learn two additional maneuvers of your choice at 7th, 10th, and 15th level.",
					},
				},
				Counters: []source.Counter{{Name: "Superiority Die", Value: 4, Reset: "S", Subclass: "Battle Master"}},
			},
			{
				Level:            4,
				ScoreImprovement: true,
				Features:         []source.Feature{{Name: "Ability Score Improvement", Text: "You can increase one ability score of your choice by 2."}},
			},
		},
	}
}

// CreateTestRogue creates a rogue with expertise, a feature-named language
// and an Arcane Trickster subclass that casts from optional slots
func CreateTestRogue() *source.Class {
	return &source.Class{
		Name:         "Rogue",
		HitDie:       8,
		Proficiency:  "Dexterity, Intelligence, Acrobatics, Stealth",
		NumSkills:    4,
		Armor:        "Light Armor",
		Tools:        "Thieves' Tools",
		SpellAbility: "Intelligence",
		Autolevels: []source.Autolevel{
			{
				Level: 1,
				Features: []source.Feature{
					{Name: "Expertise", Text: "You gain expertise in the Stealth skill."},
					{Name: "Thieves' Cant", Text: "You know thieves' cant, a secret mix of dialect and jargon."},
				},
			},
			{
				Level: 3,
				Slots: &source.Slots{Values: "3,2", Optional: true},
				Features: []source.Feature{
					{Name: "Roguish Archetype: Arcane Trickster", Text: "You enhance your fine-honed skills with magic."},
					{Name: "Spellcasting (Arcane Trickster)", Text: "You know three 1st-level wizard spells."},
				},
			},
		},
	}
}

// CreateTestDwarf creates a hill dwarf subrace node
func CreateTestDwarf() *source.Race {
	return &source.Race{
		Name:        "Dwarf (Hill)",
		Size:        "M",
		Speed:       25,
		Ability:     "Con 2, Wis 1",
		Proficiency: "Battleaxe, Handaxe, Light Hammer, Warhammer",
		Resist:      "poison",
		Traits: []source.Trait{
			{Name: "Age", Text: "Dwarves mature at the same rate as humans."},
			{Name: "Speed", Text: "Your base walking speed is 25 feet. Your speed is not reduced by wearing heavy armor."},
			{Name: "Dwarven Resilience", Text: "You have advantage on saving throws against poison, and you have resistance against poison damage."},
			{Name: "Languages", Text: "You can speak, read, and write Common and Dwarvish." + PHBCitation},
		},
	}
}

// CreateTestTortle creates a race with natural armor, claws, a swim speed
// and a trait limited to two uses
func CreateTestTortle() *source.Race {
	return &source.Race{
		Name:  "Tortle",
		Size:  "M",
		Speed: 30,
		Traits: []source.Trait{
			{Name: "Claws", Text: "Your claws are natural weapons, which you can use to make unarmed strikes. If you hit with them, you deal slashing damage equal to 1d4 + your Strength modifier."},
			{Name: "Natural Armor", Text: "Your shell provides you a base AC of 17. You can't wear armor, but you can use a shield and still gain this benefit."},
			{Name: "Shell Defense", Text: "You can withdraw into your shell as an action. You can use this trait twice, and you regain all expended uses when you finish a long rest."},
			{Name: "Swimmer", Text: "You have a swimming speed of 30 feet."},
		},
	}
}

// CreateTestAcolyte creates a background whose description carries the
// usual bullet lines, plus a personality table
func CreateTestAcolyte() *source.Background {
	return &source.Background{
		Name:        "Acolyte",
		Proficiency: "Insight, Religion",
		Traits: []source.Trait{
			{
				Name: "Description",
				Text: "You have spent your life in the service of a temple.\n\n" +
					"• Skill Proficiencies: Insight, Religion\n" +
					"• Tool Proficiencies: One type of gaming set\n" +
					"• Languages: Two of your choice\n" +
					"• Equipment: A holy symbol, a prayer book, 5 sticks of incense, vestments, a set of common clothes, and a pouch containing 15 gp" +
					PHBCitation,
			},
			{Name: "Feature: Shelter of the Faithful", Text: "You command the respect of those who share your faith."},
			{
				Name: "Personality Trait",
				Text: "d4 | Personality Trait\n1 | I idolize a particular hero of my faith.\n2 | I can find common ground between the fiercest enemies.\n3 | I see omens in every event and action.\n4 | Nothing can shake my optimistic attitude.",
			},
		},
	}
}

// CreateTestMobile creates a feat with a speed bonus and a terrain rule
func CreateTestMobile() *source.Feat {
	return &source.Feat{
		Name: "Mobile",
		Text: "You are exceptionally speedy and agile. You gain the following benefits:\n" +
			"• Your speed increases by 10 feet.\n" +
			"• When you use the Dash action, difficult terrain doesn't cost you extra movement on that turn." + PHBCitation,
	}
}

// CreateTestWand creates a charged magic item with a dawn recharge
func CreateTestWand() *source.Item {
	return &source.Item{
		Name:  "Wand of Magic Missiles",
		Type:  "WD",
		Magic: true,
		Text: "This wand has 7 charges. While holding it, you can use an action to expend 1 or more of its charges to cast the magic missile spell from it. " +
			"The wand regains 1d6 + 1 expended charges daily at dawn.\n\nSource: Dungeon Master's Guide p. 211",
	}
}

// CreateTestFireball creates a leveled damage spell with a save and a
// higher-level section
func CreateTestFireball() *source.Spell {
	return &source.Spell{
		Name:   "Fireball",
		Level:  3,
		School: "EV",
		Text: "A bright streak flashes from your pointing finger. Each creature in a 20-foot-radius sphere must make a Dexterity saving throw. " +
			"A target takes 8d6 fire damage on a failed save, or half as much damage on a successful one.\n\n" +
			"At Higher Levels: When you cast this spell using a spell slot of 4th level or higher, the damage increases by 1d6 for each slot level above 3rd." + PHBCitation,
		Rolls: []source.Roll{{Description: "Fire Damage", Formula: "8d6", Level: level(3)}},
	}
}

// CreateTestBundle creates a bundle holding one of each entity fixture
func CreateTestBundle() *source.Bundle {
	return &source.Bundle{
		Classes:     []*source.Class{CreateTestFighter()},
		Races:       []*source.Race{CreateTestDwarf()},
		Backgrounds: []*source.Background{CreateTestAcolyte()},
		Feats:       []*source.Feat{CreateTestMobile()},
		Items:       []*source.Item{CreateTestWand()},
		Spells:      []*source.Spell{CreateTestFireball()},
	}
}
