package testutils

import (
	"github.com/KirkDiggler/knight-battles/internal/domain/knight"
)

// CreateTestLancelot creates lancelot from the reference roster
func CreateTestLancelot() *knight.Config {
	return &knight.Config{
		Name:   "Lancelot",
		Power:  35,
		HP:     100,
		Armour: []*knight.ArmourPiece{},
		Weapon: &knight.Weapon{Name: "Metal Sword", Power: 50},
	}
}

// CreateTestArthur creates arthur from the reference roster
func CreateTestArthur() *knight.Config {
	return &knight.Config{
		Name:  "Arthur",
		Power: 45,
		HP:    75,
		Armour: []*knight.ArmourPiece{
			{Part: "helmet", Protection: 15},
			{Part: "breastplate", Protection: 20},
			{Part: "boots", Protection: 10},
		},
		Weapon: &knight.Weapon{Name: "Two-handed Sword", Power: 55},
		Potion: &knight.Potion{
			Name:   "Berserk",
			Effect: knight.Effect{Power: 15, HP: -5, Protection: 10},
		},
	}
}

// CreateTestMordred creates mordred from the reference roster
func CreateTestMordred() *knight.Config {
	return &knight.Config{
		Name:  "Mordred",
		Power: 30,
		HP:    90,
		Armour: []*knight.ArmourPiece{
			{Part: "breastplate", Protection: 15},
			{Part: "boots", Protection: 10},
		},
		Weapon: &knight.Weapon{Name: "Poisoned Sword", Power: 60},
		Potion: &knight.Potion{
			Name:   "Berserk",
			Effect: knight.Effect{Power: 15, HP: -5, Protection: 10},
		},
	}
}

// CreateTestRedKnight creates red_knight from the reference roster
func CreateTestRedKnight() *knight.Config {
	return &knight.Config{
		Name:  "Red Knight",
		Power: 40,
		HP:    70,
		Armour: []*knight.ArmourPiece{
			{Part: "breastplate", Protection: 25},
		},
		Weapon: &knight.Weapon{Name: "Sword", Power: 45},
		Potion: &knight.Potion{
			Name:   "Blessing",
			Effect: knight.Effect{HP: 10, Power: 5},
		},
	}
}

// CreateTestRoster creates the reference roster keyed by knight identifier
func CreateTestRoster() map[string]*knight.Config {
	return map[string]*knight.Config{
		"lancelot":   CreateTestLancelot(),
		"arthur":     CreateTestArthur(),
		"mordred":    CreateTestMordred(),
		"red_knight": CreateTestRedKnight(),
	}
}

// ReferenceResult is the outcome of the default schedule over CreateTestRoster
func ReferenceResult() map[string]int {
	return map[string]int{
		"Lancelot":   0,
		"Arthur":     35,
		"Mordred":    35,
		"Red Knight": 0,
	}
}
