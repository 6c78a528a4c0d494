// Package knight derives a knight's combat stats from its equipment and
// applies incoming damage.
package knight

import (
	knighterr "github.com/KirkDiggler/knight-battles/internal/errors"
)

// Knight is a single combatant. Power, protection and hp are mutated in place
// by PrepareForBattle and TakeDamage; a Knight must not be shared between
// goroutines.
type Knight struct {
	name      string
	basePower int
	baseHP    int
	armour    []ArmourPiece
	weapon    Weapon
	potion    *Potion

	power      int
	hp         int
	protection int
}

// Stats is a read-only snapshot of the derived values
type Stats struct {
	Power      int `json:"power"`
	Protection int `json:"protection"`
	HP         int `json:"hp"`
}

// New builds a knight from its configuration record
func New(cfg *Config) (*Knight, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	armour := make([]ArmourPiece, len(cfg.Armour))
	for i, piece := range cfg.Armour {
		armour[i] = *piece
	}

	k := &Knight{
		name:      cfg.Name,
		basePower: cfg.Power,
		baseHP:    cfg.HP,
		armour:    armour,
		weapon:    *cfg.Weapon,
		power:     cfg.Power,
		hp:        cfg.HP,
	}

	if cfg.Potion != nil {
		potion := *cfg.Potion
		k.potion = &potion
	}

	return k, nil
}

// Validate checks that every required field of the record is present
func Validate(cfg *Config) error {
	if cfg == nil {
		return knighterr.Configuration("knight config is required")
	}
	if cfg.Name == "" {
		return knighterr.Configuration("knight name is required")
	}
	if cfg.Weapon == nil {
		return knighterr.Configurationf("knight %q has no weapon", cfg.Name).
			WithMeta("knight", cfg.Name)
	}
	for i, piece := range cfg.Armour {
		if piece == nil {
			return knighterr.Configurationf("knight %q armour piece %d is empty", cfg.Name, i).
				WithMeta("knight", cfg.Name)
		}
	}

	return nil
}

// PrepareForBattle applies armour, weapon and potion to the base stats.
// It is not idempotent; the coordinator calls it exactly once.
func (k *Knight) PrepareForBattle() {
	k.applyArmour()
	k.applyWeapon()
	k.applyPotion()
}

func (k *Knight) applyArmour() {
	protection := 0
	for _, piece := range k.armour {
		protection += piece.Protection
	}
	k.protection = protection
}

func (k *Knight) applyWeapon() {
	k.power += k.weapon.Power
}

// potion deltas are added as-is, negative ones included
func (k *Knight) applyPotion() {
	if k.potion == nil {
		return
	}

	k.power += k.potion.Effect.Power
	k.protection += k.potion.Effect.Protection
	k.hp += k.potion.Effect.HP
}

// TakeDamage reduces hp by the damage left after protection. Hp floors at 0.
func (k *Knight) TakeDamage(damage int) error {
	if damage < 0 {
		return knighterr.InvalidDamagef("knight %q cannot take negative damage %d", k.name, damage).
			WithMeta("knight", k.name)
	}

	k.Absorb(damage)

	return nil
}

// Absorb applies an opponent's attack power as-is. Whatever protection does
// not stop comes off hp; an attack at or below protection, negative power
// included, deals nothing.
func (k *Knight) Absorb(power int) {
	actual := max(0, power-k.protection)
	k.hp = max(0, k.hp-actual)
}

func (k *Knight) Name() string {
	return k.name
}

func (k *Knight) Power() int {
	return k.power
}

func (k *Knight) Protection() int {
	return k.protection
}

func (k *Knight) HP() int {
	return k.hp
}

// IsDefeated reports whether the knight has no hp left
func (k *Knight) IsDefeated() bool {
	return k.hp == 0
}

func (k *Knight) Stats() Stats {
	return Stats{
		Power:      k.power,
		Protection: k.protection,
		HP:         k.hp,
	}
}
