// Package battle resolves a fixed schedule of one-exchange fights between
// configured knights.
package battle

import (
	"sort"

	"go.uber.org/zap"

	"github.com/KirkDiggler/knight-battles/internal/domain/knight"
	knighterr "github.com/KirkDiggler/knight-battles/internal/errors"
)

// Status is the lifecycle position of a coordinator run
type Status string

const (
	StatusConstructed Status = "constructed"
	StatusPrepared    Status = "prepared"
	StatusResolved    Status = "resolved"
	StatusReported    Status = "reported"
	StatusFailed      Status = "failed"
)

// Result maps knight name to final hp
type Result map[string]int

// Fight records the hp of both knights around one pairing
type Fight struct {
	Pairing      Pairing `json:"pairing"`
	FirstBefore  int     `json:"first_before"`
	FirstAfter   int     `json:"first_after"`
	SecondBefore int     `json:"second_before"`
	SecondAfter  int     `json:"second_after"`
}

// CoordinatorConfig holds what a coordinator is built from
type CoordinatorConfig struct {
	// Knights maps knight identifier to its configuration record
	Knights map[string]*knight.Config

	// Schedule defaults to DefaultSchedule when nil
	Schedule Schedule

	Logger *zap.Logger
}

// Coordinator owns the knights of one battle run. It is single use.
type Coordinator struct {
	knights  map[string]*knight.Knight
	order    []string
	schedule Schedule
	fights   []Fight
	status   Status
	logger   *zap.Logger
}

// NewCoordinator builds one knight per configured entry and checks that the
// schedule only names configured knights
func NewCoordinator(cfg *CoordinatorConfig) (*Coordinator, error) {
	if cfg == nil {
		return nil, knighterr.Configuration("coordinator config is required")
	}

	schedule := cfg.Schedule
	if schedule == nil {
		schedule = DefaultSchedule()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	order := make([]string, 0, len(cfg.Knights))
	for id := range cfg.Knights {
		order = append(order, id)
	}
	sort.Strings(order)

	knights := make(map[string]*knight.Knight, len(cfg.Knights))
	names := make(map[string]string, len(cfg.Knights))
	for _, id := range order {
		k, err := knight.New(cfg.Knights[id])
		if err != nil {
			return nil, knighterr.Wrapf(err, "invalid knight %q", id).WithMeta("knight_id", id)
		}

		if other, exists := names[k.Name()]; exists {
			return nil, knighterr.Configurationf("knights %q and %q share the name %q", other, id, k.Name()).
				WithMeta("knight_id", id)
		}
		names[k.Name()] = id
		knights[id] = k
	}

	for _, id := range schedule.IDs() {
		if _, exists := knights[id]; !exists {
			return nil, knighterr.Configurationf("schedule references unknown knight %q", id).
				WithMeta("knight_id", id)
		}
	}

	// owned copy so callers cannot reorder pairings mid-run
	owned := make(Schedule, len(schedule))
	copy(owned, schedule)

	return &Coordinator{
		knights:  knights,
		order:    order,
		schedule: owned,
		status:   StatusConstructed,
		logger:   logger,
	}, nil
}

// ConductBattle prepares every knight, resolves the schedule and reports the
// final hp of every knight by name. It may be called once; on error no result
// is returned.
func (c *Coordinator) ConductBattle() (Result, error) {
	if c.status != StatusConstructed {
		return nil, knighterr.FailedPreconditionf("battle already conducted, coordinator is %s", c.status)
	}

	c.prepareAll()

	fights, err := c.fightAll()
	if err != nil {
		c.status = StatusFailed
		return nil, err
	}
	c.fights = fights
	c.status = StatusResolved

	result := c.report()
	c.status = StatusReported

	c.logger.Info("battle conducted",
		zap.Int("knights", len(c.knights)),
		zap.Int("fights", len(fights)),
	)

	return result, nil
}

func (c *Coordinator) prepareAll() {
	for _, id := range c.order {
		k := c.knights[id]
		k.PrepareForBattle()
		c.logger.Debug("knight prepared",
			zap.String("knight_id", id),
			zap.Int("power", k.Power()),
			zap.Int("protection", k.Protection()),
			zap.Int("hp", k.HP()),
		)
	}
	c.status = StatusPrepared
}

func (c *Coordinator) fightAll() ([]Fight, error) {
	fights := make([]Fight, 0, len(c.schedule))
	for _, pairing := range c.schedule {
		fight, err := c.fight(pairing)
		if err != nil {
			return nil, err
		}
		fights = append(fights, fight)
	}
	return fights, nil
}

// fight reads both powers before either knight is damaged
func (c *Coordinator) fight(pairing Pairing) (Fight, error) {
	first, err := c.lookup(pairing.First)
	if err != nil {
		return Fight{}, err
	}
	second, err := c.lookup(pairing.Second)
	if err != nil {
		return Fight{}, err
	}

	firstPower, secondPower := first.Power(), second.Power()
	fight := Fight{
		Pairing:      pairing,
		FirstBefore:  first.HP(),
		SecondBefore: second.HP(),
	}

	// powers are used as derived, a potion-weakened attacker deals nothing
	first.Absorb(secondPower)
	second.Absorb(firstPower)

	fight.FirstAfter = first.HP()
	fight.SecondAfter = second.HP()

	c.logger.Debug("fight resolved",
		zap.Stringer("pairing", pairing),
		zap.Int("first_hp", fight.FirstAfter),
		zap.Int("second_hp", fight.SecondAfter),
	)

	return fight, nil
}

// lookup guards resolution against a schedule that no longer matches the
// knights, which NewCoordinator otherwise rules out
func (c *Coordinator) lookup(id string) (*knight.Knight, error) {
	k, exists := c.knights[id]
	if !exists {
		return nil, knighterr.NotFoundf("knight %q not found", id).WithMeta("knight_id", id)
	}
	return k, nil
}

func (c *Coordinator) report() Result {
	result := make(Result, len(c.knights))
	for _, k := range c.knights {
		result[k.Name()] = k.HP()
	}
	return result
}

// Fights returns the per-pairing records of a completed run
func (c *Coordinator) Fights() []Fight {
	out := make([]Fight, len(c.fights))
	copy(out, c.fights)
	return out
}

func (c *Coordinator) Status() Status {
	return c.status
}

// Knight returns the knight held under id
func (c *Coordinator) Knight(id string) (*knight.Knight, bool) {
	k, exists := c.knights[id]
	return k, exists
}
