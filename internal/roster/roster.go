// Package roster decodes knight configuration documents.
//
// A roster is a YAML (or JSON) mapping from knight identifier to record:
//
//	lancelot:
//	  name: Lancelot
//	  power: 35
//	  hp: 100
//	  armour: []
//	  weapon: {name: Metal Sword, power: 50}
//	  potion: null
package roster

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/knight-battles/internal/domain/knight"
	knighterr "github.com/KirkDiggler/knight-battles/internal/errors"
)

// pointer fields distinguish a missing key from a zero value
type knightRecord struct {
	Name   *string         `yaml:"name"`
	Power  *int            `yaml:"power"`
	HP     *int            `yaml:"hp"`
	Armour *[]armourRecord `yaml:"armour"`
	Weapon *weaponRecord   `yaml:"weapon"`
	Potion *potionRecord   `yaml:"potion"`
}

type armourRecord struct {
	Part       string `yaml:"part"`
	Protection *int   `yaml:"protection"`
}

type weaponRecord struct {
	Name  string `yaml:"name"`
	Power *int   `yaml:"power"`
}

type potionRecord struct {
	Name   string        `yaml:"name"`
	Effect *effectRecord `yaml:"effect"`
}

type effectRecord struct {
	Power      int `yaml:"power"`
	Protection int `yaml:"protection"`
	HP         int `yaml:"hp"`
}

// LoadFile decodes the roster stored at path
func LoadFile(path string) (map[string]*knight.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, knighterr.WrapWithCode(err, knighterr.CodeConfiguration, "failed to open roster").
			WithMeta("path", path)
	}
	defer f.Close()

	knights, err := Decode(f)
	if err != nil {
		return nil, knighterr.Wrapf(err, "failed to load roster %s", path).WithMeta("path", path)
	}

	return knights, nil
}

// Decode reads a roster document. Every malformed record is reported in a
// single configuration error.
func Decode(r io.Reader) (map[string]*knight.Config, error) {
	var records map[string]*knightRecord
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, knighterr.Configuration("roster is empty")
		}
		return nil, knighterr.WrapWithCode(err, knighterr.CodeConfiguration, "failed to parse roster")
	}
	if len(records) == 0 {
		return nil, knighterr.Configuration("roster is empty")
	}

	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var errs []error
	knights := make(map[string]*knight.Config, len(records))
	for _, id := range ids {
		cfg, err := records[id].toConfig()
		if err != nil {
			errs = append(errs, fmt.Errorf("knight %q: %w", id, err))
			continue
		}
		knights[id] = cfg
	}

	if len(errs) > 0 {
		return nil, knighterr.WrapWithCode(errors.Join(errs...), knighterr.CodeConfiguration, "invalid roster")
	}

	return knights, nil
}

func (r *knightRecord) toConfig() (*knight.Config, error) {
	if r == nil {
		return nil, errors.New("record is empty")
	}

	var errs []error
	if r.Name == nil {
		errs = append(errs, errors.New("name is required"))
	}
	if r.Power == nil {
		errs = append(errs, errors.New("power is required"))
	}
	if r.HP == nil {
		errs = append(errs, errors.New("hp is required"))
	}
	if r.Armour == nil {
		errs = append(errs, errors.New("armour is required"))
	}
	if r.Weapon == nil {
		errs = append(errs, errors.New("weapon is required"))
	} else if r.Weapon.Power == nil {
		errs = append(errs, errors.New("weapon power is required"))
	}
	if r.Armour != nil {
		for i, piece := range *r.Armour {
			if piece.Protection == nil {
				errs = append(errs, fmt.Errorf("armour piece %d protection is required", i))
			}
		}
	}
	if r.Potion != nil && r.Potion.Effect == nil {
		errs = append(errs, errors.New("potion effect is required"))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	cfg := &knight.Config{
		Name:   *r.Name,
		Power:  *r.Power,
		HP:     *r.HP,
		Armour: make([]*knight.ArmourPiece, 0, len(*r.Armour)),
		Weapon: &knight.Weapon{Name: r.Weapon.Name, Power: *r.Weapon.Power},
	}
	for _, piece := range *r.Armour {
		cfg.Armour = append(cfg.Armour, &knight.ArmourPiece{Part: piece.Part, Protection: *piece.Protection})
	}
	if r.Potion != nil {
		cfg.Potion = &knight.Potion{
			Name: r.Potion.Name,
			Effect: knight.Effect{
				Power:      r.Potion.Effect.Power,
				Protection: r.Potion.Effect.Protection,
				HP:         r.Potion.Effect.HP,
			},
		}
	}

	if err := knight.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
