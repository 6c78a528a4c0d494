package knight

// ArmourPiece adds protection. Part is a display label such as "helmet".
type ArmourPiece struct {
	Part       string `json:"part,omitempty"`
	Protection int    `json:"protection"`
}

type Weapon struct {
	Name  string `json:"name,omitempty"`
	Power int    `json:"power"`
}

// Effect holds the stat deltas of a potion. Absent keys are zero.
type Effect struct {
	Power      int `json:"power,omitempty"`
	Protection int `json:"protection,omitempty"`
	HP         int `json:"hp,omitempty"`
}

type Potion struct {
	Name   string `json:"name,omitempty"`
	Effect Effect `json:"effect"`
}

// Config is the static record a knight is built from
type Config struct {
	Name   string         `json:"name"`
	Power  int            `json:"power"`
	HP     int            `json:"hp"`
	Armour []*ArmourPiece `json:"armour"`
	Weapon *Weapon        `json:"weapon"`
	Potion *Potion        `json:"potion,omitempty"`
}

// Clone returns a deep copy so stored records cannot be mutated through a caller's pointer
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := &Config{
		Name:  c.Name,
		Power: c.Power,
		HP:    c.HP,
	}

	if c.Armour != nil {
		out.Armour = make([]*ArmourPiece, len(c.Armour))
		for i, piece := range c.Armour {
			if piece != nil {
				p := *piece
				out.Armour[i] = &p
			}
		}
	}

	if c.Weapon != nil {
		w := *c.Weapon
		out.Weapon = &w
	}

	if c.Potion != nil {
		p := *c.Potion
		out.Potion = &p
	}

	return out
}
