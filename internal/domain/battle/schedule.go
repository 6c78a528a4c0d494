package battle

import "fmt"

// Pairing names two knights, by identifier, that exchange damage once
type Pairing struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

func (p Pairing) String() string {
	return fmt.Sprintf("%s vs %s", p.First, p.Second)
}

// Schedule is the ordered list of pairings resolved by a coordinator
type Schedule []Pairing

// DefaultSchedule returns the reference schedule
func DefaultSchedule() Schedule {
	return Schedule{
		{First: "lancelot", Second: "mordred"},
		{First: "arthur", Second: "red_knight"},
	}
}

// IDs returns every identifier referenced by the schedule, in order of first appearance
func (s Schedule) IDs() []string {
	seen := make(map[string]bool, len(s)*2)
	ids := make([]string, 0, len(s)*2)
	for _, p := range s {
		for _, id := range []string{p.First, p.Second} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
