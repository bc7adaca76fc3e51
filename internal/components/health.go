package components

// Health tracks an entity's hit points and active status effects. Regen
// and invulnerability are plain fields rather than methods: a system owns
// the per-tick logic, the component only owns the data it reads and
// writes.
type Health struct {
	Current       float64        `json:"current"`
	Max           float64        `json:"max"`
	RegenPerSec   float64        `json:"regen_per_sec"`
	Invulnerable  bool           `json:"invulnerable"`
	Effects       []StatusEffect `json:"effects"`
}

// NewHealth returns a Health component at max, with no active effects.
func NewHealth(max float64) Health {
	return Health{Current: max, Max: max}
}

// Alive reports whether Current is above zero.
func (h Health) Alive() bool { return h.Current > 0 }
