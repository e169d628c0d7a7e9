// types.go
package board

// Fixed board shape. Every tier shares the same column count; only the
// number of peg rows and the slot multipliers change.
const (
	ColumnCount = 9
	StartColumn = (ColumnCount - 1) / 2
)

// Tier is a named difficulty: row count plus one multiplier per slot.
type Tier struct {
	Name        string    `yaml:"name" validate:"required"`
	Rows        int       `yaml:"rows" validate:"min=1"`
	Multipliers []float64 `yaml:"multipliers" validate:"required,dive,gt=0"`
}

// File is the YAML layout of a tier table.
type File struct {
	Version string `yaml:"version"`
	Default string `yaml:"default,omitempty"`
	Tiers   []Tier `yaml:"tiers"`
	Notes   string `yaml:"notes,omitempty"`
}

// Config is a read-only snapshot of the active tier.
type Config struct {
	Tier        string    `json:"tier"`
	Columns     int       `json:"columns"`
	Rows        int       `json:"rows"`
	Multipliers []float64 `json:"multipliers"`
}

func (t Tier) config() Config {
	return Config{
		Tier:        t.Name,
		Columns:     ColumnCount,
		Rows:        t.Rows,
		Multipliers: append([]float64(nil), t.Multipliers...),
	}
}

func (t Tier) clone() Tier {
	t.Multipliers = append([]float64(nil), t.Multipliers...)
	return t
}

// Multiplier returns the payout multiplier of slot col.
func (c Config) Multiplier(col int) float64 {
	return c.Multipliers[col]
}

// Validate checks that the snapshot describes a playable board.
func (c Config) Validate() error {
	if c.Columns != ColumnCount {
		return &ConfigError{Tier: c.Tier, Problems: []string{"columns must be 9"}}
	}
	return Validate(Tier{Name: c.Tier, Rows: c.Rows, Multipliers: c.Multipliers})
}
