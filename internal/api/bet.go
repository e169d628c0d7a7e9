package api

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/xtding233/plinko-backend/internal/plinko"
)

// betInput accepts the bet as a JSON string ("12.5") or number (12.5).
// Numbers keep their literal text so no float rounding sneaks in.
type betInput jsoniter.RawMessage

func (b *betInput) UnmarshalJSON(data []byte) error {
	*b = append((*b)[:0], data...)
	return nil
}

// raw returns the bet text; empty when the field was absent or null.
func (b betInput) raw() (string, error) {
	data := bytes.TrimSpace([]byte(b))
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		return "", nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", fmt.Errorf("%w: %s", plinko.ErrInvalidBet, data)
		}
		if s == "" {
			return "", fmt.Errorf("%w: empty", plinko.ErrInvalidBet)
		}
		return s, nil
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", plinko.ErrInvalidBet, data)
	}
}
