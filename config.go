package stringart

import "fmt"

// Default configuration values.
const (
	DefaultBlockSize = 16
	DefaultPinCount  = 255
	DefaultMaxLines  = 4000
)

// Config holds the parameters of a run.
type Config struct {
	// BlockSize is the side of a coverage cell in canvas pixels.
	BlockSize int `json:"block_size" yaml:"block_size"`

	// PinCount is the number of pins on the circle. Must be at least 2.
	PinCount int `json:"pin_count" yaml:"pin_count"`

	// MaxLines bounds the number of committed chords. Zero is allowed and
	// yields an empty result.
	MaxLines int `json:"max_lines" yaml:"max_lines"`

	// StartPin is the pin the walk begins at.
	StartPin int `json:"start_pin" yaml:"start_pin"`
}

// DefaultConfig returns a Config with the default block size, pin count
// and line budget, starting at pin 0.
func DefaultConfig() Config {
	return Config{
		BlockSize: DefaultBlockSize,
		PinCount:  DefaultPinCount,
		MaxLines:  DefaultMaxLines,
	}
}

// Validate reports the first problem with c, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.BlockSize <= 0:
		return fmt.Errorf("%w: block size %d must be positive", ErrInvalidConfig, c.BlockSize)
	case c.PinCount < 2:
		return fmt.Errorf("%w: pin count %d must be at least 2", ErrInvalidConfig, c.PinCount)
	case c.MaxLines < 0:
		return fmt.Errorf("%w: max lines %d must not be negative", ErrInvalidConfig, c.MaxLines)
	case c.StartPin < 0 || c.StartPin >= c.PinCount:
		return fmt.Errorf("%w: start pin %d outside [0, %d)", ErrInvalidConfig, c.StartPin, c.PinCount)
	}
	return nil
}

// BlockArea returns the number of pixels in a full coverage cell.
func (c Config) BlockArea() int {
	return c.BlockSize * c.BlockSize
}
