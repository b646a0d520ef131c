package stringart

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BlockSize != 16 || cfg.PinCount != 255 || cfg.MaxLines != 4000 || cfg.StartPin != 0 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.BlockArea() != 256 {
		t.Errorf("BlockArea() = %d, want 256", cfg.BlockArea())
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"minimal", Config{BlockSize: 1, PinCount: 2, MaxLines: 0}, false},
		{"last start pin", Config{BlockSize: 4, PinCount: 10, StartPin: 9}, false},
		{"zero block", Config{BlockSize: 0, PinCount: 10}, true},
		{"negative block", Config{BlockSize: -4, PinCount: 10}, true},
		{"one pin", Config{BlockSize: 4, PinCount: 1}, true},
		{"negative lines", Config{BlockSize: 4, PinCount: 10, MaxLines: -1}, true},
		{"start pin too large", Config{BlockSize: 4, PinCount: 10, StartPin: 10}, true},
		{"negative start pin", Config{BlockSize: 4, PinCount: 10, StartPin: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want wrapped ErrInvalidConfig", err)
			}
		})
	}
}
