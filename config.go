package rowpattern

import "fmt"

// Config controls the initial sizing of Captures.
//
// All values are starting capacities, not limits: the thread-ID space and
// every per-thread list grow on demand. Tuning only affects how much
// reallocation happens before the structures reach their working size.
//
// Example:
//
//	config := rowpattern.DefaultConfig()
//	config.InitialThreadCapacity = 64 // pattern with many alternatives
//	captures := rowpattern.NewCapturesWithConfig(config)
type Config struct {
	// InitialThreadCapacity is the number of matcher thread IDs the key
	// arrays are pre-sized for.
	// Default: 16
	InitialThreadCapacity int

	// CaptureSlotCapacity is the initial capacity of each per-thread
	// capture-boundary list. Boundaries come in start/end pairs, so this
	// should be even.
	// Default: 8
	CaptureSlotCapacity int

	// LabelCapacity is the initial capacity of each per-thread label list.
	// Labels accumulate one per matched input row.
	// Default: 16
	LabelCapacity int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		InitialThreadCapacity: 16,
		CaptureSlotCapacity:   8,
		LabelCapacity:         16,
	}
}

// NewCapturesWithConfig creates per-thread capture state sized according to
// config.
//
// Panics if any capacity is negative (a programming error; this layer has
// no recoverable error paths).
func NewCapturesWithConfig(config Config) *Captures {
	if config.InitialThreadCapacity < 0 || config.CaptureSlotCapacity < 0 || config.LabelCapacity < 0 {
		panic(fmt.Sprintf("rowpattern: negative capacity in config %+v", config))
	}
	return NewCaptures(config.InitialThreadCapacity, config.CaptureSlotCapacity, config.LabelCapacity)
}
