package core

import (
	"github.com/sarchlab/akita/v4/sim"
)

// DefaultMemorySize covers the data RAM, the screen and the keyboard.
const DefaultMemorySize = 0x6001

// Builder can create new cores.
type Builder struct {
	engine     sim.Engine
	freq       sim.Freq
	memorySize int
	stepLimit  uint64
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithMemorySize sets the number of RAM cells.
func (b Builder) WithMemorySize(cells int) Builder {
	if cells <= 0 || cells > 0x10000 {
		panic("memory size must be between 1 and 65536 cells")
	}
	b.memorySize = cells
	return b
}

// WithStepLimit stops the core with ErrStepLimit after n instructions. Zero
// means no limit.
func (b Builder) WithStepLimit(n uint64) Builder {
	b.stepLimit = n
	return b
}

func NewBuilder() Builder {
	return Builder{
		freq:       1 * sim.GHz,
		memorySize: DefaultMemorySize,
	}
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	c := &Core{
		stepLimit: b.stepLimit,
	}

	size := b.memorySize
	if size == 0 {
		size = DefaultMemorySize
	}

	freq := b.freq
	if freq == 0 {
		freq = 1 * sim.GHz
	}

	c.TickingComponent = sim.NewTickingComponent(name, b.engine, freq, c)
	c.state = cpuState{
		Memory: make([]uint16, size),
	}

	return c
}
