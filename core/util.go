package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	LevelTrace slog.Level = slog.LevelInfo + 1
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// MemoryRange is a half-open range of RAM addresses shown by PrintState.
type MemoryRange struct {
	Title      string
	Start, End uint16
}

// DefaultRanges covers the pointer cells, temp, scratch and the bottom of
// the stack.
var DefaultRanges = []MemoryRange{
	{Title: "Pointers", Start: 0, End: 5},
	{Title: "Temp", Start: 5, End: 13},
	{Title: "Scratch", Start: 13, End: 16},
	{Title: "Stack", Start: 256, End: 264},
}

// PrintState writes the registers and the given RAM ranges of c as tables.
func PrintState(w io.Writer, c *Core, ranges ...MemoryRange) {
	if len(ranges) == 0 {
		ranges = DefaultRanges
	}

	a, d, pc := c.Registers()

	regTable := table.NewWriter()
	regTable.SetOutputMirror(w)
	regTable.SetTitle(fmt.Sprintf("%s registers", c.Name()))
	regTable.AppendHeader(table.Row{"A", "D", "PC", "Steps"})
	regTable.AppendRow(table.Row{a, int16(d), pc, c.Steps()})
	regTable.Render()

	memTable := table.NewWriter()
	memTable.SetOutputMirror(w)
	memTable.SetTitle("RAM")
	memTable.AppendHeader(table.Row{"Region", "Address", "Value"})

	for _, r := range ranges {
		for addr := r.Start; addr < r.End && int(addr) < c.MemorySize(); addr++ {
			memTable.AppendRow(table.Row{r.Title, addr, int16(c.ReadMemory(addr))})
		}
		memTable.AppendSeparator()
	}

	memTable.Render()
}

// LogState dumps the registers at debug level.
func LogState(c *Core) {
	a, d, pc := c.Registers()
	slog.Debug("StateCheckpoint",
		"Core", c.Name(),
		"A", a,
		"D", d,
		"PC", pc,
		"Steps", c.Steps(),
		"Err", c.Err(),
	)
}
