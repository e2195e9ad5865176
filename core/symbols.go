package core

import "fmt"

// FirstVariable is the address of the first cell handed out to variables.
const FirstVariable = 16

// SymbolTable binds assembler symbols to addresses.
type SymbolTable struct {
	// distributed is the number of variables that have been allocated
	distributed int
	nameToAddr  map[string]uint16
}

// NewSymbolTable creates a table holding the predefined Hack symbols.
func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{
		nameToAddr: map[string]uint16{
			"SP":     0,
			"LCL":    1,
			"ARG":    2,
			"THIS":   3,
			"THAT":   4,
			"SCREEN": 0x4000,
			"KBD":    0x6000,
		},
	}

	for i := 0; i < 16; i++ {
		t.nameToAddr[fmt.Sprintf("R%d", i)] = uint16(i)
	}

	return t
}

// Bind sets the address of name, overriding any earlier binding.
func (t *SymbolTable) Bind(name string, addr uint16) {
	t.nameToAddr[name] = addr
}

// Lookup returns the address bound to name.
func (t *SymbolTable) Lookup(name string) (uint16, bool) {
	addr, ok := t.nameToAddr[name]
	return addr, ok
}

// Resolve returns the address of name, allocating the next variable cell
// when name is unbound.
func (t *SymbolTable) Resolve(name string) uint16 {
	if addr, ok := t.nameToAddr[name]; ok {
		return addr
	}

	addr := uint16(FirstVariable + t.distributed)
	t.distributed++
	t.nameToAddr[name] = addr

	return addr
}

// Variables returns the number of allocated variables.
func (t *SymbolTable) Variables() int {
	return t.distributed
}
