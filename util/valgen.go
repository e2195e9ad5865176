// Package valgen has closures that generate VM test values.
package valgen

// MaxConstant is the largest value push constant accepts.
const MaxConstant = 0x7FFF

// Gen yields the next value each time it is called.
type Gen func() uint16

func MakeConstGen(constant uint16) Gen {
	return func() uint16 {
		return constant
	}
}

// MakeIncreasingGen counts up from start, wrapping past MaxConstant to 0.
func MakeIncreasingGen(start uint16) Gen {
	current := start
	return func() uint16 {
		v := current
		current = (current + 1) & MaxConstant
		return v
	}
}

// MakeLCGGen yields a reproducible pseudo-random sequence of constants.
func MakeLCGGen(seed uint32) Gen {
	state := seed
	return func() uint16 {
		state = state*1103515245 + 12345
		return uint16(state>>16) & MaxConstant
	}
}

// Take collects n values from g.
func Take(g Gen, n int) []uint16 {
	out := make([]uint16, n)
	for i := range out {
		out[i] = g()
	}

	return out
}
