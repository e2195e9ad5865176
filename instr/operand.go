package instr

// Segment names a region of VM memory addressed by push and pop.
type Segment int

const (
	NoSegment Segment = iota
	Local
	Argument
	This
	That
	Temp
	Constant
	Pointer
	Static
)

var segmentNames = map[Segment]string{
	Local:    "local",
	Argument: "argument",
	This:     "this",
	That:     "that",
	Temp:     "temp",
	Constant: "constant",
	Pointer:  "pointer",
	Static:   "static",
}

var segmentsByName = map[string]Segment{
	"local":    Local,
	"argument": Argument,
	"this":     This,
	"that":     That,
	"temp":     Temp,
	"constant": Constant,
	"pointer":  Pointer,
	"static":   Static,
}

// Segments lists every addressable segment in declaration order.
func Segments() []Segment {
	return []Segment{Local, Argument, This, That, Temp, Constant, Pointer, Static}
}

// SegmentByName returns the segment spelled name in VM source.
func SegmentByName(name string) (Segment, bool) {
	s, ok := segmentsByName[name]
	return s, ok
}

func (s Segment) String() string {
	if name, ok := segmentNames[s]; ok {
		return name
	}

	return "none"
}

// IsIndirect reports whether the segment is reached through a base-pointer
// cell (LCL, ARG, THIS, THAT).
func (s Segment) IsIndirect() bool {
	switch s {
	case Local, Argument, This, That:
		return true
	default:
		return false
	}
}
