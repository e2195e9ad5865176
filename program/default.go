package program

// Comp behaviors of the Hack ALU. x is the D register, y is either A or M
// depending on the a-bit of the mnemonic.

func compZero(_, _ uint16) uint16 { return 0 }

func compOne(_, _ uint16) uint16 { return 1 }

func compMinusOne(_, _ uint16) uint16 { return 0xFFFF }

func compX(x, _ uint16) uint16 { return x }

func compY(_, y uint16) uint16 { return y }

func compNotX(x, _ uint16) uint16 { return ^x }

func compNotY(_, y uint16) uint16 { return ^y }

func compNegX(x, _ uint16) uint16 { return -x }

func compNegY(_, y uint16) uint16 { return -y }

func compIncX(x, _ uint16) uint16 { return x + 1 }

func compIncY(_, y uint16) uint16 { return y + 1 }

func compDecX(x, _ uint16) uint16 { return x - 1 }

func compDecY(_, y uint16) uint16 { return y - 1 }

func compAdd(x, y uint16) uint16 { return x + y }

func compXMinusY(x, y uint16) uint16 { return x - y }

func compYMinusX(x, y uint16) uint16 { return y - x }

func compAnd(x, y uint16) uint16 { return x & y }

func compOr(x, y uint16) uint16 { return x | y }

func jumpGT(v int16) bool { return v > 0 }

func jumpEQ(v int16) bool { return v == 0 }

func jumpGE(v int16) bool { return v >= 0 }

func jumpLT(v int16) bool { return v < 0 }

func jumpNE(v int16) bool { return v != 0 }

func jumpLE(v int16) bool { return v <= 0 }

func jumpAlways(int16) bool { return true }
