package jtype

// Kind identifies one of the eight primitive value kinds.
type Kind uint8

const (
	Invalid Kind = iota
	Boolean
	Char
	Byte
	Short
	Int
	Long
	Float
	Double
)

var kindNames = [...]string{
	Invalid: "invalid",
	Boolean: "boolean",
	Char:    "char",
	Byte:    "byte",
	Short:   "short",
	Int:     "int",
	Long:    "long",
	Float:   "float",
	Double:  "double",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// IsNumeric reports whether k participates in numeric promotion.
func (k Kind) IsNumeric() bool {
	return k >= Char && k <= Double
}

// IsIntegral reports whether k is an integral kind (char included).
func (k Kind) IsIntegral() bool {
	return k >= Char && k <= Long
}

// IsFloating reports whether k is float or double.
func (k Kind) IsFloating() bool {
	return k == Float || k == Double
}

// Width returns the kind's width in bits.
func (k Kind) Width() int {
	switch k {
	case Boolean:
		return 1
	case Byte:
		return 8
	case Char, Short:
		return 16
	case Int, Float:
		return 32
	case Long, Double:
		return 64
	}
	return 0
}

// widenTargets[k] holds the kinds k converts to without loss of magnitude.
var widenTargets = map[Kind][]Kind{
	Byte:  {Short, Int, Long, Float, Double},
	Short: {Int, Long, Float, Double},
	Char:  {Int, Long, Float, Double},
	Int:   {Long, Float, Double},
	Long:  {Float, Double},
	Float: {Double},
}

// IsWidening reports whether converting from one kind to the other is a
// widening primitive conversion. Identity is not widening.
func IsWidening(from, to Kind) bool {
	for _, t := range widenTargets[from] {
		if t == to {
			return true
		}
	}
	return false
}

// IsNarrowing reports whether converting from one kind to the other is a
// narrowing primitive conversion (bits are discarded or rounded).
func IsNarrowing(from, to Kind) bool {
	if !from.IsNumeric() || !to.IsNumeric() || from == to {
		return false
	}
	return !IsWidening(from, to)
}

// Promote returns the kind binary numeric promotion selects for a pair of
// numeric operands: double if either is double, else float, else long,
// else int.
func Promote(a, b Kind) Kind {
	switch {
	case a == Double || b == Double:
		return Double
	case a == Float || b == Float:
		return Float
	case a == Long || b == Long:
		return Long
	default:
		return Int
	}
}

// PromoteUnary returns the kind unary promotion selects for a single
// operand: byte, short and char promote to int, the rest are unchanged.
func PromoteUnary(k Kind) Kind {
	switch k {
	case Byte, Short, Char:
		return Int
	}
	return k
}
