package wrapper

import "github.com/boxvm/boxvm/pkg/jtype"

// Character wraps a char. Code units 0 through 127 are cached.
type Character struct {
	value uint16
}

var characterCache [128]*Character

func init() {
	for i := range characterCache {
		characterCache[i] = &Character{value: uint16(i)}
	}
}

func CharacterValueOf(c uint16) *Character {
	if c < 128 {
		return characterCache[c]
	}
	return &Character{value: c}
}

func (c *Character) CharValue() uint16 { return c.value }

func (c *Character) Kind() jtype.Kind { return jtype.Char }

func (c *Character) Value() jtype.Value { return jtype.CharOf(c.value) }

func (c *Character) String() string { return jtype.Format(c.Value()) }
