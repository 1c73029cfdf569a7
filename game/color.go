package game

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Color of an actor, box, button or goal. Colors are numbered in the order
// actors are spawned.
type Color int8

// AnyColor is used for boxes any actor can push and buttons any actor
// or box can press.
const AnyColor Color = -1

const MaxColors = 4

// Pushable returns true if an actor of the given color can push a box of
// this color.
func (c Color) Pushable(actor Color) bool {
	return c == AnyColor || c == actor
}

// Presses returns true if something of color other presses a button of
// this color.
func (c Color) Presses(other Color) bool {
	return c == AnyColor || c == other
}

func (c Color) String() string {
	if c == AnyColor {
		return "any"
	}

	return strconv.Itoa(int(c))
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Value == "any" {
		*c = AnyColor
		return nil
	}

	var idx int
	if err := value.Decode(&idx); err != nil {
		return fmt.Errorf("line %d: color must be a number or 'any': %w", value.Line, err)
	}

	if idx < 0 || idx >= MaxColors {
		return fmt.Errorf("line %d: color %d out of range", value.Line, idx)
	}

	*c = Color(idx)

	return nil
}
