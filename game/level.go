package game

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oliverbestmann/harmony/gm"
	"gopkg.in/yaml.v3"
)

//go:embed levels/levels.yaml
var defaultLevels []byte

// Tiles of a level map.
const (
	TileWall  = '#'
	TileFloor = '.'
	TileVoid  = '~'
)

// Pos is a level local cell, written as [x, y] in level files.
type Pos gm.IVec

func (p *Pos) UnmarshalYAML(value *yaml.Node) error {
	var xy [2]int
	if err := value.Decode(&xy); err != nil {
		return fmt.Errorf("line %d: cell must be [x, y]: %w", value.Line, err)
	}

	*p = Pos{X: xy[0], Y: xy[1]}
	return nil
}

func (p Pos) IVec() gm.IVec {
	return gm.IVec(p)
}

type BoxSpec struct {
	Cell  Pos   `yaml:"cell"`
	Color Color `yaml:"color"`
}

type SlaveSpec struct {
	Cell  Pos   `yaml:"cell"`
	Color Color `yaml:"color"`
}

type ButtonSpec struct {
	Cell   Pos         `yaml:"cell"`
	Color  Color       `yaml:"color"`
	Gates  []Pos       `yaml:"gates"`
	Slaves []SlaveSpec `yaml:"slaves"`
	Wires  []Pos       `yaml:"wires"`
}

type GoalSpec struct {
	Cell  Pos   `yaml:"cell"`
	Color Color `yaml:"color"`
}

// Level is one room of the game.
type Level struct {
	Name    string       `yaml:"name"`
	Tiles   string       `yaml:"tiles"`
	Spawns  []Pos        `yaml:"spawns"` // one per color, in spawn order
	Boxes   []BoxSpec    `yaml:"boxes"`
	Buttons []ButtonSpec `yaml:"buttons"`
	Goals   []GoalSpec   `yaml:"goals"`

	rows []string
}

type levelFile struct {
	Levels []Level `yaml:"levels"`
}

// TileAt returns the tile at the given level local cell.
func (l *Level) TileAt(cell gm.IVec) byte {
	if cell.Y < 0 || cell.Y >= len(l.rows) {
		return TileVoid
	}

	row := l.rows[cell.Y]
	if cell.X < 0 || cell.X >= len(row) {
		return TileVoid
	}

	return row[cell.X]
}

// DefaultLevels returns the levels embedded into the binary.
func DefaultLevels() ([]Level, error) {
	return LoadLevels(bytes.NewReader(defaultLevels))
}

// LoadLevels decodes and validates a yaml level file.
func LoadLevels(r io.Reader) ([]Level, error) {
	var file levelFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse levels: %w", err)
	}

	if len(file.Levels) == 0 {
		return nil, errors.New("parse levels: no levels defined")
	}

	for idx := range file.Levels {
		level := &file.Levels[idx]

		if err := level.prepare(); err != nil {
			return nil, fmt.Errorf("level %d (%q): %w", idx, level.Name, err)
		}
	}

	return file.Levels, nil
}

func (l *Level) prepare() error {
	if l.Name == "" {
		return errors.New("name is missing")
	}

	l.rows = strings.Split(strings.TrimRight(l.Tiles, "\n"), "\n")

	if len(l.rows) > RoomHeight {
		return fmt.Errorf("has %d rows, at most %d are allowed", len(l.rows), RoomHeight)
	}

	for y, row := range l.rows {
		if len(row) > RoomWidth {
			return fmt.Errorf("row %d has %d tiles, at most %d are allowed", y, len(row), RoomWidth)
		}

		for x := range len(row) {
			switch row[x] {
			case TileWall, TileFloor, TileVoid:
			default:
				return fmt.Errorf("unknown tile %q at [%d, %d]", row[x], x, y)
			}
		}
	}

	if len(l.Spawns) == 0 || len(l.Spawns) > MaxColors {
		return fmt.Errorf("needs between 1 and %d spawns, got %d", MaxColors, len(l.Spawns))
	}

	for idx, spawn := range l.Spawns {
		if err := l.checkFloor("spawn", spawn); err != nil {
			return err
		}

		for _, other := range l.Spawns[:idx] {
			if other == spawn {
				return fmt.Errorf("spawn %v used twice", spawn.IVec())
			}
		}
	}

	for _, box := range l.Boxes {
		if err := l.checkFloor("box", box.Cell); err != nil {
			return err
		}

		if err := l.checkColor("box", box.Color); err != nil {
			return err
		}
	}

	for _, button := range l.Buttons {
		if err := l.checkFloor("button", button.Cell); err != nil {
			return err
		}

		if err := l.checkColor("button", button.Color); err != nil {
			return err
		}

		if len(button.Gates) == 0 {
			return fmt.Errorf("button at %v has no gates", button.Cell.IVec())
		}

		for _, gate := range button.Gates {
			if err := l.checkFloor("gate", gate); err != nil {
				return err
			}
		}

		for _, slave := range button.Slaves {
			if err := l.checkFloor("slave button", slave.Cell); err != nil {
				return err
			}

			if err := l.checkColor("slave button", slave.Color); err != nil {
				return err
			}
		}

		for _, wire := range button.Wires {
			if err := l.checkFloor("wire", wire); err != nil {
				return err
			}
		}
	}

	for _, goal := range l.Goals {
		if err := l.checkFloor("goal", goal.Cell); err != nil {
			return err
		}

		if goal.Color == AnyColor || int(goal.Color) >= len(l.Spawns) {
			return fmt.Errorf("goal at %v has color %s without a spawn", goal.Cell.IVec(), goal.Color)
		}
	}

	return nil
}

func (l *Level) checkFloor(what string, pos Pos) error {
	if tile := l.TileAt(pos.IVec()); tile != TileFloor {
		return fmt.Errorf("%s at %v is not on a floor tile", what, pos.IVec())
	}

	return nil
}

func (l *Level) checkColor(what string, color Color) error {
	if color != AnyColor && int(color) >= len(l.Spawns) {
		return fmt.Errorf("%s has color %s without a spawn", what, color)
	}

	return nil
}
