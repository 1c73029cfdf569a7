package harmony

import (
	"log/slog"
	"maps"
	"reflect"
	"sync/atomic"

	"github.com/oliverbestmann/harmony/internal/assert"
)

type ComponentTypeId uint16

// ComponentType identifies a component type within the process. Every Go
// type gets exactly one ComponentType, created lazily the first time it is
// looked up.
type ComponentType struct {
	Name string
	Type reflect.Type

	// Id is assigned in registration order, starting at one. Borrows of a
	// multi column query are acquired in ascending Id order.
	Id ComponentTypeId

	// creates a column for this type with n empty slots
	makeColumn func(n int) erasedColumn
}

func (c *ComponentType) String() string {
	return c.Name
}

var componentTypes atomic.Pointer[map[reflect.Type]*ComponentType]

func init() {
	// initialize the lookup table
	componentTypes.Store(&map[reflect.Type]*ComponentType{})
}

// ComponentTypeOf returns the ComponentType of C. C must be a value type.
func ComponentTypeOf[C any]() *ComponentType {
	reflectType := reflect.TypeFor[C]()

	if cached, ok := (*componentTypes.Load())[reflectType]; ok {
		return cached
	}

	assert.IsValueType(reflectType)

	return ensureComponentType(reflectType, func(id ComponentTypeId) *ComponentType {
		ty := &ComponentType{
			Id:   id,
			Type: reflectType,
			Name: reflectType.String(),
		}

		ty.makeColumn = func(n int) erasedColumn {
			return newColumn[C](ty, n)
		}

		return ty
	})
}

func ensureComponentType(reflectType reflect.Type, makeType func(id ComponentTypeId) *ComponentType) *ComponentType {
	for {
		previousTypes := componentTypes.Load()
		if cached, ok := (*previousTypes)[reflectType]; ok {
			return cached
		}

		newType := makeType(ComponentTypeId(len(*previousTypes) + 1))

		newTypes := maps.Clone(*previousTypes)
		newTypes[reflectType] = newType

		if componentTypes.CompareAndSwap(previousTypes, &newTypes) {
			slog.Debug(
				"New component type registered",
				slog.String("name", newType.Name),
				slog.Int("id", int(newType.Id)),
			)

			return newType
		}
	}
}
