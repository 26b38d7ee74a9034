package ecs

import (
	"fmt"

	"github.com/willf/bitset"
)

// Group is an application-defined bucket used to order entities for drawing.
type Group uint8

// MaxGroups is the number of groups an entity can belong to.
const MaxGroups = 32

// flags is a fixed-capacity flag set. Indices past the capacity panic
// instead of aliasing into a neighbouring bit.
type flags struct {
	bits *bitset.BitSet
	kind string
	size uint
}

func newFlags(size uint, kind string) flags {
	return flags{bits: bitset.New(size), kind: kind, size: size}
}

func (f flags) check(i uint) {
	if i >= f.size {
		panic(fmt.Sprintf("ecs: %s %d out of range (max %d)", f.kind, i, f.size))
	}
}

func (f flags) test(i uint) bool {
	f.check(i)
	return f.bits.Test(i)
}

func (f flags) set(i uint) {
	f.check(i)
	f.bits.Set(i)
}

func (f flags) clear(i uint) {
	f.check(i)
	f.bits.Clear(i)
}

func (f flags) count() int { return int(f.bits.Count()) }

func checkGroup(g Group) {
	if uint(g) >= MaxGroups {
		panic(fmt.Sprintf("ecs: group %d out of range (max %d)", g, MaxGroups))
	}
}
