package domain

import (
	"slices"

	"github.com/google/uuid"
)

// FibersPerGroup is the number of strands in a fiber bundle.
const FibersPerGroup = 12

// FiberColors is the standard 12-color strand palette. Group colors cycle
// through the same palette.
var FiberColors = [FibersPerGroup]string{
	"Azul", "Laranja", "Verde", "Marrom", "Cinza", "Branco",
	"Vermelho", "Preto", "Amarelo", "Violeta", "Rosa", "Aqua",
}

// CableFiberCounts lists the strand counts a cable may be built with.
var CableFiberCounts = []int{12, 24, 36, 48, 60, 72, 96, 120, 144}

// SwitchPortCounts lists the port counts a switch may be built with.
var SwitchPortCounts = []int{8, 12, 16, 24, 48}

// ValidFiberCount reports whether n is an allowed cable strand count.
func ValidFiberCount(n int) bool { return slices.Contains(CableFiberCounts, n) }

// ValidPortCount reports whether n is an allowed switch port count.
func ValidPortCount(n int) bool { return slices.Contains(SwitchPortCounts, n) }

// IDFunc produces identifiers for generated child records.
type IDFunc func() string

// NewID returns a random UUID string.
func NewID() string { return uuid.NewString() }

// FiberSlot is the position and coloring of a strand at a given index.
type FiberSlot struct {
	GroupNumber   int
	GroupColor    string
	PositionInSet int
	Color         string
}

// FiberSlotAt computes the layout of the strand at the zero-based index.
func FiberSlotAt(index int) FiberSlot {
	group := index / FibersPerGroup
	pos := index % FibersPerGroup
	return FiberSlot{
		GroupNumber:   group + 1,
		GroupColor:    FiberColors[group%FibersPerGroup],
		PositionInSet: pos + 1,
		Color:         FiberColors[pos],
	}
}

// Matches reports whether f carries the layout of this slot.
func (s FiberSlot) Matches(f Fiber) bool {
	return f.GroupNumber == s.GroupNumber &&
		f.GroupColor == s.GroupColor &&
		f.PositionInSet == s.PositionInSet &&
		f.Color == s.Color
}

// GenerateFibers expands a strand count into fiber records grouped in bundles
// of twelve. A nil newID falls back to NewID.
func GenerateFibers(cableID string, count int, newID IDFunc) []Fiber {
	if newID == nil {
		newID = NewID
	}
	fibers := make([]Fiber, 0, count)
	for i := 0; i < count; i++ {
		slot := FiberSlotAt(i)
		fibers = append(fibers, Fiber{
			ID:            newID(),
			CableID:       cableID,
			GroupNumber:   slot.GroupNumber,
			GroupColor:    slot.GroupColor,
			PositionInSet: slot.PositionInSet,
			Color:         slot.Color,
		})
	}
	return fibers
}

// GeneratePorts expands a port count into sequentially numbered ports.
// A nil newID falls back to NewID.
func GeneratePorts(switchID string, count int, newID IDFunc) []Port {
	if newID == nil {
		newID = NewID
	}
	ports := make([]Port, count)
	for i := range ports {
		ports[i] = Port{
			ID:       newID(),
			SwitchID: switchID,
			Number:   i + 1,
		}
	}
	return ports
}
