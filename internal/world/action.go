package world

import "fmt"

// Op identifies the variant held by an Action.
type Op uint8

const (
	OpNone Op = iota
	OpDestroy
	OpReplace
	OpSwap
	OpSwapCrossChunk
)

// Action is the result of evaluating one tile's rules. It is produced during
// compute and consumed exactly once during commit.
//
// Field use per Op:
//
//	OpDestroy        A
//	OpReplace        A, Tile (new kind)
//	OpSwap           A, B
//	OpSwapCrossChunk A (origin index), Neighbor, B (neighbor index), Tile (moving kind)
type Action struct {
	Op       Op
	A, B     int
	Tile     Kind
	Neighbor ChunkCoord
}

// None is the no-op Action.
func None() Action { return Action{} }

// Destroy clears the tile at idx to Empty.
func Destroy(idx int) Action { return Action{Op: OpDestroy, A: idx} }

// Replace overwrites the tile at idx with k.
func Replace(idx int, k Kind) Action { return Action{Op: OpReplace, A: idx, Tile: k} }

// Swap exchanges two tiles of the same chunk.
func Swap(a, b int) Action { return Action{Op: OpSwap, A: a, B: b} }

// SwapCrossChunk moves moving into index b of the neighbor chunk and puts
// whatever sat there into index a of the originating chunk.
func SwapCrossChunk(a int, neighbor ChunkCoord, b int, moving Kind) Action {
	return Action{Op: OpSwapCrossChunk, A: a, B: b, Neighbor: neighbor, Tile: moving}
}

// IsNone reports whether the Action has no effect.
func (a Action) IsNone() bool { return a.Op == OpNone }

func (a Action) String() string {
	switch a.Op {
	case OpDestroy:
		return fmt.Sprintf("Destroy(%d)", a.A)
	case OpReplace:
		return fmt.Sprintf("Replace(%d, %s)", a.A, a.Tile)
	case OpSwap:
		return fmt.Sprintf("Swap(%d, %d)", a.A, a.B)
	case OpSwapCrossChunk:
		return fmt.Sprintf("SwapCrossChunk(%d, %v, %d, %s)", a.A, a.Neighbor, a.B, a.Tile)
	default:
		return "None"
	}
}
