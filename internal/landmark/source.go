// Package landmark delivers hand-landmark frames from a tracker, or from
// canned poses when no tracker is attached.
package landmark

import (
	"context"

	"murasaki/internal/technique"
)

// MaxHands is the most hands a frame carries; extra hands are dropped.
const MaxHands = 2

// Frame is one tracker result: zero, one or two hands in detection order.
type Frame struct {
	Hands []technique.Hand
}

// Source produces frames until ctx is cancelled or its input ends.
type Source interface {
	Run(ctx context.Context, out chan<- Frame) error
}

// Connections are the landmark index pairs joined when drawing a hand
// skeleton.
var Connections = [][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 4},
	{0, 5}, {5, 6}, {6, 7}, {7, 8},
	{5, 9}, {9, 10}, {10, 11}, {11, 12},
	{9, 13}, {13, 14}, {14, 15}, {15, 16},
	{13, 17}, {0, 17}, {17, 18}, {18, 19}, {19, 20},
}

func send(ctx context.Context, out chan<- Frame, f Frame) error {
	select {
	case out <- f:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
