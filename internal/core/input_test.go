package core

import (
	"math"
	"testing"
)

func TestInputMoveDir(t *testing.T) {
	diag := 1 / math.Sqrt2

	tests := []struct {
		name string
		in   Input
		want Vec2
	}{
		{"idle", Input{}, V2(0, 0)},
		{"forward is -z", Input{Forward: true}, V2(0, -1)},
		{"right is +x", Input{Right: true}, V2(1, 0)},
		{"diagonal normalized", Input{Backward: true, Left: true}, V2(-diag, diag)},
		{"opposites cancel", Input{Left: true, Right: true}, V2(0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.MoveDir()
			if math.Abs(got.X-tc.want.X) > eps || math.Abs(got.Z-tc.want.Z) > eps {
				t.Errorf("MoveDir() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	if ActionPause.String() != "Pause" {
		t.Errorf("ActionPause.String() = %q", ActionPause.String())
	}
	if Action(99).String() != "Unknown" {
		t.Error("unknown action should stringify as Unknown")
	}
}
