package pong

import "testing"

func TestMovePaddle(t *testing.T) {
	const minX, maxX = 15.0, 685.0

	tests := []struct {
		name     string
		x        float64
		in       Input
		expected float64
	}{
		{"idle", 300, Input{}, 300},
		{"left", 300, Input{MoveLeft: true}, 255},
		{"right", 300, Input{MoveRight: true}, 345},
		{"both cancel", 300, Input{MoveLeft: true, MoveRight: true}, 300},
		{"clamp at left wall", 20, Input{MoveLeft: true}, minX},
		{"clamp at right wall", 680, Input{MoveRight: true}, maxX},
		{"both at left wall", minX, Input{MoveLeft: true, MoveRight: true}, minX},
		{"quit is ignored", 300, Input{Quit: true}, 300},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MovePaddle(tc.x, tc.in, 450, 0.1, minX, maxX)
			if got != tc.expected {
				t.Errorf("MovePaddle() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestMovePaddleSustainedInput(t *testing.T) {
	const minX, maxX = 15.0, 685.0

	inputs := []Input{
		{MoveLeft: true, MoveRight: true},
		{MoveLeft: true},
		{MoveRight: true},
	}

	for _, in := range inputs {
		x := 350.0
		for range 5000 {
			x = MovePaddle(x, in, 450, 0.25, minX, maxX)
			if x < minX || x > maxX {
				t.Fatalf("paddle left bounds under %+v: x=%v", in, x)
			}
		}
	}
}
