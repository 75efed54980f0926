package main

import (
	"testing"

	mandel "github.com/marben/mandelzoom"
)

func TestClicksSet(t *testing.T) {
	var c clicks
	for _, s := range []string{"400,300", "12.5,0"} {
		if err := c.Set(s); err != nil {
			t.Fatalf("Set(%q): %v", s, err)
		}
	}
	want := clicks{
		{Op: mandel.OpClick, X: 400, Y: 300},
		{Op: mandel.OpClick, X: 12.5, Y: 0},
	}
	if len(c) != len(want) {
		t.Fatalf("got %d clicks", len(c))
	}
	for i := range want {
		if c[i] != want[i] {
			t.Errorf("click %d = %+v, want %+v", i, c[i], want[i])
		}
	}

	for _, s := range []string{"", "400", "400,", "x,y"} {
		if err := c.Set(s); err == nil {
			t.Errorf("Set(%q) accepted", s)
		}
	}
}
