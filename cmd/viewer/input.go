package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// landmarkKeys maps the digit keys to landmark names, see mandel.LookupRegion.
var landmarkKeys = []struct {
	key  ebiten.Key
	name string
}{
	{ebiten.KeyDigit1, "full"},
	{ebiten.KeyDigit2, "home"},
	{ebiten.KeyDigit3, "seahorse"},
	{ebiten.KeyDigit4, "elephant"},
	{ebiten.KeyDigit5, "spiral"},
	{ebiten.KeyDigit6, "triple"},
	{ebiten.KeyDigit7, "dragon"},
	{ebiten.KeyDigit8, "minibrot"},
}

// inputState holds the polled inputs of a single frame.
type inputState struct {
	Quit     bool
	Reset    bool
	Landmark string

	Click          bool // left mouse button just pressed
	MouseX, MouseY int
}

func pollInput() inputState {
	var in inputState

	in.Quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	in.Reset = inpututil.IsKeyJustPressed(ebiten.KeyR)
	for _, lk := range landmarkKeys {
		if inpututil.IsKeyJustPressed(lk.key) {
			in.Landmark = lk.name
			break
		}
	}

	in.Click = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.MouseX, in.MouseY = ebiten.CursorPosition()
	return in
}
