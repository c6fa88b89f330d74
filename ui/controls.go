package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/yhkl-dev/trackdeck/domain"
)

// Controls is the part of the player controller the keyboard and mouse drive
type Controls interface {
	LoadTrack(index int) bool
	TogglePlay()
	Next() bool
	Previous() bool
	ToggleShuffle() error
	ToggleRepeat()
	VolumeUp()
	VolumeDown()
	Seek(percent float64) float64
	ToggleLyrics()
	Back()
	Download() error
	Tracks() []domain.Track
}

// registerControlBindings wires the playback shortcuts. Every handler goes
// through dispatch so the UI goroutine never waits on the controller.
func registerControlBindings(km *KeyBindingManager, ctrl Controls, dispatch func(func())) {
	on := func(name string, f func()) KeyAction {
		return NewKeyAction(name, func() { dispatch(f) })
	}

	km.RegisterKeyBinding(on("togglePlay", ctrl.TogglePlay), nil, []rune{' '})

	next := on("next", func() { ctrl.Next() })
	km.RegisterModifiedKeyBinding(next, tcell.ModCtrl, tcell.KeyRight)
	km.RegisterKeyBinding(next, nil, []rune{'n', 'N'})

	prev := on("previous", func() { ctrl.Previous() })
	km.RegisterModifiedKeyBinding(prev, tcell.ModCtrl, tcell.KeyLeft)
	km.RegisterKeyBinding(prev, nil, []rune{'p', 'P'})

	up := on("volumeUp", ctrl.VolumeUp)
	km.RegisterModifiedKeyBinding(up, tcell.ModCtrl, tcell.KeyUp)
	km.RegisterKeyBinding(up, nil, []rune{'+', '='})

	down := on("volumeDown", ctrl.VolumeDown)
	km.RegisterModifiedKeyBinding(down, tcell.ModCtrl, tcell.KeyDown)
	km.RegisterKeyBinding(down, nil, []rune{'-', '_'})

	km.RegisterKeyBinding(on("shuffle", func() { _ = ctrl.ToggleShuffle() }), nil, []rune{'s', 'S'})
	km.RegisterKeyBinding(on("repeat", ctrl.ToggleRepeat), nil, []rune{'r', 'R'})
	km.RegisterKeyBinding(on("lyrics", ctrl.ToggleLyrics), nil, []rune{'l', 'L'})
	km.RegisterKeyBinding(on("download", func() { _ = ctrl.Download() }), nil, []rune{'d', 'D'})

	km.RegisterSequence(on("firstTrack", func() { ctrl.LoadTrack(0) }), "gg")
	km.RegisterKeyBinding(on("lastTrack", func() {
		ctrl.LoadTrack(len(ctrl.Tracks()) - 1)
	}), nil, []rune{'G'})
}
