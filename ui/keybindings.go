package ui

import (
	"github.com/gdamore/tcell/v2"
)

const modifierMask = tcell.ModCtrl | tcell.ModAlt | tcell.ModShift | tcell.ModMeta

// KeyAction represents an action that can be triggered by keybindings
type KeyAction struct {
	name    string
	handler func()
}

// NewKeyAction creates a named action
func NewKeyAction(name string, handler func()) KeyAction {
	return KeyAction{name: name, handler: handler}
}

// Name returns the action name
func (a KeyAction) Name() string {
	return a.name
}

type keyCombo struct {
	key tcell.Key
	mod tcell.ModMask
}

// KeyBindingManager manages all keybindings and dispatches events
type KeyBindingManager struct {
	bindings  map[keyCombo]KeyAction // special key plus modifiers -> action
	runeMap   map[rune]KeyAction     // rune -> action
	sequences map[string]KeyAction   // multi-key sequences starting with 'g'
	pending   string                 // pending key sequence for multi-key bindings like 'gg'
}

// NewKeyBindingManager creates a new key binding manager
func NewKeyBindingManager() *KeyBindingManager {
	return &KeyBindingManager{
		bindings:  make(map[keyCombo]KeyAction),
		runeMap:   make(map[rune]KeyAction),
		sequences: make(map[string]KeyAction),
	}
}

// RegisterKeyBinding binds unmodified special keys and runes to an action
func (km *KeyBindingManager) RegisterKeyBinding(action KeyAction, keys []tcell.Key, runes []rune) {
	for _, key := range keys {
		km.bindings[keyCombo{key: key, mod: tcell.ModNone}] = action
	}
	for _, r := range runes {
		km.runeMap[r] = action
	}
}

// RegisterModifiedKeyBinding binds special keys pressed with mod, e.g. Ctrl+Right
func (km *KeyBindingManager) RegisterModifiedKeyBinding(action KeyAction, mod tcell.ModMask, keys ...tcell.Key) {
	for _, key := range keys {
		km.bindings[keyCombo{key: key, mod: mod & modifierMask}] = action
	}
}

// RegisterSequence binds a two-key sequence beginning with 'g', e.g. "gg"
func (km *KeyBindingManager) RegisterSequence(action KeyAction, sequence string) {
	km.sequences[sequence] = action
}

// HandleKey handles a keyboard event and returns true if it was consumed
func (km *KeyBindingManager) HandleKey(event *tcell.EventKey) bool {
	if event.Key() != tcell.KeyRune {
		km.pending = ""
		combo := keyCombo{key: event.Key(), mod: event.Modifiers() & modifierMask}
		if action, ok := km.bindings[combo]; ok {
			action.handler()
			return true
		}
		return false
	}

	r := event.Rune()

	if km.pending != "" {
		seq := km.pending + string(r)
		km.pending = ""
		if action, ok := km.sequences[seq]; ok {
			action.handler()
			return true
		}
		// Not a complete sequence, try current rune as standalone
		if action, ok := km.runeMap[r]; ok {
			action.handler()
			return true
		}
		return false
	}

	if r == 'g' && len(km.sequences) > 0 {
		km.pending = "g"
		return true
	}

	if action, ok := km.runeMap[r]; ok {
		action.handler()
		return true
	}
	return false
}

// ResetPending resets the pending key sequence
func (km *KeyBindingManager) ResetPending() {
	km.pending = ""
}

// Pending reports whether a sequence prefix is waiting for its next key
func (km *KeyBindingManager) Pending() bool {
	return km.pending != ""
}
