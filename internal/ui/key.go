// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/derailed/tcell/v2"
)

// Defines numeric keys.
const (
	Key0 tcell.Key = iota + 48
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

// Defines uppercase keys.
const (
	KeyShiftA tcell.Key = iota + 65
	KeyShiftB
	KeyShiftC
	KeyShiftD
	KeyShiftE
	KeyShiftF
	KeyShiftG
	KeyShiftH
	KeyShiftI
	KeyShiftJ
	KeyShiftK
	KeyShiftL
	KeyShiftM
	KeyShiftN
	KeyShiftO
	KeyShiftP
	KeyShiftQ
	KeyShiftR
	KeyShiftS
	KeyShiftT
	KeyShiftU
	KeyShiftV
	KeyShiftW
	KeyShiftX
	KeyShiftY
	KeyShiftZ
)

// Defines lowercase keys.
const (
	KeyA tcell.Key = iota + 97
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

// Defines char keystrokes.
const (
	KeySpace        tcell.Key = 32
	KeySlash        tcell.Key = 47
	KeyColon        tcell.Key = 58
	KeyHelp         tcell.Key = 63
	KeyLeftBracket  tcell.Key = 91
	KeyRightBracket tcell.Key = 93
)

var keyByName = func() map[string]tcell.Key {
	mm := make(map[string]tcell.Key, len(tcell.KeyNames)+1)
	for k, n := range tcell.KeyNames {
		mm[strings.ToLower(n)] = k
	}
	mm["space"] = KeySpace

	return mm
}()

// AsKey converts a rune event into a key action lookup key.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}

	return tcell.Key(evt.Rune())
}

// KeyName returns the menu mnemonic of a key.
func KeyName(k tcell.Key) string {
	if k == KeySpace {
		return "space"
	}
	if n, ok := tcell.KeyNames[k]; ok {
		return strings.ToLower(n)
	}
	if k > KeySpace && k < tcell.KeyDEL {
		return string(rune(k))
	}

	return fmt.Sprintf("key-%d", k)
}

// ParseKey converts a hotkey shortcut such as "ctrl-g", "shift-m" or "5"
// into a key.
func ParseKey(s string) (tcell.Key, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty shortcut")
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return tcell.Key(r), nil
	}

	lower := strings.ToLower(s)
	if rest, ok := strings.CutPrefix(lower, "shift-"); ok && utf8.RuneCountInString(rest) == 1 {
		r, _ := utf8.DecodeRuneInString(strings.ToUpper(rest))
		return tcell.Key(r), nil
	}
	if k, ok := keyByName[lower]; ok {
		return k, nil
	}

	return 0, fmt.Errorf("invalid shortcut %q", s)
}
