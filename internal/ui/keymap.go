package ui

import tea "github.com/charmbracelet/bubbletea"

type KeyMap struct {
	Quit         tea.Key
	Up           tea.Key
	Down         tea.Key
	VimUp        tea.Key
	VimDown      tea.Key
	Enter        tea.Key
	Back         tea.Key
	SwitchTab    tea.Key
	Convert      tea.Key
	Filter       tea.Key
	NextPage     tea.Key
	PrevPage     tea.Key
	Tiles        tea.Key
	Export       tea.Key
	RemoveFilter tea.Key
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:         tea.Key{Type: tea.KeyRunes, Runes: []rune{'q'}},
		Up:           tea.Key{Type: tea.KeyUp},
		Down:         tea.Key{Type: tea.KeyDown},
		VimUp:        tea.Key{Type: tea.KeyRunes, Runes: []rune{'k'}},
		VimDown:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'j'}},
		Enter:        tea.Key{Type: tea.KeyEnter},
		Back:         tea.Key{Type: tea.KeyEsc},
		SwitchTab:    tea.Key{Type: tea.KeyTab},
		Convert:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'c'}},
		Filter:       tea.Key{Type: tea.KeyRunes, Runes: []rune{'f'}},
		NextPage:     tea.Key{Type: tea.KeyRight},
		PrevPage:     tea.Key{Type: tea.KeyLeft},
		Tiles:        tea.Key{Type: tea.KeyRunes, Runes: []rune{'p'}},
		Export:       tea.Key{Type: tea.KeyRunes, Runes: []rune{'e'}},
		RemoveFilter: tea.Key{Type: tea.KeyRunes, Runes: []rune{'d'}},
	}
}

func keyMatches(msg tea.KeyMsg, k tea.Key) bool {
	if k.Type != tea.KeyRunes {
		return msg.Type == k.Type
	}
	if len(k.Runes) > 0 {
		return msg.String() == string(k.Runes)
	}
	return false
}
