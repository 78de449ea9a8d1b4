package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/creature-poser/internal/interaction"
)

var namedKeys = []struct {
	key  imgui.Key
	code interaction.KeyCode
}{
	{imgui.KeyEnter, interaction.KeyEnter},
	{imgui.KeyKeypadEnter, interaction.KeyEnter},
	{imgui.KeyEscape, interaction.KeyEscape},
	{imgui.KeyLeftArrow, interaction.KeyLeft},
	{imgui.KeyRightArrow, interaction.KeyRight},
	{imgui.KeyUpArrow, interaction.KeyUp},
	{imgui.KeyDownArrow, interaction.KeyDown},
}

// Keys polls the keys the controller knows. Letters held with shift come
// back upper case.
func Keys(pressed func(imgui.KeyChord) bool) []interaction.Key {
	var out []interaction.Key
	for _, k := range namedKeys {
		if pressed(imgui.KeyChord(k.key)) {
			out = append(out, interaction.Key{Code: k.code})
		}
	}

	shift := imgui.KeyChord(imgui.ModShift)
	for i := 0; i < 26; i++ {
		key := imgui.KeyChord(imgui.KeyA + imgui.Key(i))
		switch {
		case pressed(key):
			out = append(out, interaction.CharKey(rune('a'+i)))
		case pressed(shift | key):
			out = append(out, interaction.CharKey(rune('A'+i)))
		}
	}
	for i := 0; i < 10; i++ {
		if pressed(imgui.KeyChord(imgui.Key0 + imgui.Key(i))) {
			out = append(out, interaction.CharKey(rune('0'+i)))
		}
	}
	return out
}

// PressedKeys returns the keys pressed this frame.
func PressedKeys() []interaction.Key {
	return Keys(imgui.IsKeyChordPressed)
}
