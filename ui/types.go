// Package ui draws the heads-up display and the run controls on top of the
// playfield in graphical mode.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	TitleColor  rl.Color
	TextColor   rl.Color
	StatusColor rl.Color
	HintColor   rl.Color
	Padding     int32
	LineHeight  int32
	FontSize    int32
	TitleSize   int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 200},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		TitleColor:  rl.White,
		TextColor:   rl.LightGray,
		StatusColor: rl.Yellow,
		HintColor:   rl.Gray,
		Padding:     10,
		LineHeight:  20,
		FontSize:    16,
		TitleSize:   20,
	}
}
