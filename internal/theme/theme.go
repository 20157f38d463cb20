package theme

import (
	"image/color"
)

// Theme defines the colors used around the drawing canvas.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the canvas
	Foreground color.RGBA // Readout and prompt text

	// Canvas
	CanvasBackground color.RGBA // Shown behind the transparent drawing
	CanvasBorder     color.RGBA

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonSelected        color.RGBA // Marked tool button
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Prompt
	PromptBackground color.RGBA
}

// Default returns the hardcoded light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		CanvasBackground:      color.RGBA{255, 255, 255, 255},
		CanvasBorder:          color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonSelected:        color.RGBA{135, 206, 250, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		PromptBackground:      color.RGBA{255, 255, 224, 255},
	}
}

// Fields lists the color keys of a theme in declaration order.
func Fields() []string {
	return colorFields
}
