package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// mergerTheme keeps fyne's defaults and adjusts accents and spacing.
type mergerTheme struct{}

var (
	accent       = color.RGBA{R: 0x1f, G: 0x8a, B: 0x70, A: 0xff}
	accentActive = color.RGBA{R: 0x16, G: 0x68, B: 0x54, A: 0xff}
)

func (t *mergerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark

	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return accent
	case theme.ColorNamePressed:
		return accentActive
	case theme.ColorNameSelection:
		return color.RGBA{R: accent.R, G: accent.G, B: accent.B, A: 0x55}
	case theme.ColorNameBackground:
		if dark {
			return color.RGBA{R: 0x1c, G: 0x1e, B: 0x21, A: 0xff}
		}
		return color.RGBA{R: 0xf4, G: 0xf5, B: 0xf6, A: 0xff}
	case theme.ColorNameInputBackground:
		if dark {
			return color.RGBA{R: 0x26, G: 0x29, B: 0x2d, A: 0xff}
		}
		return color.White
	case theme.ColorNameDisabled:
		// the info panel is a disabled entry and must stay readable
		if dark {
			return color.RGBA{R: 0xb8, G: 0xbc, B: 0xc2, A: 0xff}
		}
		return color.RGBA{R: 0x4a, G: 0x4d, B: 0x52, A: 0xff}
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *mergerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *mergerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *mergerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 6
	case theme.SizeNameScrollBar:
		return 10
	default:
		return theme.DefaultTheme().Size(name)
	}
}
