package prefs

import (
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"strconv"

	"github.com/muesli/termenv"
)

// ColorScheme is light or dark.
type ColorScheme string

const (
	Light ColorScheme = "light"
	Dark  ColorScheme = "dark"
)

// Toggle flips between light and dark.
func (c ColorScheme) Toggle() ColorScheme {
	if c == Dark {
		return Light
	}
	return Dark
}

// RandomFont is the font option value that picks from AvailableFonts.
const RandomFont = "random"

const (
	DefaultFont     = "Lato-Regular"
	DefaultFontSize = 18
)

// FontSizes are the sizes offered to the user.
var FontSizes = []int{16, 18, 20, 22, 24}

// FontOption is a user-facing font choice.
type FontOption struct {
	Name  string
	Value string
}

// FontOptions are the choices shown in the font menu.
var FontOptions = []FontOption{
	{Name: "Lato", Value: "Lato-Regular"},
	{Name: "Arial", Value: "Arial"},
	{Name: "System", Value: "System"},
	{Name: "Serif", Value: "serif"},
	{Name: "Random", Value: RandomFont},
}

// AvailableFonts is the pool the random option draws from.
var AvailableFonts = []string{
	"Lato-Regular",
	"Arial",
	"System",
	"serif",
	"Georgia",
	"Verdana",
	"Helvetica",
	"Courier",
	"Palatino",
}

// Settings is the persisted display state.
type Settings struct {
	ColorScheme       ColorScheme `json:"colorScheme"`
	FontSize          int         `json:"fontSize"`
	SelectedFont      string      `json:"selectedFont"`
	CurrentRandomFont string      `json:"currentRandomFont"`
}

// Defaults returns the settings used before anything is stored.
func Defaults(scheme ColorScheme) Settings {
	if scheme != Dark {
		scheme = Light
	}
	return Settings{
		ColorScheme:  scheme,
		FontSize:     DefaultFontSize,
		SelectedFont: DefaultFont,
	}
}

// DetectColorScheme guesses the terminal's scheme from its background.
func DetectColorScheme() ColorScheme {
	if termenv.HasDarkBackground() {
		return Dark
	}
	return Light
}

// Load reads settings from s on top of defaults. Invalid stored values are
// ignored; the first read error is returned alongside whatever was loaded.
func Load(s Store, defaults Settings) (Settings, error) {
	out := defaults
	var errs []error
	get := func(key string) (string, bool) {
		v, ok, err := s.Get(key)
		if err != nil {
			errs = append(errs, err)
			return "", false
		}
		return v, ok
	}

	if v, ok := get(KeyColorScheme); ok {
		if c := ColorScheme(v); c == Light || c == Dark {
			out.ColorScheme = c
		}
	}
	if v, ok := get(KeyFontSize); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			out.FontSize = n
		}
	}
	if v, ok := get(KeySelectedFont); ok && v != "" {
		out.SelectedFont = v
	}
	if v, ok := get(KeyCurrentRandomFont); ok {
		out.CurrentRandomFont = v
	}
	return out, errors.Join(errs...)
}

// SaveColorScheme persists the scheme.
func SaveColorScheme(s Store, c ColorScheme) error {
	return s.Set(KeyColorScheme, string(c))
}

// SaveFontSize persists the size.
func SaveFontSize(s Store, size int) error {
	return s.Set(KeyFontSize, strconv.Itoa(size))
}

// SaveFont persists the selected font and random-font marker together.
func SaveFont(s Store, selected, random string) error {
	if err := s.Set(KeySelectedFont, selected); err != nil {
		return err
	}
	return s.Set(KeyCurrentRandomFont, random)
}

// Save writes every key.
func Save(s Store, st Settings) error {
	if err := SaveColorScheme(s, st.ColorScheme); err != nil {
		return err
	}
	if err := SaveFontSize(s, st.FontSize); err != nil {
		return err
	}
	return SaveFont(s, st.SelectedFont, st.CurrentRandomFont)
}

// ValidFontSize reports whether size is one of FontSizes.
func ValidFontSize(size int) bool {
	for _, s := range FontSizes {
		if s == size {
			return true
		}
	}
	return false
}

// ChooseFont resolves a font option value. The random option draws from
// AvailableFonts, never the last one, and reports the pick as the random font.
func ChooseFont(value string, rng *rand.Rand) (selected, random string, err error) {
	if value == RandomFont {
		n := len(AvailableFonts) - 1
		var i int
		if rng != nil {
			i = rng.Intn(n)
		} else {
			i = rand.Intn(n)
		}
		pick := AvailableFonts[i]
		return pick, pick, nil
	}
	if value == "" {
		return "", "", fmt.Errorf("prefs: empty font")
	}
	return value, "", nil
}

// DisplayName is the human name for a font value.
func DisplayName(value string) string {
	switch value {
	case "System":
		return systemFont()
	case "Lato-Regular":
		return "Lato"
	case "serif":
		if runtime.GOOS == "darwin" {
			return "Times New Roman"
		}
	}
	return value
}

// RandomButtonTitle labels the random option, naming the current pick.
func RandomButtonTitle(current string) string {
	if current == "" {
		return "Random"
	}
	return fmt.Sprintf("Random [%s]", DisplayName(current))
}

// FontLabel is the name shown for the active font in the status bar.
func (s Settings) FontLabel() string {
	if s.CurrentRandomFont != "" {
		return RandomButtonTitle(s.CurrentRandomFont)
	}
	for _, opt := range FontOptions {
		if opt.Value == s.SelectedFont {
			if opt.Value == "System" {
				return systemFont()
			}
			return opt.Name
		}
	}
	return s.SelectedFont
}

// NextFontOption returns the option after the active one, wrapping around.
func (s Settings) NextFontOption() string {
	current := s.SelectedFont
	if s.CurrentRandomFont != "" {
		current = RandomFont
	}
	for i, opt := range FontOptions {
		if opt.Value == current {
			return FontOptions[(i+1)%len(FontOptions)].Value
		}
	}
	return FontOptions[0].Value
}

func systemFont() string {
	if runtime.GOOS == "darwin" || runtime.GOOS == "ios" {
		return "San Francisco"
	}
	return "Roboto"
}
