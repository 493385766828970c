// Package prefs reads and writes display preferences from the command line.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"tableflip.dev/freewrite/pkg/prefs"
	"tableflip.dev/freewrite/pkg/printers"
)

// Keys lists the preference names the command accepts.
var Keys = []string{
	prefs.KeyColorScheme,
	prefs.KeyFontSize,
	prefs.KeySelectedFont,
	prefs.KeyCurrentRandomFont,
}

type Prefs struct {
	Key   string
	Value *string
	Store prefs.Store
	Out   io.Writer
}

func (n *Prefs) Do(_ context.Context) error {
	if n.Store == nil {
		return errors.New("can not read preferences, no store")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if n.Key == "" {
		settings, err := prefs.Load(n.Store, prefs.Defaults(prefs.DetectColorScheme()))
		if err != nil {
			return err
		}
		pp := printers.PrettyPrint{Out: out}
		pp.NewLine()
		pp.Details([][2]string{
			{prefs.KeyColorScheme, string(settings.ColorScheme)},
			{prefs.KeyFontSize, strconv.Itoa(settings.FontSize)},
			{prefs.KeySelectedFont, settings.SelectedFont},
			{prefs.KeyCurrentRandomFont, settings.CurrentRandomFont},
			{"font", settings.FontLabel()},
		})
		return nil
	}

	if !known(n.Key) {
		return fmt.Errorf("unknown preference %q", n.Key)
	}

	if n.Value == nil {
		v, ok, err := n.Store.Get(n.Key)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("preference %q is not set", n.Key)
		}
		_, err = fmt.Fprintln(out, v)
		return err
	}

	return set(n.Store, n.Key, *n.Value)
}

func set(s prefs.Store, key, value string) error {
	switch key {
	case prefs.KeyColorScheme:
		c := prefs.ColorScheme(value)
		if c != prefs.Light && c != prefs.Dark {
			return fmt.Errorf("colorScheme must be %q or %q", prefs.Light, prefs.Dark)
		}
		return prefs.SaveColorScheme(s, c)
	case prefs.KeyFontSize:
		size, err := strconv.Atoi(value)
		if err != nil || !prefs.ValidFontSize(size) {
			return fmt.Errorf("fontSize must be one of %v", prefs.FontSizes)
		}
		return prefs.SaveFontSize(s, size)
	case prefs.KeySelectedFont:
		selected, random, err := prefs.ChooseFont(value, nil)
		if err != nil {
			return err
		}
		return prefs.SaveFont(s, selected, random)
	}
	return s.Set(key, value)
}

func known(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
