package theme

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strings"

	"github.com/example/sketchpad/internal/raster"
)

var colorFields = func() []string {
	var out []string
	typ := reflect.TypeOf(Theme{})
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Type == reflect.TypeOf(color.RGBA{}) {
			out = append(out, typ.Field(i).Name)
		}
	}
	return out
}()

// Parse reads a theme definition from an io.Reader.
// The format is one "Key: color" pair per line. Colors are #RRGGBB,
// #RRGGBBAA or an SVG color name.
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if err := Set(t, strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
			return nil, err
		}
	}
	return t, scanner.Err()
}

// Set assigns one key of t. Keys match case-insensitively and unknown keys
// are ignored for forward compatibility.
func Set(t *Theme, key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}
	val := reflect.ValueOf(t).Elem()
	for _, name := range colorFields {
		if !strings.EqualFold(name, key) {
			continue
		}
		col, err := raster.ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		val.FieldByName(name).Set(reflect.ValueOf(col))
		return nil
	}
	return nil
}

// Get returns the color stored under key.
func Get(t *Theme, key string) (color.RGBA, bool) {
	for _, name := range colorFields {
		if strings.EqualFold(name, key) {
			return reflect.ValueOf(t).Elem().FieldByName(name).Interface().(color.RGBA), true
		}
	}
	return color.RGBA{}, false
}

// Write serialises t in the format Parse reads.
func Write(w io.Writer, t *Theme) error {
	if _, err := fmt.Fprintf(w, "Name: %s\n", t.Name); err != nil {
		return err
	}
	for _, name := range colorFields {
		c, _ := Get(t, name)
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, raster.Hex(c)); err != nil {
			return err
		}
	}
	return nil
}
