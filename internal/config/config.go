// Package config turns flags, RUNEFALL_* environment variables and an
// optional config file into a Config.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"
	"github.com/peterbourgon/ff/v3"

	"runefall/internal/app"
	"runefall/internal/glyph"
	"runefall/internal/palette"
	"runefall/internal/rain"
)

// Default configuration values.
const (
	DefaultFPS     = 20
	MinFPS         = 5
	MaxFPS         = 60
	DefaultDensity = 0.4
	MinDensity     = 0.1
	MaxDensity     = 1.0
	EnvPrefix      = "RUNEFALL"
)

// ErrListed is returned by Parse after --list printed the options.
var ErrListed = errors.New("list options requested")

// Config holds the startup settings.
type Config struct {
	Palette   palette.Palette
	FPS       int
	Density   float64
	Glyphs    glyph.Set
	Direction rain.Direction

	Frames        int    // >0 renders this many frames headless
	Width, Height int    // Headless grid; zero means detect
	ColorProfile  string // Headless color profile name

	Debug   bool
	LogFile string
}

// Engine returns the rain settings carried by c.
func (c *Config) Engine() rain.Config {
	return rain.Config{
		Palette:   c.Palette,
		FPS:       c.FPS,
		Density:   c.Density,
		Glyphs:    c.Glyphs,
		Direction: c.Direction,
	}
}

// Parser parses command-line arguments into a Config.
type Parser struct {
	out io.Writer // Usage and --list output
}

// NewParser creates a Parser printing help and listings to out.
func NewParser(out io.Writer) *Parser {
	return &Parser{out: out}
}

// Parse processes args (without the program name).
func (p *Parser) Parse(args []string) (*Config, error) {
	cfg := &Config{
		Palette:      palette.Arcane,
		FPS:          DefaultFPS,
		Density:      DefaultDensity,
		Glyphs:       glyph.All,
		Direction:    rain.Down,
		ColorProfile: "auto",
		LogFile:      filepath.Join(os.TempDir(), "runefall.log"),
	}

	var (
		list  bool
		fs    = flag.NewFlagSet("runefall", flag.ContinueOnError)
		fps   = &intValue{p: &cfg.FPS, def: DefaultFPS, lo: MinFPS, hi: MaxFPS}
		dens  = &floatValue{p: &cfg.Density, def: DefaultDensity, lo: MinDensity, hi: MaxDensity}
		pal   = paletteValue{&cfg.Palette}
		glyps = glyphValue{&cfg.Glyphs}
	)
	fs.SetOutput(p.out)

	fs.Var(pal, "palette", "color palette (arcane, emerald, frost, ember, rainbow, blink)")
	fs.Var(pal, "p", "short for --palette")
	fs.Var(fps, "fps", "frames per second (5-60)")
	fs.Var(fps, "f", "short for --fps")
	fs.Var(dens, "density", "fraction of lanes carrying a stream (0.1-1.0)")
	fs.Var(dens, "d", "short for --density")
	fs.Var(glyps, "glyphs", "glyph set (all, elder, younger, anglo, ogham, mystic)")
	fs.Var(glyps, "g", "short for --glyphs")
	fs.Var(directionValue{&cfg.Direction}, "direction", "scroll direction (down, up, left, right)")
	fs.IntVar(&cfg.Frames, "frames", 0, "render this many frames as ANSI to stdout and exit")
	fs.Var(sizeValue{&cfg.Width, &cfg.Height}, "size", "headless grid size as WxH")
	fs.StringVar(&cfg.ColorProfile, "color", cfg.ColorProfile, "headless color profile (auto, truecolor, 256, 16, none)")
	fs.BoolVar(&list, "list", false, "list palettes, glyph sets and keys")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "debug log path")
	fs.String("config", "", "config file (key value per line)")

	err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix(EnvPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithAllowMissingConfigFile(true),
	)
	if err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	cfg.Frames = max(cfg.Frames, 0)

	if list {
		p.listOptions()
		return nil, ErrListed
	}
	return cfg, nil
}

// listOptions prints the palettes with a color swatch, glyph sets,
// directions and key bindings.
func (p *Parser) listOptions() {
	out := termenv.NewOutput(p.out)
	swatch := func(c palette.Color) string {
		return out.String("██").Foreground(out.Color(c.Hex())).String()
	}

	fmt.Fprintln(p.out, "Palettes:")
	for _, pal := range palette.All() {
		var b strings.Builder
		for _, c := range pal.Swatch() {
			b.WriteString(swatch(c))
		}
		fmt.Fprintf(p.out, "  %-8s %s\n", flagName(pal.String()), b.String())
	}

	fmt.Fprintln(p.out, "\nGlyph sets:")
	fmt.Fprintf(p.out, "  %-16s %s\n", "all", "every set below")
	for _, s := range glyph.Sets() {
		fmt.Fprintf(p.out, "  %-16s %s\n", flagName(s.String()), string(s.Runes()))
	}

	fmt.Fprintln(p.out, "\nDirections:")
	for _, d := range []rain.Direction{rain.Down, rain.Up, rain.Left, rain.Right} {
		fmt.Fprintln(p.out, "  ", d)
	}

	fmt.Fprintf(p.out, "\nFPS: %d-%d\n", MinFPS, MaxFPS)
	fmt.Fprintf(p.out, "Density: %.1f-%.1f\n", MinDensity, MaxDensity)

	fmt.Fprintln(p.out, "\nKeys:")
	for _, k := range app.Keys {
		fmt.Fprintf(p.out, "  %-16s %s\n", k[0], k[1])
	}
}
