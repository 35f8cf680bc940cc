package config

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// ErrHelp is returned when --help was requested
var ErrHelp = flag.ErrHelp

// Options is the resolved command line
type Options struct {
	Config Config

	// Sources lists config files that were merged, in order
	Sources []string

	// LogPath is the log file, empty to discard logging
	LogPath string

	// WriteConfig, when set, names a file to receive the resolved config
	WriteConfig string
}

// Load resolves configuration with precedence, lowest first:
// defaults, global file, --config file, flags
func Load(args []string, env []string, stderr io.Writer) (Options, error) {
	fs := flag.NewFlagSet("splitflap", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := Default()
	configPath := fs.StringP("config", "c", "", "config file (JSON with comments)")
	noGlobal := fs.Bool("no-global", false, "skip the global config file")
	tokens := fs.StringP("tokens", "t", def.Tokens, "token characters, one flap per character")
	tiles := fs.IntP("tiles", "n", def.Tiles, "number of tiles")
	duration := fs.DurationP("duration", "d", time.Duration(def.Duration), "flip duration, 0 disables animation")
	maxShadow := fs.Float64("max-shadow", def.MaxShadow, "peak shadow intensity in [0,1]")
	frame := fs.Duration("frame-interval", time.Duration(def.FrameInterval), "frame interval")
	sound := fs.Bool("sound", def.Sound, "play flap clicks")
	volume := fs.Float64("volume", def.SoundVolume, "click volume in [0,1]")
	color := fs.String("color", def.Color, "palette name")
	logPath := fs.String("log", "", "log file path")
	writeConfig := fs.String("write-config", "", "write the resolved config to this path and exit")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if fs.NArg() > 0 {
		return Options{}, fmt.Errorf("%w: unexpected arguments %v", ErrInvalid, fs.Args())
	}

	opts := Options{LogPath: *logPath, WriteConfig: *writeConfig}
	cfg := def

	if !*noGlobal {
		if path := GlobalPath(env); path != "" {
			var loaded bool
			var err error
			if cfg, loaded, err = LoadFile(cfg, path, false); err != nil {
				return Options{}, err
			} else if loaded {
				opts.Sources = append(opts.Sources, path)
			}
		}
	}

	if *configPath != "" {
		var err error
		if cfg, _, err = LoadFile(cfg, *configPath, true); err != nil {
			return Options{}, err
		}
		opts.Sources = append(opts.Sources, *configPath)
	}

	// Only flags given on the command line override files
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tokens":
			cfg.Tokens = *tokens
		case "tiles":
			cfg.Tiles = *tiles
		case "duration":
			cfg.Duration = Duration(*duration)
		case "max-shadow":
			cfg.MaxShadow = *maxShadow
		case "frame-interval":
			cfg.FrameInterval = Duration(*frame)
		case "sound":
			cfg.Sound = *sound
		case "volume":
			cfg.SoundVolume = *volume
		case "color":
			cfg.Color = *color
		}
	})

	if err := cfg.Validate(); err != nil {
		return Options{}, err
	}
	opts.Config = cfg
	return opts, nil
}

// IsHelp reports whether err is a help request
func IsHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
