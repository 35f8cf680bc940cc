package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/lixenwraith/splitflap/audio"
	"github.com/lixenwraith/splitflap/config"
	"github.com/lixenwraith/splitflap/constants"
	"github.com/lixenwraith/splitflap/engine"
	"github.com/lixenwraith/splitflap/render"
	"github.com/lixenwraith/splitflap/status"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := config.Load(args, os.Environ(), os.Stderr)
	if err != nil {
		if config.IsHelp(err) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "splitflap: %v\n", err)
		return 2
	}

	if opts.WriteConfig != "" {
		if err := config.Write(opts.WriteConfig, opts.Config); err != nil {
			fmt.Fprintf(os.Stderr, "splitflap: %v\n", err)
			return 1
		}
		fmt.Printf("wrote %s\n", opts.WriteConfig)
		return 0
	}

	logFile, err := setupLogging(opts.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "splitflap: %v\n", err)
		return 1
	}
	if logFile != nil {
		defer logFile.Close()
	}
	for _, src := range opts.Sources {
		log.Printf("config: loaded %s", src)
	}

	palette, err := render.LookupPalette(opts.Config.Color)
	if err != nil {
		fmt.Fprintf(os.Stderr, "splitflap: %v\n", err)
		return 2
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "splitflap: stdout is not a terminal")
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}

	// Panic recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSPLITFLAP CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	var sound *audio.SoundManager
	if opts.Config.Sound {
		sound = audio.NewSoundManager(opts.Config.SoundVolume)
		if err := sound.Initialize(); err != nil {
			log.Printf("Audio initialization failed: %v (continuing without audio)", err)
			sound = nil
		} else {
			defer sound.Cleanup()
		}
	}

	clock := engine.NewClock(engine.NewMonotonicTimeProvider(), constants.MaxFrameDelta)
	registry := status.NewRegistry()
	board := NewBoard(screen, opts.Config, palette, clock, registry, sound, rand.New(rand.NewSource(time.Now().UnixNano())))

	w, h := screen.Size()
	board.Resize(w, h)
	screen.Show()

	eventChan := make(chan tcell.Event, constants.EventChannelSize)
	quit := make(chan struct{})
	go func() {
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\nEVENT POLLER CRASHED: %v\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		screen.ChannelEvents(eventChan, quit)
	}()
	defer close(quit)

	frameTicker := time.NewTicker(time.Duration(opts.Config.FrameInterval))
	defer frameTicker.Stop()

	log.Printf("started: %d tiles, %d tokens, duration %v", opts.Config.Tiles, len(opts.Config.TokenRunes()), time.Duration(opts.Config.Duration))

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return 0
			}
			if board.HandleEvent(ev) {
				log.Printf("quit: %s", registry.Summary())
				return 0
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				screen.Sync()
			}

		case <-frameTicker.C:
			board.Frame()
			screen.Show()
		}
	}
}
