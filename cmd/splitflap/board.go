package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/splitflap/audio"
	"github.com/lixenwraith/splitflap/config"
	"github.com/lixenwraith/splitflap/engine"
	"github.com/lixenwraith/splitflap/input"
	"github.com/lixenwraith/splitflap/parameter"
	"github.com/lixenwraith/splitflap/render"
	"github.com/lixenwraith/splitflap/status"
)

// tile is one flap display: its sequencer, its view and a shuffle target
type tile struct {
	seq    *engine.Sequencer
	view   *render.TileRenderer
	target int
	delay  int
}

// Board is a row of independent tiles driven by one clock
// Owned by the main loop goroutine
type Board struct {
	surface  render.Surface
	cfg      config.Config
	palette  render.Palette
	clock    *engine.Clock
	registry *status.Registry
	sound    *audio.SoundManager

	keys    *input.KeyTable
	gesture *input.Gesture
	status  *render.StatusLine

	tiles  []*tile
	focus  int
	rng    *rand.Rand
	width  int
	height int
}

// NewBoard builds cfg.Tiles tiles over surface
// sound may be nil
func NewBoard(surface render.Surface, cfg config.Config, palette render.Palette, clock *engine.Clock,
	registry *status.Registry, sound *audio.SoundManager, rng *rand.Rand) *Board {
	b := &Board{
		surface:  surface,
		cfg:      cfg,
		palette:  palette,
		clock:    clock,
		registry: registry,
		sound:    sound,
		keys:     input.DefaultKeyTable(),
		gesture:  input.NewGesture(time.Duration(cfg.Duration)),
		status:   render.NewStatusLine(surface, render.Rect{}, palette),
		rng:      rng,
	}

	counters := registry.Listener()
	for i := 0; i < cfg.Tiles; i++ {
		seq := engine.NewSequencer(engine.NewTokenRing(cfg.TokenRunes()), clock)
		seq.SetMaxShadow(cfg.MaxShadow)
		seq.SetDragDuration(time.Duration(cfg.Duration))
		seq.AddListener(counters)
		seq.AddListener(logListener(i))
		if sound != nil {
			seq.AddListener(sound.Listener())
		}

		view := render.NewTileRenderer(surface, render.Rect{W: parameter.TileWidth, H: parameter.TileHeight}, palette)
		b.tiles = append(b.tiles, &tile{seq: seq, view: view, target: -1})
	}
	b.tiles[0].view.SetFocused(true)
	return b
}

// logListener records the outcome of each transition on tile i
func logListener(i int) engine.Listener {
	return func(ev engine.Event) {
		switch ev.Type {
		case engine.EventRejected:
			log.Printf("tile %d: %s request rejected, transition in flight", i, ev.Direction)
		case engine.EventTransitionCompleted:
			log.Printf("tile %d: %s flip settled on %q (interactive=%v committed=%v)",
				i, ev.Direction, ev.Token, ev.Interactive, ev.Committed)
		}
	}
}

// Tiles returns the sequencers in display order
func (b *Board) Tiles() []*engine.Sequencer {
	out := make([]*engine.Sequencer, len(b.tiles))
	for i, t := range b.tiles {
		out[i] = t.seq
	}
	return out
}

// Focus returns the keyboard target index
func (b *Board) Focus() int {
	return b.focus
}

// Resize lays tiles out centered in w×h, wrapping into rows, and repaints
func (b *Board) Resize(w, h int) {
	b.width, b.height = w, h
	render.Fill(b.surface, render.Rect{W: w, H: h}, ' ', tcell.StyleDefault.Background(b.palette.Background.Color()))

	stride := parameter.TileWidth + parameter.TileGap
	perRow := (w + parameter.TileGap) / stride
	if perRow < 1 {
		perRow = 1
	}

	hits := make([]input.Tile, 0, len(b.tiles))
	for i, t := range b.tiles {
		row, col := i/perRow, i%perRow
		inRow := min(perRow, len(b.tiles)-row*perRow)
		rowWidth := inRow*stride - parameter.TileGap
		x0 := max(0, (w-rowWidth)/2)

		r := render.Rect{
			X: x0 + col*stride,
			Y: parameter.TopMargin + row*(parameter.TileHeight+parameter.RowGap),
			W: parameter.TileWidth,
			H: parameter.TileHeight,
		}
		t.view.SetRect(r)
		hits = append(hits, input.Tile{Rect: r, Flipper: t.seq})
	}
	b.gesture.SetTiles(hits)
	b.status.SetRect(render.Rect{Y: h - parameter.BottomMargin, W: w})

	for _, t := range b.tiles {
		// First resize attaches the views; later ones repaint the last state
		t.seq.SetRenderer(t.view)
	}
	b.drawStatus()
}

// HandleEvent applies one terminal event, reporting whether to quit
func (b *Board) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return b.handleIntent(b.keys.Lookup(ev))
	case *tcell.EventMouse:
		if b.gesture.HandleMouse(ev) == input.GesturePress {
			b.setFocus(b.gesture.Tile())
		}
	case *tcell.EventResize:
		b.gesture.Cancel()
		w, h := ev.Size()
		b.Resize(w, h)
	case *tcell.EventFocus:
		if !ev.Focused {
			b.gesture.Cancel()
		}
	}
	return false
}

func (b *Board) handleIntent(intent input.IntentType) bool {
	focused := b.tiles[b.focus]
	d := time.Duration(b.cfg.Duration)

	switch intent {
	case input.IntentQuit:
		return true
	case input.IntentNext:
		focused.target = -1
		focused.seq.Next(d)
	case input.IntentPrevious:
		focused.target = -1
		focused.seq.Previous(d)
	case input.IntentFocusLeft:
		b.setFocus((b.focus - 1 + len(b.tiles)) % len(b.tiles))
	case input.IntentFocusRight:
		b.setFocus((b.focus + 1) % len(b.tiles))
	case input.IntentRandomize:
		b.Shuffle()
	case input.IntentReset:
		for i, t := range b.tiles {
			t.target = 0
			t.delay = i * parameter.ShuffleStagger
		}
	case input.IntentToggleMute:
		if b.sound != nil {
			b.sound.SetMuted(!b.sound.Muted())
		}
	}
	return false
}

// Shuffle gives every tile a random target, reached one flip at a time
func (b *Board) Shuffle() {
	for i, t := range b.tiles {
		n := t.seq.Ring().Len()
		if n == 0 {
			continue
		}
		t.target = b.rng.Intn(n)
		t.delay = i * parameter.ShuffleStagger
	}
}

func (b *Board) setFocus(i int) {
	if i < 0 || i >= len(b.tiles) || i == b.focus {
		return
	}
	b.tiles[b.focus].view.SetFocused(false)
	b.tiles[b.focus].view.Paint()
	b.focus = i
	b.tiles[i].view.SetFocused(true)
	b.tiles[i].view.Paint()
}

// Frame advances the clock from the time source, steps shuffles and draws status
func (b *Board) Frame() {
	dt := b.clock.Update()
	if dt > 0 {
		b.registry.Floats.Get(status.FrameMillis).Observe(float64(dt)/float64(time.Millisecond), 0.1)
	}
	b.stepTargets()
	b.drawStatus()
}

// stepTargets starts the next flip of every idle tile short of its target
// Tiles flip the short way round the ring
func (b *Board) stepTargets() {
	d := time.Duration(b.cfg.Duration)
	for _, t := range b.tiles {
		if t.target < 0 || !t.seq.IsIdle() {
			continue
		}
		if t.delay > 0 {
			t.delay--
			continue
		}
		switch dist := t.seq.Ring().Distance(t.target); {
		case dist > 0:
			t.seq.Next(d)
		case dist < 0:
			t.seq.Previous(d)
		default:
			t.target = -1
		}
	}
}

func (b *Board) drawStatus() {
	if b.height <= parameter.TopMargin {
		return
	}
	right := b.registry.Summary()
	if b.sound != nil {
		if b.sound.Muted() {
			right = parameter.MutedStr + right
		} else {
			right = parameter.AudioStr + right
		}
	}
	b.status.Draw(parameter.StatusHelp, right)
}
