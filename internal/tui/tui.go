// Package tui hosts a numeric entry field in a terminal using tcell.
//
// The shell draws the field text with its cursor and selection, a status
// line with the committed value and unit, and the field bounds. Keys map
// onto input events:
//
//	digits . e E + - letters   typed into the field
//	Up / Down                  keyboard step
//	PgUp / PgDn                spin step
//	mouse wheel                wheel step
//	Enter / Esc                commit / abort
//	Ctrl-A                     select all
//	Ctrl-Z / Ctrl-N / Ctrl-X   zero / minimum / maximum
//	Ctrl-C / Ctrl-Q            quit
package tui

import (
	"errors"
	"fmt"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/numentry/internal/field"
	"github.com/dshills/numentry/internal/format"
	"github.com/dshills/numentry/internal/input"
	"github.com/dshills/numentry/internal/logging"
	"github.com/dshills/numentry/internal/notify"
	"github.com/dshills/numentry/internal/numeric"
)

// ErrQuit is returned by Run when the user quits.
var ErrQuit = errors.New("quit")

// Screen rows.
const (
	rowTitle  = 0
	rowField  = 2
	rowStatus = 4
	rowBounds = 5
	rowHelp   = 7

	fieldLeft = 2
)

const help = "Up/Down step  PgUp/PgDn spin  Enter commit  Esc abort  ^Z/^N/^X zero/min/max  ^C quit"

var (
	styleTitle    = tcell.StyleDefault.Bold(true)
	styleField    = tcell.StyleDefault.Underline(true)
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleDim      = tcell.StyleDefault.Dim(true)
)

// reloadEvent carries new field options from another goroutine onto the
// event loop.
type reloadEvent struct {
	opts []field.Option
}

// quitEvent asks the event loop to stop.
type quitEvent struct{}

// App runs a field on a tcell screen.
type App struct {
	screen tcell.Screen
	field  *field.Field
	log    *logging.Logger
	title  string

	mu      sync.Mutex
	message string

	sub *notify.Subscription
}

// Option configures an App.
type Option func(*App)

// WithTitle sets the title drawn on the first row.
func WithTitle(title string) Option {
	return func(a *App) {
		a.title = title
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(a *App) {
		a.log = l
	}
}

// NewScreen creates the terminal screen.
func NewScreen() (tcell.Screen, error) {
	return tcell.NewScreen()
}

// New creates an App drawing f on screen. The screen is initialized by
// Init or Run.
func New(screen tcell.Screen, f *field.Field, opts ...Option) *App {
	a := &App{
		screen: screen,
		field:  f,
		title:  "numentry",
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logging.Null()
	}
	a.log = a.log.WithComponent("tui")
	a.sub = f.OnValueChanged(func(ev notify.Event) {
		a.setMessage(fmt.Sprintf("committed %s", numeric.FormatPlain(ev.Value)))
	})
	return a
}

// Init initializes the screen and draws the first frame.
func (a *App) Init() error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	a.screen.EnableMouse()
	a.Draw()
	return nil
}

// Close releases the screen.
func (a *App) Close() {
	a.sub.Unsubscribe()
	a.screen.Fini()
}

// Run initializes the screen and processes events until the user quits.
// It returns ErrQuit on a normal exit.
func (a *App) Run() error {
	if err := a.Init(); err != nil {
		return err
	}
	defer a.Close()

	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return ErrQuit
		}
		if !a.HandleEvent(ev) {
			return ErrQuit
		}
		a.Draw()
	}
}

// Reload schedules a reconfiguration of the field on the event loop. It
// is safe to call from any goroutine.
func (a *App) Reload(opts []field.Option) {
	if err := a.screen.PostEvent(tcell.NewEventInterrupt(reloadEvent{opts: opts})); err != nil {
		a.log.Warn("reload dropped: %v", err)
	}
}

// Quit asks Run to return. It is safe to call from any goroutine.
func (a *App) Quit() {
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(quitEvent{})) // best-effort; the queue may be full
}

// HandleEvent applies a terminal event to the field. It returns false
// when the event asks to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(e)
	case *tcell.EventMouse:
		a.handleMouse(e)
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventInterrupt:
		switch data := e.Data().(type) {
		case reloadEvent:
			a.apply(data.opts)
		case quitEvent:
			return false
		}
	}
	return true
}

func (a *App) handleKey(e *tcell.EventKey) bool {
	var ev input.Event
	switch keyOf(e) {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return false
	case tcell.KeyRune:
		var ok bool
		ev, ok = input.Classify(e.Rune(), a.field.Separator())
		if !ok {
			return true
		}
	case tcell.KeyUp:
		ev = input.Key(input.KindStepUp)
	case tcell.KeyDown:
		ev = input.Key(input.KindStepDown)
	case tcell.KeyPgUp:
		ev = input.StepEvent(1, input.Spin)
	case tcell.KeyPgDn:
		ev = input.StepEvent(-1, input.Spin)
	case tcell.KeyEnter:
		ev = input.Key(input.KindCommit)
	case tcell.KeyEscape:
		ev = input.Key(input.KindAbort)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ev = input.Key(input.KindBackspace)
	case tcell.KeyDelete:
		ev = input.Key(input.KindDelete)
	case tcell.KeyLeft:
		ev = input.Key(input.KindLeft)
	case tcell.KeyRight:
		ev = input.Key(input.KindRight)
	case tcell.KeyHome:
		ev = input.Key(input.KindHome)
	case tcell.KeyEnd:
		ev = input.Key(input.KindEnd)
	case tcell.KeyCtrlA:
		ev = input.Key(input.KindSelectAll)
	case tcell.KeyCtrlZ:
		ev = input.Key(input.KindZero)
	case tcell.KeyCtrlN:
		ev = input.Key(input.KindMin)
	case tcell.KeyCtrlX:
		ev = input.Key(input.KindMax)
	default:
		return true
	}
	a.log.Debug("key %s", ev)
	a.field.Handle(ev)
	return true
}

// keyOf folds Ctrl+letter rune events into the matching control key.
func keyOf(e *tcell.EventKey) tcell.Key {
	if e.Key() == tcell.KeyRune && e.Modifiers()&tcell.ModCtrl != 0 {
		if r := unicode.ToLower(e.Rune()); r >= 'a' && r <= 'z' {
			return tcell.KeyCtrlA + tcell.Key(r-'a')
		}
	}
	return e.Key()
}

func (a *App) handleMouse(e *tcell.EventMouse) {
	switch {
	case e.Buttons()&tcell.WheelUp != 0:
		a.field.Handle(input.StepEvent(1, input.Wheel))
	case e.Buttons()&tcell.WheelDown != 0:
		a.field.Handle(input.StepEvent(-1, input.Wheel))
	case e.Buttons()&tcell.Button1 != 0:
		x, y := e.Position()
		if y == rowField && x >= fieldLeft {
			a.field.SetCursor(x - fieldLeft)
		}
	}
}

func (a *App) apply(opts []field.Option) {
	if err := a.field.Apply(opts...); err != nil {
		a.log.Warn("reload rejected: %v", err)
		a.setMessage(fmt.Sprintf("reload rejected: %v", err))
		return
	}
	a.log.Info("profile reloaded")
	a.setMessage("profile reloaded")
}

func (a *App) setMessage(msg string) {
	a.mu.Lock()
	a.message = msg
	a.mu.Unlock()
}

// Message returns the last status message.
func (a *App) Message() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.message
}

// Draw renders the current field state.
func (a *App) Draw() {
	a.screen.Clear()

	a.drawString(0, rowTitle, a.title, styleTitle)

	text := []rune(a.field.Text())
	selStart, selLen := a.field.Selection()
	for i, r := range text {
		style := styleField
		if selLen > 0 && i >= selStart && i < selStart+selLen {
			style = styleSelected
		}
		a.screen.SetContent(fieldLeft+i, rowField, r, nil, style)
	}
	a.screen.ShowCursor(fieldLeft+a.field.Cursor(), rowField)

	status := fmt.Sprintf("value %s", a.field.Compact())
	if u := a.field.Unit(); !u.IsNone() {
		status += fmt.Sprintf("  unit %s", u)
	}
	if a.field.IsEditing() {
		status += "  [editing]"
	}
	a.drawString(0, rowStatus, status, tcell.StyleDefault)
	a.drawString(0, rowBounds, boundsLine(a.field.Bounds()), styleDim)

	if msg := a.Message(); msg != "" {
		a.drawString(0, rowHelp-1, msg, styleDim)
	}
	a.drawString(0, rowHelp, help, styleDim)

	a.screen.Show()
}

func (a *App) drawString(x, y int, s string, style tcell.Style) {
	width, _ := a.screen.Size()
	for _, r := range s {
		if x >= width {
			return
		}
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func boundsLine(b format.Bounds) string {
	lo, hi := "-inf", "+inf"
	if !format.IsLimit(b.Min) {
		lo = numeric.FormatPlain(b.Min)
	}
	if !format.IsLimit(b.Max) {
		hi = numeric.FormatPlain(b.Max)
	}
	return fmt.Sprintf("range [%s, %s]", lo, hi)
}
