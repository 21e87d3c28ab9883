// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/chebizarro/ubit-sub003/f32"
	"github.com/chebizarro/ubit-sub003/io/condition"
	"github.com/chebizarro/ubit-sub003/io/event"
	"github.com/chebizarro/ubit-sub003/io/input"
	"github.com/chebizarro/ubit-sub003/io/pointer"
	"github.com/chebizarro/ubit-sub003/io/timer"
	"github.com/chebizarro/ubit-sub003/io/view"
)

// sceneFile is the TOML layout of a scene.
type sceneFile struct {
	View  []viewSpec  `toml:"view"`
	Bind  []bindSpec  `toml:"bind"`
	Event []eventSpec `toml:"event"`
}

type viewSpec struct {
	Name   string    `toml:"name"`
	Parent string    `toml:"parent"`
	Bounds []float64 `toml:"bounds"`
}

// bindSpec registers actions on a view. Exactly one of On and Key
// selects the condition; Button and Modifiers refine On.
type bindSpec struct {
	View    string   `toml:"view"`
	On      []string `toml:"on"`
	Key     string   `toml:"key"`
	Button  string   `toml:"button"`
	Actions []string `toml:"do"`
}

type eventSpec struct {
	At      duration `toml:"at"`
	Pointer int      `toml:"pointer"`
	Kind    string   `toml:"kind"`
	X       float32  `toml:"x"`
	Y       float32  `toml:"y"`
	DX      float32  `toml:"dx"`
	DY      float32  `toml:"dy"`
	Buttons string   `toml:"buttons"`
	Key     string   `toml:"key"`
}

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	d.Duration = v
	return err
}

// scene is a loaded scene wired to a router.
type scene struct {
	out     io.Writer
	verbose bool
	// prompt enables the interactive prompt.
	prompt  bool
	arena   *view.Arena
	reg     *input.Registry
	timers  *timer.Queue
	router  *input.Router
	views   map[string]view.Handle
	script  []timedEvent
	start   time.Time
	display *printDisplay
}

type timedEvent struct {
	at time.Duration
	ev event.Event
}

// printDisplay prints menus shown and hidden.
type printDisplay struct {
	s *scene
}

func (d *printDisplay) Show(menu, opener view.Handle) {
	d.s.printf("show %s from %s", d.s.arena.Name(menu), d.s.arena.Name(opener))
}

func (d *printDisplay) Hide(menu view.Handle) {
	d.s.printf("hide %s", d.s.arena.Name(menu))
}

func loadScene(r io.Reader, out io.Writer, cfg input.Config, start time.Time) (*scene, error) {
	var f sceneFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("scene: unknown key %q", undec[0].String())
	}
	s := &scene{
		out:    out,
		arena:  view.NewArena(),
		timers: timer.NewQueue(start),
		views:  make(map[string]view.Handle),
		start:  start,
	}
	s.display = &printDisplay{s: s}
	if cfg.Reporter == nil {
		cfg.Reporter = s
	}
	s.reg = input.NewRegistry(s.arena, cfg.Reporter)
	s.router = input.NewRouter(s.arena, s.reg, s.timers, cfg)
	for _, v := range f.View {
		if err := s.addView(v); err != nil {
			return nil, err
		}
	}
	for _, b := range f.Bind {
		if err := s.bind(b); err != nil {
			return nil, err
		}
	}
	for i, e := range f.Event {
		ev, err := e.event()
		if err != nil {
			return nil, fmt.Errorf("scene: event %d: %w", i+1, err)
		}
		s.script = append(s.script, timedEvent{at: e.At.Duration, ev: ev})
	}
	return s, nil
}

func (s *scene) addView(v viewSpec) error {
	if v.Name == "" {
		return fmt.Errorf("scene: view without name")
	}
	if _, dup := s.views[v.Name]; dup {
		return fmt.Errorf("scene: duplicate view %q", v.Name)
	}
	if len(v.Bounds) != 4 {
		return fmt.Errorf("scene: view %q: bounds must be [x0, y0, x1, y1]", v.Name)
	}
	var parent view.Handle
	if v.Parent != "" {
		p, ok := s.views[v.Parent]
		if !ok {
			return fmt.Errorf("scene: view %q: unknown parent %q", v.Name, v.Parent)
		}
		parent = p
	}
	b := v.Bounds
	s.views[v.Name] = s.arena.Add(parent, v.Name, f32.Rect(float32(b[0]), float32(b[1]), float32(b[2]), float32(b[3])))
	return nil
}

func (s *scene) lookup(name string) (view.Handle, error) {
	h, ok := s.views[name]
	if !ok {
		return view.Handle{}, fmt.Errorf("unknown view %q", name)
	}
	return h, nil
}

func (s *scene) bind(b bindSpec) error {
	h, err := s.lookup(b.View)
	if err != nil {
		return fmt.Errorf("scene: bind: %w", err)
	}
	c, err := b.condition()
	if err != nil {
		return fmt.Errorf("scene: bind %s: %w", b.View, err)
	}
	acts, err := s.actions(b.Actions)
	if err != nil {
		return fmt.Errorf("scene: bind %s: %w", b.View, err)
	}
	return s.reg.Register(h, c, input.CallbackFunc(func(e *input.Event) {
		s.notify(e)
		for _, a := range acts {
			a(e)
		}
	}))
}

func (b bindSpec) condition() (condition.Condition, error) {
	if b.Key != "" {
		if len(b.On) > 0 {
			return nil, fmt.Errorf("both key and on given")
		}
		c, err := condition.ParseKey(b.Key)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	if len(b.On) == 0 {
		return nil, fmt.Errorf("no condition")
	}
	var kinds event.Kind
	m := condition.NewMulti()
	for _, name := range b.On {
		if c, ok := condition.Lookup(name); ok && b.Button == "" {
			m.Add(c)
			continue
		}
		k, ok := event.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown condition %q", name)
		}
		kinds |= k
	}
	if kinds != 0 {
		buttons, ok := pointer.ParseButtons(b.Button)
		if !ok {
			return nil, fmt.Errorf("unknown buttons %q", b.Button)
		}
		m.Add(condition.OnButton(kinds, buttons))
	}
	if m.Len() == 1 {
		return m.Conditions()[0], nil
	}
	return m, nil
}

// actionFields maps action names to their field count, name included.
var actionFields = map[string]int{
	"consume": 1, "focus": 1, "close-all": 1, "close-menu": 1,
	"open-menu": 2, "open-menu-delayed": 2, "close-menu-delayed": 2,
	"close-submenus": 2, "remove": 2,
}

// actions compiles the actions of a binding.
func (s *scene) actions(specs []string) ([]func(e *input.Event), error) {
	var acts []func(e *input.Event)
	for _, spec := range specs {
		f := strings.Fields(spec)
		if len(f) == 0 {
			continue
		}
		var arg view.Handle
		if len(f) > 1 {
			h, err := s.lookup(f[1])
			if err != nil {
				return nil, fmt.Errorf("action %q: %w", spec, err)
			}
			arg = h
		}
		if n, ok := actionFields[f[0]]; !ok || n != len(f) {
			return nil, fmt.Errorf("bad action %q", spec)
		}
		var act func(e *input.Event)
		switch f[0] {
		case "consume":
			act = func(e *input.Event) { e.Consume() }
		case "focus":
			act = func(e *input.Event) { s.flowOf(e).SetFocus(e.Current) }
		case "close-all":
			act = func(e *input.Event) { s.flowOf(e).Menus().CloseAllMenus(true) }
		case "close-menu":
			act = func(e *input.Event) {
				m := s.flowOf(e).Menus()
				if a := m.Active(); a.Valid() {
					m.CloseSubMenus(a, true)
				}
			}
		case "open-menu":
			act = func(e *input.Event) { s.flowOf(e).Menus().OpenMenu(e.Current, arg, s.display) }
		case "open-menu-delayed":
			act = func(e *input.Event) { s.flowOf(e).Menus().OpenMenuAfterDelay(e.Current, arg, s.display) }
		case "close-menu-delayed":
			act = func(e *input.Event) { s.flowOf(e).Menus().CloseMenuAfterDelay(arg) }
		case "close-submenus":
			act = func(e *input.Event) { s.flowOf(e).Menus().CloseSubMenus(arg, false) }
		case "remove":
			act = func(e *input.Event) { s.arena.Remove(arg) }
		}
		acts = append(acts, act)
	}
	return acts, nil
}

// flowOf returns the flow dispatching e.
func (s *scene) flowOf(e *input.Event) *input.Flow {
	for _, f := range s.router.Flows() {
		if f.ID() == e.Flow {
			return f
		}
	}
	panic("flowreplay: event from unknown flow")
}

func (e eventSpec) event() (event.Event, error) {
	if e.Pointer < 0 {
		return nil, fmt.Errorf("negative pointer %d", e.Pointer)
	}
	return newEvent(e.Kind, pointer.ID(e.Pointer), f32.Pt(e.X, e.Y), f32.Pt(e.DX, e.DY), e.Buttons, e.Key)
}

// run replays the scripted events on the virtual clock.
func (s *scene) run() {
	for _, te := range s.script {
		s.advance(s.start.Add(te.at))
		s.dispatch(te.ev)
	}
	// Let pending delayed actions fire.
	for {
		next, ok := s.timers.WakeupTime()
		if !ok {
			break
		}
		s.advance(next)
	}
}

func (s *scene) advance(now time.Time) {
	s.timers.Advance(now)
}

func (s *scene) dispatch(ev event.Event) {
	if s.verbose {
		s.printf("event %s", describe(ev))
	}
	s.router.Queue(ev)
	if s.verbose {
		for _, f := range s.router.Flows() {
			s.printf("flow %d menus %s", f.PointerID(), s.names(f.Menus().Stack()))
		}
	}
}

func (s *scene) notify(e *input.Event) {
	pid := -1
	for _, f := range s.router.Flows() {
		if f.ID() == e.Flow {
			pid = int(f.PointerID())
		}
	}
	line := fmt.Sprintf("flow %d %s %s", pid, e.Kind, s.arena.Name(e.Current))
	if e.Current != e.Source {
		line += " from " + s.arena.Name(e.Source)
	}
	s.printf("%s", line)
}

func (s *scene) names(hs []view.Handle) string {
	n := make([]string, len(hs))
	for i, h := range hs {
		n[i] = s.arena.Name(h)
	}
	return "[" + strings.Join(n, " ") + "]"
}

func (s *scene) printf(format string, args ...interface{}) {
	at := s.timers.Now().Sub(s.start)
	fmt.Fprintf(s.out, "%8s  %s\n", at, fmt.Sprintf(format, args...))
}

func (s *scene) Warnf(format string, args ...interface{}) {
	s.printf("WARN: "+format, args...)
}

func (s *scene) Errorf(format string, args ...interface{}) {
	s.printf("ERROR: "+format, args...)
}
