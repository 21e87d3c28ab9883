// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chebizarro/ubit-sub003/f32"
	"github.com/chebizarro/ubit-sub003/io/event"
	"github.com/chebizarro/ubit-sub003/io/key"
	"github.com/chebizarro/ubit-sub003/io/pointer"
)

// command is one parsed interactive line: an event to dispatch or a
// wait that advances the clock.
type command struct {
	ev   event.Event
	wait time.Duration
}

// newEvent builds the event of kind for pointer pid. Key kinds use
// chord and ignore the pointer fields.
func newEvent(kind string, pid pointer.ID, pos, scroll f32.Point, buttons, chord string) (event.Event, error) {
	switch strings.ToLower(kind) {
	case "key", "keyup":
		name, mods, err := key.ParseChord(chord)
		if err != nil {
			return nil, err
		}
		st := key.Press
		if strings.EqualFold(kind, "keyup") {
			st = key.Release
		}
		return key.Event{Name: name, Modifiers: mods, State: st}, nil
	case "focus", "blur":
		return key.FocusEvent{Focus: strings.EqualFold(kind, "focus")}, nil
	}
	k, ok := pointer.ParseKind(kind)
	if !ok {
		return nil, fmt.Errorf("unknown event kind %q", kind)
	}
	btns, ok := pointer.ParseButtons(buttons)
	if !ok {
		return nil, fmt.Errorf("unknown buttons %q", buttons)
	}
	// Buttons is the state after the event; a bare press holds
	// the primary button.
	if k == pointer.Press && btns == 0 {
		btns = pointer.ButtonPrimary
	}
	return pointer.Event{
		Kind:      k,
		PointerID: pid,
		Position:  pos,
		Scroll:    scroll,
		Buttons:   btns,
	}, nil
}

// parseLine parses an interactive command line:
//
//	press|release|move <pointer> <x> <y> [buttons]
//	scroll <pointer> <x> <y> <dx> <dy>
//	cancel <pointer>
//	key|keyup <chord>
//	focus|blur
//	wait <duration>
//
// Blank lines and lines starting with '#' yield ok == false.
func parseLine(line string) (cmd command, ok bool, err error) {
	f := strings.Fields(line)
	if len(f) == 0 || strings.HasPrefix(f[0], "#") {
		return command{}, false, nil
	}
	kind, args := strings.ToLower(f[0]), f[1:]
	nargs := func(min, max int) error {
		if len(args) < min || len(args) > max {
			return fmt.Errorf("%s: wrong number of arguments", kind)
		}
		return nil
	}
	switch kind {
	case "wait":
		if err := nargs(1, 1); err != nil {
			return command{}, false, err
		}
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return command{}, false, err
		}
		if d < 0 {
			return command{}, false, fmt.Errorf("wait: negative duration %s", d)
		}
		return command{wait: d}, true, nil
	case "key", "keyup":
		if err := nargs(1, 1); err != nil {
			return command{}, false, err
		}
		ev, err := newEvent(kind, 0, f32.Point{}, f32.Point{}, "", args[0])
		return command{ev: ev}, err == nil, err
	case "focus", "blur":
		if err := nargs(0, 0); err != nil {
			return command{}, false, err
		}
		ev, err := newEvent(kind, 0, f32.Point{}, f32.Point{}, "", "")
		return command{ev: ev}, err == nil, err
	case "cancel":
		if err := nargs(1, 1); err != nil {
			return command{}, false, err
		}
		pid, err := parsePointer(args[0])
		if err != nil {
			return command{}, false, err
		}
		return command{ev: pointer.Event{Kind: pointer.Cancel, PointerID: pid}}, true, nil
	case "scroll":
		if err := nargs(5, 5); err != nil {
			return command{}, false, err
		}
	default:
		if err := nargs(3, 4); err != nil {
			return command{}, false, err
		}
	}
	pid, err := parsePointer(args[0])
	if err != nil {
		return command{}, false, err
	}
	nums, err := parseFloats(args[1:3])
	if err != nil {
		return command{}, false, err
	}
	pos := f32.Pt(nums[0], nums[1])
	var scroll f32.Point
	buttons := ""
	if kind == "scroll" {
		d, err := parseFloats(args[3:5])
		if err != nil {
			return command{}, false, err
		}
		scroll = f32.Pt(d[0], d[1])
	} else if len(args) == 4 {
		buttons = args[3]
	}
	ev, err := newEvent(kind, pid, pos, scroll, buttons, "")
	if err != nil {
		return command{}, false, err
	}
	return command{ev: ev}, true, nil
}

func parsePointer(s string) (pointer.ID, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid pointer %q", s)
	}
	return pointer.ID(v), nil
}

func parseFloats(args []string) ([]float32, error) {
	vals := make([]float32, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		vals[i] = float32(v)
	}
	return vals, nil
}

// describe formats ev for verbose output.
func describe(ev event.Event) string {
	switch e := ev.(type) {
	case pointer.Event:
		s := fmt.Sprintf("%s pointer %d at %s", e.Kind, e.PointerID, e.Position)
		if e.Buttons != 0 {
			s += " " + e.Buttons.String()
		}
		if e.Kind == pointer.Scroll {
			s += " by " + e.Scroll.String()
		}
		return s
	case key.Event:
		k := string(e.Name)
		if e.Modifiers != 0 {
			k = e.Modifiers.String() + "-" + k
		}
		return fmt.Sprintf("key %s %s", k, e.State)
	case key.FocusEvent:
		if e.Focus {
			return "focus gained"
		}
		return "focus lost"
	default:
		return fmt.Sprintf("%T", ev)
	}
}
