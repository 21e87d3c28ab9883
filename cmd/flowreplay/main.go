// SPDX-License-Identifier: Unlicense OR MIT

// Command flowreplay loads a scene of nested views and callback
// bindings and replays pointer and key input through an input
// router, printing every notification delivered.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/chebizarro/ubit-sub003/internal/config"
	"github.com/chebizarro/ubit-sub003/io/input"
)

var (
	configFile  = flag.String("config", config.Path("flowreplay"), "configuration file")
	watch       = flag.Bool("watch", false, "reload the configuration when it changes")
	interactive = flag.Bool("i", false, "read further input commands from stdin after the scripted events")
	verbose     = flag.Bool("v", false, "print every input event and the menu stacks")
)

const mainUsage = `The flowreplay command replays input through a scene of views.

Usage:

	flowreplay [flags] <scene.toml>

The scene file declares [[view]] tables with a name, an optional parent
and bounds [x0, y0, x1, y1]; [[bind]] tables that attach actions to a
view on conditions; and [[event]] tables replayed on a virtual clock.

With -i, commands such as "press 0 10 10", "key Escape" or "wait 300ms"
are read from stdin and dispatched in real time. -watch requires -i.
`

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, mainUsage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "flowreplay: %v\n", err)
		os.Exit(1)
	}
}

func mainErr() error {
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := checkFlags(*interactive, *watch); err != nil {
		return err
	}
	cfg, err := config.LoadOrDefault(*configFile)
	if err != nil {
		return err
	}
	f, err := os.Open(flag.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()
	start := time.Now()
	s, err := loadScene(f, os.Stdout, cfg.Input(nil), start)
	if err != nil {
		return err
	}
	s.verbose = *verbose || cfg.Log.Verbose
	if !*interactive {
		s.run()
		return nil
	}
	var w *config.Watcher
	if *watch {
		w, err = config.Watch(*configFile)
		if err != nil {
			return err
		}
		defer w.Close()
	}
	// Scripted events play back first, on the virtual clock
	// anchored at start.
	for _, te := range s.script {
		s.advance(start.Add(te.at))
		s.dispatch(te.ev)
	}
	fd := os.Stdin.Fd()
	s.prompt = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return s.loop(os.Stdin, w, input.LogReporter{Logger: log.New(os.Stderr, "flowreplay: ", 0)})
}

// loop dispatches commands read from r in real time until r is
// exhausted and no timers are pending.
func (s *scene) loop(r io.Reader, w *config.Watcher, rep input.Reporter) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			lines <- sc.Text()
		}
		readErr <- sc.Err()
		close(lines)
	}()
	var updates <-chan config.Config
	var errs <-chan error
	if w != nil {
		updates, errs = w.Updates, w.Errors
	}
	// in is nil while a wait command is in progress.
	in := lines
	var resume <-chan time.Time
	wakeup := time.NewTimer(0)
	defer wakeup.Stop()
	done := false
	s.showPrompt()
	for {
		s.advance(s.realNow())
		if done && in == nil && resume == nil && s.timers.Pending() == 0 {
			return <-readErr
		}
		s.resetWakeup(wakeup)
		select {
		case line, ok := <-in:
			if !ok {
				done = true
				in = nil
				continue
			}
			cmd, ok, err := parseLine(line)
			switch {
			case err != nil:
				rep.Errorf("%v", err)
			case !ok:
			case cmd.ev == nil:
				in = nil
				resume = time.After(cmd.wait)
				continue
			default:
				s.dispatch(cmd.ev)
			}
			s.showPrompt()
		case <-resume:
			resume = nil
			if !done {
				in = lines
				s.showPrompt()
			}
		case <-wakeup.C:
		case c, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			s.apply(c)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			rep.Errorf("%v", err)
		}
	}
}

func (s *scene) showPrompt() {
	if s.prompt {
		fmt.Fprint(s.out, "> ")
	}
}

// realNow returns the wall clock, never earlier than the queue clock.
func (s *scene) realNow() time.Time {
	now := time.Now()
	if q := s.timers.Now(); now.Before(q) {
		return q
	}
	return now
}

func (s *scene) resetWakeup(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	next, ok := s.timers.WakeupTime()
	if !ok {
		// Park the timer; input or reloads wake the loop.
		next = time.Now().Add(time.Hour)
	}
	t.Reset(time.Until(next))
}

// apply installs a reloaded configuration.
func (s *scene) apply(c config.Config) {
	openDelay, closeDelay := c.Input(nil).Delays()
	for _, f := range s.router.Flows() {
		f.Menus().SetDelays(openDelay, closeDelay)
	}
	s.verbose = *verbose || c.Log.Verbose
	s.printf("config reloaded")
}

func checkFlags(interactive, watch bool) error {
	if watch && !interactive {
		return errors.New("-watch requires -i")
	}
	return nil
}
