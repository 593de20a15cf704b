// Package main is the entry point for ropeview, a small terminal viewer
// built on top of the rope text buffer library.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/udoprog/ropey/internal/engine/rope"
)

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	var dump bool
	flag.StringVar(&configPath, "config", "", "Path to a TOML config file")
	flag.StringVar(&configPath, "c", "", "Path to a TOML config file (shorthand)")
	flag.BoolVar(&dump, "dump", false, "Print the file to stdout instead of opening the viewer")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ropeview - a terminal viewer for the rope text buffer library\n\n")
		fmt.Fprintf(os.Stderr, "Usage: ropeview [options] <file>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		return 1
	}
	path := args[0]

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	buf, err := loadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// When stdout isn't a terminal (piped to a file or another command),
	// skip the interactive screen entirely and stream the buffer straight
	// through WriteTo — there's no viewport to draw into.
	if dump || !term.IsTerminal(int(os.Stdout.Fd())) {
		if _, err := buf.WriteTo(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := runInteractive(path, buf, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func loadFile(path string) (rope.Rope, error) {
	f, err := os.Open(path)
	if err != nil {
		return rope.Rope{}, err
	}
	defer f.Close()
	return rope.FromReader(f)
}

func runInteractive(path string, buf rope.Rope, cfg Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	v := newViewer(screen, buf, path, cfg)
	fmt.Fprintf(os.Stderr, "ropeview session %s opened %s (%d bytes)\n", v.sessionID, path, buf.LenBytes())

	watcher, reload, err := watchFile(path)
	if err != nil {
		// Live-reload is a convenience, not a requirement: a file on a
		// filesystem that doesn't support fsnotify still has to be
		// viewable.
		watcher = nil
	}
	if watcher != nil {
		defer watcher.Close()
	}

	events := make(chan tcell.Event, 16)
	go screen.ChannelEvents(events, nil)

	v.draw()
	for {
		select {
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				v.draw()
			case *tcell.EventKey:
				switch {
				case e.Key() == tcell.KeyEscape, e.Key() == tcell.KeyCtrlC, e.Rune() == 'q':
					return nil
				case e.Key() == tcell.KeyDown, e.Rune() == 'j':
					v.scroll(1)
					v.draw()
				case e.Key() == tcell.KeyUp, e.Rune() == 'k':
					v.scroll(-1)
					v.draw()
				case e.Key() == tcell.KeyPgDn:
					v.scroll(v.pageSize())
					v.draw()
				case e.Key() == tcell.KeyPgUp:
					v.scroll(-v.pageSize())
					v.draw()
				case e.Key() == tcell.KeyHome:
					v.top = 0
					v.draw()
				case e.Key() == tcell.KeyEnd:
					v.top = v.lineCount()
					v.draw()
				case e.Rune() == 'r':
					if reloaded, err := loadFile(path); err == nil {
						v.setBuffer(reloaded)
						v.draw()
					}
				}
			}
		case <-reload:
			if reloaded, err := loadFile(path); err == nil {
				v.setBuffer(reloaded)
				v.draw()
			}
		}
	}
}
