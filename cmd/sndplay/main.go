// SPDX-License-Identifier: EPL-2.0

// Command sndplay loads sound files into a sound.Manager and plays them
// from a terminal UI driven at a fixed frame rate.
//
//	sndplay [flags] file...
//
// With -inspect it lists the chunks of WAVE files instead, and with
// -convert it writes the first file out as a 16-bit WAVE at -rate and
// -channels.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ik5/audmgr"
	"github.com/ik5/audmgr/device"
	"github.com/ik5/audmgr/device/ebitendev"
	"github.com/ik5/audmgr/device/otodev"
	"github.com/ik5/audmgr/formats/wav"
	"github.com/ik5/audmgr/sound"
)

var (
	backend  = flag.String("backend", "oto", "Audio output: oto or ebiten")
	rate     = flag.Int("rate", 44100, "Output sample rate in Hz")
	channels = flag.Int("channels", 2, "Output channels (oto and -convert only)")
	buffer   = flag.Duration("buffer", 0, "Output buffer length, 0 for the driver default")
	logFile  = flag.String("log-file", "sndplay.log", "Log file path")
	logLevel = flag.String("log-level", "info", "debug, info, warn or error")
	fps      = flag.Int("fps", 60, "Update calls per second")
	gain     = flag.Float64("gain", 1, "Initial gain for every sound")
	noLoop   = flag.Bool("no-loop", false, "Play sounds once instead of looping")
	noTUI    = flag.Bool("no-tui", false, "Play every sound once and exit when all have stopped")
	inspect  = flag.Bool("inspect", false, "List WAVE chunks and exit")
	convert  = flag.String("convert", "", "Write the first file as WAVE to this path and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	switch {
	case *inspect:
		if err := inspectFiles(os.Stdout, paths); err != nil {
			log.Fatal(err)
		}
		return
	case *convert != "":
		if err := convertFile(paths[0], *convert, *rate, *channels); err != nil {
			log.Fatal(err)
		}
		return
	}

	closeLog, err := setupLogging(*logFile, *logLevel)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer closeLog()

	dev, err := newDevice(*backend, *rate, *channels, *buffer)
	if err != nil {
		log.Fatal(err)
	}

	m := sound.NewManager(dev, sound.WithParams(device.Params{
		Gain:    float32(*gain),
		Pitch:   1,
		Looping: !*noLoop && !*noTUI,
	}))
	if err := m.Initialise(); err != nil {
		log.Fatalf("audio device: %v", err)
	}
	defer func() {
		if err := m.Destroy(); err != nil {
			slog.Warn("shutdown", slog.Any("err", err))
		}
	}()

	loaded := 0
	for _, p := range paths {
		if m.Load(p) {
			loaded++
		}
	}
	if loaded == 0 {
		log.Printf("no sound could be loaded, see %s", *logFile)
		return
	}

	if *noTUI {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		playAll(ctx, m, frameInterval(*fps))
		return
	}

	p := tea.NewProgram(newModel(m, *fps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Printf("TUI: %v", err)
	}
}

func setupLogging(path, level string) (func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	sound.SetLogger(logger)

	return func() { _ = f.Close() }, nil
}

var errUnknownBackend = errors.New("unknown backend")

func newDevice(name string, rate, channels int, buf time.Duration) (device.Device, error) {
	switch name {
	case "oto":
		return otodev.New(otodev.Options{SampleRate: rate, Channels: channels, BufferSize: buf}), nil
	case "ebiten":
		return ebitendev.New(ebitendev.Options{SampleRate: rate, BufferSize: buf}), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownBackend, name)
	}
}

func frameInterval(fps int) time.Duration {
	if fps < 1 {
		fps = 60
	}

	return time.Second / time.Duration(fps)
}

// playAll starts every sound and calls Update once per frame until all
// of them have stopped or ctx is done.
func playAll(ctx context.Context, m *sound.Manager, frame time.Duration) {
	for _, p := range m.Paths() {
		m.Play(p, mgl32.Vec3{})
	}

	t := time.NewTicker(frame)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}

		m.Update()
		if !anyPlaying(m) {
			return
		}
	}
}

func anyPlaying(m *sound.Manager) bool {
	for _, p := range m.Paths() {
		if st, _ := m.State(p); st == device.Playing {
			return true
		}
	}

	return false
}

func convertFile(in, out string, rate, channels int) error {
	clip, err := audmgr.ConvertFile(in, rate, channels)
	if err != nil {
		return err
	}
	if err := wav.EncodeFile(out, clip); err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", out, clip.Format)

	return nil
}
