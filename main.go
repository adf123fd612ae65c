// main.go - IntuitionConsole boot sequence

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionConsole
License: GPLv3 or later
*/

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

const consoleTitle = "IntuitionConsole"

var (
	errDisplayClosed = errors.New("display closed")
	errQuit          = errors.New("quit requested")
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147mIntuitionConsole\033[0m")
	fmt.Println("\nA framebuffer text console with a PC keyboard pipeline.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionConsole")
	fmt.Println("License: GPLv3 or later")
}

// BootConfig describes the emulated framebuffer and the host devices that
// drive it.
type BootConfig struct {
	Backend       string
	Width         int
	Height        int
	StridePad     int
	Format        PixelFormat
	BytesPerPixel int
	Bell          bool
	Splash        bool
	LogFile       string
}

func (c BootConfig) FrameBufferInfo() FrameBufferInfo {
	return NewFrameBufferInfo(c.Width, c.Height, c.Width+c.StridePad, c.BytesPerPixel, c.Format)
}

func (c BootConfig) Validate() error {
	if _, err := ParseDisplayBackend(c.Backend); err != nil {
		return err
	}
	if c.Width > 4096 || c.Height > 4096 {
		return fmt.Errorf("resolution %dx%d exceeds 4096x4096", c.Width, c.Height)
	}
	if c.StridePad < 0 {
		return fmt.Errorf("stride pad %d is negative", c.StridePad)
	}
	if err := c.FrameBufferInfo().validate(); err != nil {
		return err
	}
	cw, ch := NewBasicFontGlyphs().CellSize()
	if c.Width < cw || c.Height < ch {
		return fmt.Errorf("resolution %dx%d cannot hold a %dx%d character cell", c.Width, c.Height, cw, ch)
	}
	return nil
}

func parseBootConfig(args []string) (BootConfig, error) {
	var (
		cfg    BootConfig
		format string
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&cfg.Backend, "backend", "ebiten", "Display backend: ebiten, tcell or headless")
	flagSet.IntVar(&cfg.Width, "width", 640, "Framebuffer width in pixels")
	flagSet.IntVar(&cfg.Height, "height", 480, "Framebuffer height in pixels")
	flagSet.IntVar(&cfg.StridePad, "stride-pad", 0, "Extra pixels per framebuffer row")
	flagSet.StringVar(&format, "format", "rgb", "Pixel format: rgb, bgr or u8")
	flagSet.IntVar(&cfg.BytesPerPixel, "bpp", 4, "Bytes per pixel")
	flagSet.BoolVar(&cfg.Bell, "bell", false, "Play the console bell through the sound device")
	flagSet.BoolVar(&cfg.Splash, "splash", false, "Draw the boot splash")
	flagSet.StringVar(&cfg.LogFile, "log", "", "Write diagnostics to this file")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./intuition_console [-backend ebiten|tcell|headless] [-width 640] [-height 480] [-format rgb|bgr|u8] [-bpp 4]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return cfg, err
	}
	if flagSet.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected argument %q", flagSet.Arg(0))
	}

	f, err := ParsePixelFormat(format)
	if err != nil {
		return cfg, err
	}
	cfg.Format = f
	return cfg, cfg.Validate()
}

func main() {
	cfg, err := parseBootConfig(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Backend != "tcell" {
		boilerPlate()
	}

	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Printf("Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		setDiagOutput(f)
	case cfg.Backend == "tcell":
		// The terminal belongs to tcell.
		setDiagOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, errDisplayClosed) &&
		!errors.Is(err, errQuit) && !errors.Is(err, context.Canceled) {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg BootConfig) error {
	info := cfg.FrameBufferInfo()
	front := make([]byte, info.ByteLen)

	stream := NewScancodeStream()
	pipeline := keyboardPipeline.Load()
	console := bootDisplay(front, info, DefaultPalette)

	if cfg.Splash {
		if rows := drawSplash(bootSurface, consoleTitle); rows > 0 {
			_, ch := NewBasicFontGlyphs().CellSize()
			kprintf("%s", strings.Repeat("\n", (rows+ch-1)/ch))
		}
	}

	if cfg.Bell {
		bell, err := NewOtoBell()
		if err != nil {
			diag.Printf("bell disabled: %v", err)
			kprintln("bell unavailable")
		} else {
			defer bell.Close()
			console.SetBell(bell)
		}
	}

	backend, _ := ParseDisplayBackend(cfg.Backend)
	output, err := NewDisplayOutput(backend)
	if err != nil {
		return err
	}
	if err := output.SetDisplayConfig(DisplayConfig{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Scale:       1,
		RefreshRate: 60,
		Title:       consoleTitle,
	}); err != nil {
		return err
	}
	if err := output.Start(); err != nil {
		return err
	}
	defer output.Close()

	var quit <-chan struct{}
	if kc, ok := output.(KeyboardCapable); ok {
		kc.SetScancodeHandler(AddScancode)
	} else {
		host := NewTerminalHost(AddScancode)
		if err := host.Start(); err != nil {
			diag.Printf("no keyboard: %v", err)
		} else {
			defer host.Stop()
			quit = host.Done()
		}
	}

	keys := NewKeyDecoder(stream)
	sh := NewShell(console, keys)
	fb := bootSurface.Info()
	sh.SetBanner(fmt.Sprintf("%s %dx%d %v/%d stride %d\n", consoleTitle, fb.Width, fb.Height, fb.Format, fb.BytesPerPixel, fb.Stride))
	sh.SetStats(func() string {
		return fmt.Sprintf("dropped scancodes: %d\ndecode errors: %d\nframes presented: %d\nframes shown: %d",
			pipeline.Dropped(), keys.Errors(), bootSurface.Frames(), output.GetFrameCount())
	})

	exec := NewExecutor()
	exec.Spawn("shell", sh.Run)
	exec.Spawn("scanout", func(ctx context.Context) error {
		return scanout(ctx, bootSurface, output)
	})
	if quit != nil {
		exec.Spawn("quit", func(ctx context.Context) error {
			return waitQuit(ctx, quit)
		})
	}
	return exec.Run(ctx)
}

// waitQuit turns the host keyboard's quit key into a task error so the
// executor winds the other tasks down.
func waitQuit(ctx context.Context, quit <-chan struct{}) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-quit:
		return errQuit
	}
}

// scanout hands every newly presented frame to the display output. It ends
// when ctx is cancelled or the user closes the display.
func scanout(ctx context.Context, s *PixelSurface, out DisplayOutput) error {
	rate := out.GetRefreshRate()
	if rate <= 0 {
		rate = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	var closed <-chan struct{}
	if c, ok := out.(ClosableOutput); ok {
		closed = c.Done()
	}

	var (
		frame []byte
		shown uint64
		first = true
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-closed:
			return errDisplayClosed
		case <-ticker.C:
		}

		if n := s.Frames(); first || n != shown {
			frame = s.ScanoutRGBA(frame)
			if err := out.UpdateFrame(frame); err != nil {
				return err
			}
			shown, first = n, false
		}
	}
}
