package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/Fepozopo/grade/pkg/grade"
	"github.com/Fepozopo/grade/pkg/stdimg"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "Commands available:")
	fmt.Fprintln(w, "  /  - select a parameter and enter a value")
	fmt.Fprintln(w, "  a  - apply the settings to the original and preview")
	fmt.Fprintln(w, "  r  - reset every parameter to neutral")
	fmt.Fprintln(w, "  c  - toggle showing the original")
	fmt.Fprintln(w, "  o  - open another image")
	fmt.Fprintln(w, "  s  - export the graded image")
	fmt.Fprintln(w, "  p  - save the settings as a preset")
	fmt.Fprintln(w, "  l  - load a preset")
	fmt.Fprintln(w, "  i  - show settings, size and clipping")
	fmt.Fprintln(w, "  u  - check for updates")
	fmt.Fprintln(w, "  h  - show this help message")
	fmt.Fprintln(w, "  q  - quit")
}

// Run is the entry point of the grade command. It returns the process
// exit status.
func Run(args []string) int {
	cfg := LoadConfig()
	cfg.apply()

	opts, err := ParseArgs(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		if !errors.Is(err, ErrUsage) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		return 1
	}
	switch {
	case opts.ShowVersion:
		fmt.Println(Version)
		return 0
	case opts.Update:
		if err := CheckForUpdates(PromptLine); err != nil {
			fmt.Fprintf(os.Stderr, "update check error: %v\n", err)
			return 1
		}
		return 0
	case opts.Output != "":
		if err := runHeadless(cfg, opts); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		return 0
	}
	if cfg.Preview && !PreviewSupported() {
		cfg.Preview = false
	}
	return newSession(cfg, opts.Settings, stdin, os.Stdout).run(opts.Input)
}

// runHeadless loads opts.Input, grades it and writes opts.Output.
func runHeadless(cfg Config, opts Options) error {
	if opts.Input == "" {
		return fmt.Errorf("no input image given")
	}
	img, _, err := LoadImage(opts.Input)
	if err != nil {
		return fmt.Errorf("failed to load image %s: %w", opts.Input, err)
	}
	start := time.Now()
	out, err := grade.Grade(img, opts.Settings, grade.WithParallel(cfg.Parallel))
	if err != nil {
		return err
	}
	fmt.Printf("Render time: %s\n", time.Since(start).Round(time.Microsecond))
	grade.Logger().Debug("cli: clipping", "clipped", stdimg.ComputeHistogram(out).Clipped().String())
	if err := SaveImage(opts.Output, out, cfg.JPEGQuality); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	fmt.Printf("saved to %s\n", opts.Output)
	return nil
}

// session is the interactive terminal editor. The loaded image is never
// modified: every apply grades it afresh with the current settings.
type session struct {
	cfg      Config
	in       *bufio.Reader
	out      io.Writer
	settings grade.Settings

	path     string
	format   string
	original image.Image
	graded   *image.NRGBA
	showOrig bool

	selectParam func(grade.Settings) (string, error)
	selectFile  func() (string, error)
	preview     func(image.Image, string) error
}

func newSession(cfg Config, s grade.Settings, in *bufio.Reader, out io.Writer) *session {
	return &session{
		cfg:         cfg,
		in:          in,
		out:         out,
		settings:    s,
		selectParam: SelectParamWithFzf,
		selectFile:  func() (string, error) { return SelectFileWithFzf(".") },
		preview:     PreviewImage,
	}
}

func (s *session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	return readLine(s.in)
}

func (s *session) run(path string) int {
	if path != "" {
		if err := s.open(path); err != nil {
			fmt.Fprintf(os.Stderr, "failed to read image %s: %v\n", path, err)
			return 1
		}
	}
	fmt.Fprintln(s.out, "Color Grading Editor")
	usage(s.out)

	for {
		line, err := s.prompt("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0
			}
			fmt.Fprintf(os.Stderr, "read input error: %v\n", err)
			return 1
		}
		if line == "" {
			continue
		}
		switch line[0] {
		case '/':
			s.adjust()
		case 'a':
			s.apply()
		case 'r':
			s.settings = grade.Defaults()
			fmt.Fprintln(s.out, "settings reset")
			s.apply()
		case 'c':
			s.toggleOriginal()
		case 'o':
			s.openPrompt()
		case 's':
			s.export()
		case 'p':
			s.savePreset()
		case 'l':
			s.loadPreset()
		case 'i':
			s.info()
		case 'u':
			if err := CheckForUpdates(s.prompt); err != nil {
				fmt.Fprintf(os.Stderr, "update check error: %v\n", err)
			}
		case 'h':
			usage(s.out)
		case 'q':
			fmt.Fprintln(s.out, "Exiting...")
			return 0
		}
	}
}

func (s *session) open(path string) error {
	img, format, err := LoadImage(path)
	if err != nil {
		return err
	}
	s.path, s.format, s.original = path, format, img
	s.graded = nil
	s.showOrig = false
	fmt.Fprintf(s.out, "Opened %s\n", path)
	if info, err := GetImageInfoImage(img, format); err == nil {
		fmt.Fprintln(s.out, info)
	}
	s.show(img)
	return nil
}

func (s *session) show(img image.Image) {
	if !s.cfg.Preview || img == nil {
		return
	}
	if err := s.preview(img, s.format); err != nil {
		debugf("preview: %v", err)
	}
}

func (s *session) adjust() {
	name, err := s.selectParam(s.settings)
	var p grade.ParamSpec
	if err == nil && name != "" {
		p, err = ResolveParam(name)
	} else {
		fmt.Fprintln(s.out, "Parameter selection (fallback):")
		for i, q := range grade.Params {
			fmt.Fprintf(s.out, "  %d) %s = %s\n", i+1, q.Name, q.Format(q.Value(s.settings)))
		}
		var sel string
		sel, err = s.prompt("Enter number or name (leave empty to cancel): ")
		if err != nil || sel == "" {
			fmt.Fprintln(s.out, "selection cancelled")
			return
		}
		p, err = ResolveParam(sel)
	}
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	fmt.Fprintln(s.out, "\n"+ParamTooltip(p, s.settings)+"\n")
	raw, err := s.prompt(ParamPrompt(p))
	if err != nil || raw == "" {
		fmt.Fprintln(s.out, "unchanged")
		return
	}
	v, err := p.Parse(raw)
	if err != nil {
		fmt.Fprintf(s.out, "invalid value: %v\n", err)
		return
	}
	s.settings = p.With(s.settings, v)
	fmt.Fprintf(s.out, "%s = %s (press 'a' to apply)\n", p.Name, p.Format(v))
}

func (s *session) apply() {
	if s.original == nil {
		fmt.Fprintln(s.out, "No image loaded. Press 'o' to open an image first.")
		return
	}
	start := time.Now()
	out, err := grade.Grade(s.original, s.settings, grade.WithParallel(s.cfg.Parallel))
	if err != nil {
		fmt.Fprintf(s.out, "apply error: %v\n", err)
		return
	}
	s.graded = out
	s.showOrig = false
	fmt.Fprintf(s.out, "Render time: %s\n", time.Since(start).Round(time.Microsecond))
	s.show(out)
}

// current is the image export and info work on.
func (s *session) current() image.Image {
	if s.graded != nil {
		return s.graded
	}
	return s.original
}

func (s *session) toggleOriginal() {
	if s.original == nil {
		fmt.Fprintln(s.out, "No image loaded.")
		return
	}
	s.showOrig = !s.showOrig
	if s.showOrig {
		fmt.Fprintln(s.out, "showing original")
		s.show(s.original)
		return
	}
	fmt.Fprintln(s.out, "showing graded")
	s.show(s.current())
}

func (s *session) openPrompt() {
	path, err := s.selectFile()
	if err != nil || path == "" {
		path, _ = s.prompt("Enter path to image to open (leave empty to cancel): ")
		if path == "" {
			fmt.Fprintln(s.out, "open cancelled")
			return
		}
	}
	if err := s.open(path); err != nil {
		fmt.Fprintf(s.out, "failed to read image %s: %v\n", path, err)
	}
}

func (s *session) export() {
	if s.original == nil {
		fmt.Fprintln(s.out, "No image loaded.")
		return
	}
	if s.graded == nil && !s.settings.IsNeutral() {
		// export what the settings describe, not a stale render
		s.apply()
	}
	path, _ := s.prompt("Enter output filename: ")
	if path == "" {
		fmt.Fprintln(s.out, "no filename provided")
		return
	}
	if err := SaveImage(path, s.current(), s.cfg.JPEGQuality); err != nil {
		fmt.Fprintf(s.out, "failed to write image: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "saved to %s\n", path)
}

func (s *session) savePreset() {
	path, _ := s.prompt("Preset file to write: ")
	if path == "" {
		fmt.Fprintln(s.out, "cancelled")
		return
	}
	if err := SavePreset(path, s.settings); err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	fmt.Fprintf(s.out, "preset saved to %s\n", path)
}

func (s *session) loadPreset() {
	path, _ := s.prompt("Preset file to load: ")
	if path == "" {
		fmt.Fprintln(s.out, "cancelled")
		return
	}
	st, err := LoadPreset(path)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	s.settings = st
	fmt.Fprintf(s.out, "preset loaded: %s\n", FormatSettings(st))
}

func (s *session) info() {
	fmt.Fprintf(s.out, "Settings: %s\n", FormatSettings(s.settings))
	cur := s.current()
	if cur == nil {
		fmt.Fprintln(s.out, "No image loaded.")
		return
	}
	if info, err := GetImageInfoImage(cur, s.format); err == nil {
		fmt.Fprintln(s.out, info)
	}
	h := stdimg.ComputeHistogram(stdimg.ToNRGBA(cur))
	r, g, b := h.Mean()
	fmt.Fprintf(s.out, "Mean: R %.1f, G %.1f, B %.1f\n", r, g, b)
	fmt.Fprintf(s.out, "Clipped: %s\n", h.Clipped())
}
