package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/Fepozopo/grade/pkg/grade"
)

// ErrUsage marks command-line errors the flag package has already reported.
var ErrUsage = errors.New("invalid command line")

// Options is the parsed command line.
type Options struct {
	Input       string // image to open; may be empty in interactive mode
	Output      string // -o; non-empty selects headless mode
	Preset      string // -preset
	Update      bool   // -update
	ShowVersion bool   // -version
	Settings    grade.Settings
}

// ParseArgs parses the command line. The image path may come before or
// after the flags. Adjustment flags are applied on top of -preset when
// both are given.
func ParseArgs(args []string, errOut io.Writer) (Options, error) {
	var opts Options
	fs := flag.NewFlagSet("grade", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&opts.Output, "o", "", "write the graded image to `path` and exit")
	fs.StringVar(&opts.Preset, "preset", "", "load adjustments from a TOML `file`")
	fs.BoolVar(&opts.Update, "update", false, "check for a newer release and exit")
	fs.BoolVar(&opts.ShowVersion, "version", false, "print the version and exit")

	type override struct {
		p grade.ParamSpec
		v float64
	}
	var overrides []override
	for _, p := range grade.Params {
		p := p
		usage := fmt.Sprintf("%s %s (%s)", p.Name, p.Range(), p.Description)
		fs.Func(p.Flag, usage, func(raw string) error {
			v, err := p.Parse(raw)
			if err != nil {
				return err
			}
			overrides = append(overrides, override{p, v})
			return nil
		})
	}
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: grade [image] [flags]\n\n")
		fs.PrintDefaults()
	}

	rest := args
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		opts.Input = args[0]
		rest = args[1:]
	}
	if err := fs.Parse(rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Options{}, err
		}
		return Options{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	switch {
	case fs.NArg() == 1 && opts.Input == "":
		opts.Input = fs.Arg(0)
	case fs.NArg() > 0:
		return Options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	opts.Settings = grade.Defaults()
	if opts.Preset != "" {
		s, err := LoadPreset(opts.Preset)
		if err != nil {
			return Options{}, err
		}
		opts.Settings = s
	}
	for _, o := range overrides {
		opts.Settings = o.p.With(opts.Settings, o.v)
	}
	return opts, nil
}
