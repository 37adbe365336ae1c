package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ironsheep/pixelsort-mcp/internal/config"
	"github.com/ironsheep/pixelsort-mcp/internal/imaging"
	"github.com/ironsheep/pixelsort-mcp/internal/pixelsort"
)

// paramFlags holds the sort parameter flags. Flags the user did not set keep
// the preset's value, or the default when no preset is given.
type paramFlags struct {
	preset       string
	direction    string
	sortKey      string
	intervalMode string
	values       pixelsort.Parameters
}

func (f *paramFlags) register(fs *pflag.FlagSet) {
	d := pixelsort.DefaultParameters()
	fs.StringVarP(&f.preset, "preset", "p", "", "TOML preset to start from")
	fs.StringVarP(&f.direction, "direction", "d", d.Direction.String(), "horizontal or vertical")
	fs.StringVarP(&f.sortKey, "key", "k", d.SortKey.String(), "sort key: brightness, hue, saturation, intensity, minimum, red, green, blue")
	fs.StringVarP(&f.intervalMode, "mode", "m", d.IntervalMode.String(), "interval mode: threshold, random, edges, waves, none")
	fs.IntVar(&f.values.LowerThreshold, "lower", d.LowerThreshold, "threshold mode lower bound (0-255)")
	fs.IntVar(&f.values.UpperThreshold, "upper", d.UpperThreshold, "threshold mode upper bound (0-255)")
	fs.BoolVarP(&f.values.Reverse, "reverse", "r", d.Reverse, "sort spans in descending order")
	fs.IntVar(&f.values.Jitter, "jitter", d.Jitter, "maximum displacement after sorting (0-100)")
	fs.IntVar(&f.values.SpanMin, "span-min", d.SpanMin, "drop spans shorter than this")
	fs.IntVar(&f.values.SpanMax, "span-max", d.SpanMax, "split spans longer than this (0 = unlimited)")
	fs.IntVarP(&f.values.Angle, "angle", "a", d.Angle, "sort axis angle in degrees (horizontal only)")
	fs.IntVar(&f.values.Falloff, "falloff", d.Falloff, "percent chance a span is left unsorted")
}

// resolve layers the flags the user set over the preset (or defaults) and
// clamps. Unlike MCP arguments, misspelled enum names are rejected.
func (f *paramFlags) resolve(fs *pflag.FlagSet) (pixelsort.Parameters, error) {
	p := pixelsort.DefaultParameters()
	if f.preset != "" {
		preset, err := config.LoadPreset(f.preset)
		if err != nil {
			return pixelsort.Parameters{}, err
		}
		p = preset
	}

	if fs.Changed("direction") {
		if err := checkEnum("direction", f.direction, pixelsort.ParseDirection(f.direction).String()); err != nil {
			return pixelsort.Parameters{}, err
		}
		p.Direction = pixelsort.ParseDirection(f.direction)
	}
	if fs.Changed("key") {
		if err := checkEnum("key", f.sortKey, pixelsort.ParseSortKey(f.sortKey).String()); err != nil {
			return pixelsort.Parameters{}, err
		}
		p.SortKey = pixelsort.ParseSortKey(f.sortKey)
	}
	if fs.Changed("mode") {
		if err := checkEnum("mode", f.intervalMode, pixelsort.ParseIntervalMode(f.intervalMode).String()); err != nil {
			return pixelsort.Parameters{}, err
		}
		p.IntervalMode = pixelsort.ParseIntervalMode(f.intervalMode)
	}

	ints := []struct {
		name string
		dst  *int
		src  int
	}{
		{"lower", &p.LowerThreshold, f.values.LowerThreshold},
		{"upper", &p.UpperThreshold, f.values.UpperThreshold},
		{"jitter", &p.Jitter, f.values.Jitter},
		{"span-min", &p.SpanMin, f.values.SpanMin},
		{"span-max", &p.SpanMax, f.values.SpanMax},
		{"angle", &p.Angle, f.values.Angle},
		{"falloff", &p.Falloff, f.values.Falloff},
	}
	for _, v := range ints {
		if fs.Changed(v.name) {
			*v.dst = v.src
		}
	}
	if fs.Changed("reverse") {
		p.Reverse = f.values.Reverse
	}

	return p.Clamp(), nil
}

// checkEnum reports an error when parsing value fell back to a default
// because the name is unknown.
func checkEnum(flag, value, parsed string) error {
	if strings.ToLower(strings.TrimSpace(value)) != parsed {
		return fmt.Errorf("invalid --%s: %q", flag, value)
	}
	return nil
}

// selectionFlags holds the flags that restrict sorting to part of the image.
type selectionFlags struct {
	mask        string
	invertMask  bool
	region      string
	namedRegion string
	feather     int
}

func (f *selectionFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.mask, "mask", "", "grayscale mask image; white is sorted, black untouched")
	fs.BoolVar(&f.invertMask, "invert-mask", false, "sort where the mask is dark")
	fs.StringVar(&f.region, "region", "", "sort only inside x1,y1,x2,y2")
	fs.StringVar(&f.namedRegion, "named-region", "", "sort only inside a named region, e.g. center or top-half")
	fs.IntVar(&f.feather, "feather", 0, "soft edge width in pixels for regions")
}

func (f *selectionFlags) options() (imaging.SelectionOptions, error) {
	opts := imaging.SelectionOptions{
		MaskPath:    f.mask,
		InvertMask:  f.invertMask,
		NamedRegion: f.namedRegion,
		Feather:     f.feather,
	}
	if f.region != "" {
		r, err := parseRegion(f.region)
		if err != nil {
			return opts, err
		}
		opts.Region = &r
	}
	return opts, nil
}

// parseRegion parses "x1,y1,x2,y2".
func parseRegion(s string) (imaging.Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return imaging.Region{}, fmt.Errorf("invalid --region %q: want x1,y1,x2,y2", s)
	}
	var v [4]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return imaging.Region{}, fmt.Errorf("invalid --region %q: %w", s, err)
		}
		v[i] = n
	}
	return imaging.Region{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}, nil
}

func (c *CLI) sortCommand() *cobra.Command {
	var params paramFlags
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "sort <input> <output>",
		Short: "Pixel-sort an image file",
		Long:  "Sort an image and write the result. The output format follows the output\nextension: .png, .jpg/.jpeg or .bmp. Results are deterministic.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := params.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			opts, err := sel.options()
			if err != nil {
				return err
			}
			return c.runSort(args[0], args[1], p, opts)
		},
	}

	params.register(cmd.Flags())
	sel.register(cmd.Flags())
	return cmd
}

func (c *CLI) runSort(input, output string, params pixelsort.Parameters, opts imaging.SelectionOptions) error {
	cache := imaging.NewImageCache()
	img, err := cache.Load(input)
	if err != nil {
		return err
	}
	mask, selection, err := opts.Mask(cache, img.Bounds())
	if err != nil {
		return err
	}

	start := time.Now()
	engine := pixelsort.NewEngine(c.Logger.WithPrefix("engine"))
	out := engine.Run(img, mask, params)
	if err := imaging.SaveImage(output, out); err != nil {
		return err
	}
	c.Logger.Info("sorted", "input", input, "output", output, "selection", selection,
		"params", params.String(), "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func (c *CLI) spansCommand() *cobra.Command {
	var params paramFlags
	var sel selectionFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "spans <input> <index>",
		Short: "Print the spans one row or column is split into",
		Long:  "Print the spans line <index> is split into. For vertical sorts the index is a\ncolumn. For angled sorts it is a row of the rotated frame.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}
			p, err := params.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			opts, err := sel.options()
			if err != nil {
				return err
			}

			cache := imaging.NewImageCache()
			img, err := cache.Load(args[0])
			if err != nil {
				return err
			}
			mask, _, err := opts.Mask(cache, img.Bounds())
			if err != nil {
				return err
			}
			report, ok := pixelsort.NewEngine(c.Logger.WithPrefix("engine")).InspectLine(img, mask, p, index)
			if !ok {
				return fmt.Errorf("line %d does not exist for %s sorting of %s", index, p.Direction, args[0])
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			fmt.Fprintf(w, "line %d: %d pixels, %d spans, %d covered\n", report.Index, report.Length, len(report.Spans), report.Covered)
			for _, s := range report.Spans {
				fmt.Fprintf(w, "%d\t%d\t%d\n", s.Start, s.End, s.Len())
			}
			return nil
		},
	}

	params.register(cmd.Flags())
	sel.register(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func (c *CLI) presetCommand() *cobra.Command {
	var params paramFlags

	cmd := &cobra.Command{
		Use:   "preset [output]",
		Short: "Write sort parameters to a TOML preset",
		Long:  "Write the resolved sort parameters as a TOML preset. With no output path the preset is printed.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := params.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := config.EncodePreset(&buf, p); err != nil {
				return err
			}
			if len(args) == 0 {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(args[0], buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write preset: %w", err)
			}
			c.Logger.Info("wrote preset", "path", args[0])
			return nil
		},
	}

	params.register(cmd.Flags())
	return cmd
}
