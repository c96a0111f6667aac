package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vijaymanbajracharya/stratcol/pkg/pipeline"
)

// watchDebounce collapses the burst of events an editor emits on save.
const watchDebounce = 150 * time.Millisecond

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file (single input) or directory (several inputs)
	formats string // comma-separated output formats
	title   string // heading drawn above the column
	scale   float64
	jobs    int  // columns rendered in parallel
	watch   bool // re-render when an input changes
	layout  layoutFlags
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{jobs: runtime.NumCPU()}

	cmd := &cobra.Command{
		Use:   "render [column.json...]",
		Short: "Render column files to SVG, PNG, PDF or JSON",
		Long: `Render one or more column files.

Each input is written next to itself as <input>.<format> unless -o is given.
With a single input -o names the output file (or base path for several
formats); with several inputs it names an output directory.

PNG and PDF output require rsvg-convert on the PATH.

With --watch the command keeps running and re-renders a column whenever its
file changes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := opts.layout.options(cmd, pipeline.FromConfig(c.Config))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") || len(popts.Formats) == 0 {
				popts.Formats = parseFormats(opts.formats)
			}
			if opts.title != "" {
				popts.Title = opts.title
			}
			if cmd.Flags().Changed("scale") {
				popts.Scale = opts.scale
			}
			if err := popts.Validate(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args, popts, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single input) or directory (several inputs)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&opts.title, "title", "", "title drawn above the column")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "columns rendered in parallel")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when an input changes")
	opts.layout.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, inputs []string, popts pipeline.Options, opts *renderOpts) error {
	runner, err := c.newRunner(ctx, opts.layout.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if len(inputs) > 1 && opts.output != "" {
		if err := os.MkdirAll(opts.output, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	prog := newProgress(c.Logger)
	if err := c.renderAll(ctx, runner, inputs, popts, opts, len(inputs) > 1); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d column(s)", len(inputs)))

	if !opts.watch {
		return nil
	}
	return c.watch(ctx, runner, inputs, popts, opts)
}

// renderAll renders every input, at most opts.jobs at a time. The first
// failure cancels the remaining columns. multi selects directory naming
// for -o.
func (c *CLI) renderAll(ctx context.Context, runner *pipeline.Runner, inputs []string, popts pipeline.Options, opts *renderOpts, multi bool) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.jobs))

	var mu sync.Mutex // serializes terminal output
	for _, input := range inputs {
		g.Go(func() error {
			paths, res, err := c.renderOne(gctx, runner, input, popts, outputBase(opts.output, input, multi))
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			mu.Lock()
			defer mu.Unlock()
			printSuccess("Rendered %s", input)
			for _, p := range paths {
				printFile(p)
			}
			printStats(res.Stats.Layers, res.Stats.Blocks, res.Stats.Unconformities, res.CacheInfo.RenderHit)
			return nil
		})
	}
	return g.Wait()
}

// renderOne runs the pipeline for one input and writes base.<format> for
// every requested format.
func (c *CLI) renderOne(ctx context.Context, runner *pipeline.Runner, input string, popts pipeline.Options, base string) ([]string, *pipeline.Result, error) {
	res, err := runner.ExecuteFile(ctx, input, popts)
	if err != nil {
		return nil, nil, err
	}
	paths := make([]string, 0, len(popts.Formats))
	for _, format := range popts.Formats {
		path := base + "." + format
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return nil, nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, res, nil
}

// outputBase derives the output path without extension. With several
// inputs, output is a directory that receives one file set per input.
func outputBase(output, input string, multi bool) string {
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	switch {
	case output == "":
		return stem
	case multi:
		return filepath.Join(output, filepath.Base(stem))
	}
	if ext := filepath.Ext(output); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// watch re-renders an input whenever it is written. Directories are watched
// rather than files, because editors often replace a file on save.
func (c *CLI) watch(ctx context.Context, runner *pipeline.Runner, inputs []string, popts pipeline.Options, opts *renderOpts) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	watched := make(map[string]string, len(inputs)) // abs path -> input as given
	dirs := make(map[string]bool)
	for _, input := range inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			return err
		}
		watched[abs] = input
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	printInfo("Watching %d file(s), press Ctrl+C to stop", len(inputs))

	pending := make(map[string]bool)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "err", err)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if input, ok := watched[filepath.Clean(ev.Name)]; ok {
				c.Logger.Debug("change detected", "file", input, "op", ev.Op.String())
				pending[input] = true
				timer.Reset(watchDebounce)
			}
		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for input := range pending {
				changed = append(changed, input)
			}
			clear(pending)
			// A broken edit should not end the session.
			if err := c.renderAll(ctx, runner, changed, popts, opts, len(inputs) > 1); err != nil {
				printError("%v", err)
			}
		}
	}
}
