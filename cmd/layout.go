package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"cutxml/config"
	"cutxml/cuttable"
	"cutxml/timeline"
	"cutxml/titlecard"
)

// layoutFlags override [title_cards] and [media] settings for one run.
type layoutFlags struct {
	titleCards       bool
	titleBeforeFirst bool
	color            string
	titleText        string
	titleDir         string
	mediaDir         string
	titleFrames      int
	transitionFrames int
	renderer         string
	strict           bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVar(&f.titleCards, "title-cards", true, "Insert title cards between cuts of the same source")
	flags.BoolVar(&f.titleBeforeFirst, "title-before-first", false, "Open the sequence with an intro title card")
	flags.StringVar(&f.color, "color", "", "Title card background color (#RRGGBB)")
	flags.StringVar(&f.titleText, "title-text", "", "Caption for every title card (defaults to the cut label)")
	flags.StringVar(&f.titleDir, "title-dir", "", "Directory for rendered title card images")
	flags.StringVar(&f.mediaDir, "media-dir", "", "Directory used to resolve relative source files")
	flags.IntVar(&f.titleFrames, "title-frames", 0, "Title card duration in frames")
	flags.IntVar(&f.transitionFrames, "transition-frames", 0, "Cross dissolve duration in frames")
	flags.StringVar(&f.renderer, "renderer", "", "Title card renderer: raster or browser")
	flags.BoolVar(&f.strict, "strict", false, "Reject repeated FILENAME and SOURCE directives")
}

// apply copies explicitly set flags over cfg and revalidates it.
func (f *layoutFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	tc := &cfg.TitleCards
	if flags.Changed("title-cards") {
		tc.Enabled = f.titleCards
	}
	if flags.Changed("title-before-first") {
		tc.BeforeFirst = f.titleBeforeFirst
	}
	if flags.Changed("color") {
		tc.BackgroundColor = f.color
	}
	if flags.Changed("title-text") {
		tc.Text = f.titleText
	}
	if flags.Changed("title-dir") {
		tc.Directory = f.titleDir
	}
	if flags.Changed("media-dir") {
		cfg.Media.Directory = f.mediaDir
	}
	if flags.Changed("title-frames") {
		tc.DurationFrames = f.titleFrames
	}
	if flags.Changed("transition-frames") {
		tc.TransitionFrames = f.transitionFrames
	}
	if flags.Changed("renderer") {
		tc.Renderer = f.renderer
	}
	return cfg.Validate()
}

// readProject parses the cut table at path, or stdin when path is "-".
func readProject(path string, stdin io.Reader, strict bool, logger *slog.Logger) (*cuttable.Project, error) {
	opts := cuttable.Options{Strict: strict}
	var (
		project *cuttable.Project
		err     error
	)
	if path == "-" {
		project, err = cuttable.ParseReader(stdin, opts)
	} else {
		project, err = cuttable.ParseFile(path, opts)
	}
	if err != nil {
		return nil, err
	}
	for _, w := range project.Warnings {
		logger.Warn("cut table warning", "input", path, "warning", w)
	}
	return project, nil
}

// newRenderer returns the configured title renderer and a cleanup func.
func newRenderer(cfg *config.Config, logger *slog.Logger) (titlecard.Renderer, func(), error) {
	raster := &titlecard.RasterRenderer{Logger: logger}
	if len(cfg.TitleCards.FontPaths) > 0 {
		raster.FontPaths = cfg.TitleCards.FontPaths
	}
	switch cfg.TitleCards.Renderer {
	case config.RendererRaster:
		return raster, func() {}, nil
	case config.RendererBrowser:
		r := &titlecard.BrowserRenderer{Fallback: raster, Logger: logger}
		return r, r.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown title card renderer %q", cfg.TitleCards.Renderer)
	}
}

func assembleProject(cmd *cobra.Command, ctx *commandContext, project *cuttable.Project, renderer timeline.TitleRenderer, dryRun bool) (*timeline.Timeline, error) {
	opts := ctx.config.Options()
	opts.DryRun = dryRun
	assembler := timeline.NewAssembler(opts, renderer, ctx.logger)
	return assembler.Assemble(cmd.Context(), project)
}
