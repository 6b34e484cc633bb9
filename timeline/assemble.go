package timeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"cutxml/cuterr"
	"cutxml/cuttable"
	"cutxml/timecode"
)

const (
	// DefaultBackground is the title card background color.
	DefaultBackground = "#E96502"
	// DefaultIntroCaption is used for the intro title when no title text is set.
	DefaultIntroCaption = "Intro Title"
	// DefaultTitleDir holds rendered title card images.
	DefaultTitleDir = "title_cards"
)

// Options are the layout choices for one assembly pass.
type Options struct {
	IncludeTitleCards bool
	TitleBeforeFirst  bool
	BackgroundColor   string
	// TitleText, when set, replaces every title caption.
	TitleText string
	TitleDir  string
	// MediaDir resolves relative source identifiers. Empty means the
	// working directory.
	MediaDir         string
	TitleFrames      int
	TransitionFrames int
	Rate             int
	// DryRun leaves the filesystem untouched; pair it with a renderer that
	// writes nothing.
	DryRun bool
}

// DefaultOptions returns title cards on, no intro title.
func DefaultOptions() Options {
	return Options{
		IncludeTitleCards: true,
		BackgroundColor:   DefaultBackground,
		TitleDir:          DefaultTitleDir,
		TitleFrames:       DefaultTitleFrames,
		TransitionFrames:  DefaultTransitionFrames,
		Rate:              timecode.DefaultRate,
	}
}

// Assembler turns a parsed project into a Timeline.
type Assembler struct {
	opts     Options
	renderer TitleRenderer
	logger   *slog.Logger
}

// NewAssembler fills zero-valued sizes in opts from DefaultOptions.
func NewAssembler(opts Options, renderer TitleRenderer, logger *slog.Logger) *Assembler {
	def := DefaultOptions()
	if opts.Rate <= 0 {
		opts.Rate = def.Rate
	}
	if opts.TitleFrames <= 0 {
		opts.TitleFrames = def.TitleFrames
	}
	if opts.TransitionFrames <= 0 {
		opts.TransitionFrames = def.TransitionFrames
	}
	if opts.BackgroundColor == "" {
		opts.BackgroundColor = def.BackgroundColor
	}
	if opts.TitleDir == "" {
		opts.TitleDir = def.TitleDir
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Assembler{opts: opts, renderer: renderer, logger: logger}
}

// Options returns the effective options.
func (a *Assembler) Options() Options { return a.opts }

// Assemble walks sources and cuts in order. Each call owns a fresh allocator
// and cursor; any failure aborts the pass and no timeline is returned.
func (a *Assembler) Assemble(ctx context.Context, p *cuttable.Project) (*Timeline, error) {
	if p == nil || p.Name == "" || len(p.Sources) == 0 {
		return nil, cuterr.Formatf("could not parse the cut table")
	}

	ids := NewAllocator()
	emit := &Emitter{
		Renderer:    a.renderer,
		Rate:        a.opts.Rate,
		TitleFrames: a.opts.TitleFrames,
		TitleDir:    a.opts.TitleDir,
		Background:  a.opts.BackgroundColor,
		DryRun:      a.opts.DryRun,
	}
	tl := &Timeline{Name: p.Name, Rate: a.opts.Rate}
	cursor := 0

	if a.opts.IncludeTitleCards && a.opts.TitleBeforeFirst {
		caption := a.opts.TitleText
		if caption == "" {
			caption = DefaultIntroCaption
		}
		title, err := emit.Title(ctx, cursor, ids.NextElementID(), caption)
		if err != nil {
			return nil, err
		}
		tl.Video = append(tl.Video, title)
		cursor = title.End
		tl.Video = append(tl.Video, Dissolve(cursor, a.opts.TransitionFrames))
		a.logger.Debug("intro title placed", "caption", caption, "end", cursor)
	}

	for _, src := range p.Sources {
		fileIDs, fresh := ids.FileIDsFor(src.Name)
		path, err := a.mediaPath(src.Name)
		if err != nil {
			return nil, cuterr.AtCut(cuterr.IO, src.Name, -1, err)
		}

		n := len(src.Cuts)
		for i, cut := range src.Cuts {
			clip, audio, err := emit.Media(cursor, ids.NextElementID(), src.Name, path, fileIDs, cut)
			if err != nil {
				return nil, cuterr.AtCut(cuterr.Format, src.Name, i, err)
			}
			clip.FirstUse = fresh
			fresh = false

			tl.Video = append(tl.Video, clip)
			tl.Audio = append(tl.Audio, audio[:]...)
			cursor = clip.End
			a.logger.Debug("clip placed", "source", src.Name, "cut", i, "id", clip.ID, "start", clip.Start, "end", clip.End)

			// No title between the last cut of one source and the next source.
			if !a.opts.IncludeTitleCards || i >= n-1 {
				continue
			}

			tl.Video = append(tl.Video, Dissolve(cursor, a.opts.TransitionFrames))
			caption := cut.Label
			if a.opts.TitleText != "" {
				caption = a.opts.TitleText
			}
			title, err := emit.Title(ctx, cursor, ids.NextElementID(), caption)
			if err != nil {
				return nil, cuterr.AtCut(cuterr.Collaborator, src.Name, i, err)
			}
			tl.Video = append(tl.Video, title)
			cursor = title.End
			tl.Video = append(tl.Video, Dissolve(cursor, a.opts.TransitionFrames))
		}
	}

	tl.Duration = cursor
	media, titles, transitions := tl.Counts()
	a.logger.Info("timeline assembled",
		"project", tl.Name,
		"duration_frames", tl.Duration,
		"clips", media,
		"titles", titles,
		"transitions", transitions,
	)
	return tl, nil
}

func (a *Assembler) mediaPath(source string) (string, error) {
	path := source
	if !filepath.IsAbs(path) && a.opts.MediaDir != "" {
		path = filepath.Join(a.opts.MediaDir, path)
	}
	return filepath.Abs(path)
}
