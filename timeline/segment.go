package timeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cutxml/cuterr"
	"cutxml/cuttable"
	"cutxml/timecode"
)

// DefaultTitleFrames is seven seconds at 30fps.
const DefaultTitleFrames = 210

// TitleRenderer draws a title card image and returns the path to embed.
type TitleRenderer interface {
	RenderTitle(ctx context.Context, caption, background, dest string) (string, error)
}

// Emitter builds clip and title segments at a given cursor.
type Emitter struct {
	Renderer    TitleRenderer
	Rate        int
	TitleFrames int
	TitleDir    string
	Background  string
	// DryRun skips creating TitleDir.
	DryRun bool

	dirReady bool
}

// Media places cut at cursor and returns the video clip and its two audio
// channels.
func (e *Emitter) Media(cursor, id int, source, path string, ids FileIDs, cut cuttable.Cut) (MediaClip, [2]AudioClip, error) {
	var audio [2]AudioClip

	in, err := timecode.ToFrames(cut.Start, e.Rate)
	if err != nil {
		return MediaClip{}, audio, atLine(cut.Line, err)
	}
	out, err := timecode.ToFrames(cut.End, e.Rate)
	if err != nil {
		return MediaClip{}, audio, atLine(cut.Line, err)
	}
	if out <= in {
		return MediaClip{}, audio, cuterr.AtLine(cut.Line, "degenerate cut range %s-%s (out %d <= in %d)", cut.Start, cut.End, out, in)
	}

	duration := out - in
	clip := MediaClip{
		ID:           id,
		Source:       source,
		Path:         path,
		FileID:       ids.FileID,
		MasterclipID: ids.MasterclipID,
		Start:        cursor,
		End:          cursor + duration,
		In:           in,
		Out:          out,
	}
	for i := range audio {
		audio[i] = AudioClip{
			ClipID:       id,
			Track:        i + 1,
			Source:       source,
			FileID:       ids.FileID,
			MasterclipID: ids.MasterclipID,
			Start:        clip.Start,
			End:          clip.End,
			In:           in,
			Out:          out,
		}
	}
	return clip, audio, nil
}

// Title renders caption and places the resulting image at cursor.
func (e *Emitter) Title(ctx context.Context, cursor, id int, caption string) (TitleClip, error) {
	if e.Renderer == nil {
		return TitleClip{}, cuterr.Wrap(cuterr.Collaborator, "no title renderer configured", nil)
	}
	if err := e.ensureDir(); err != nil {
		return TitleClip{}, err
	}

	dest := filepath.Join(e.TitleDir, fmt.Sprintf("title_card_%d.png", id))
	path, err := e.Renderer.RenderTitle(ctx, caption, e.Background, dest)
	if err != nil {
		var ce *cuterr.Error
		if errors.As(err, &ce) {
			return TitleClip{}, err
		}
		return TitleClip{}, cuterr.Wrap(cuterr.Collaborator, fmt.Sprintf("render title card %q", caption), err)
	}

	return TitleClip{
		ID:        id,
		Caption:   caption,
		ImagePath: path,
		Start:     cursor,
		End:       cursor + e.TitleFrames,
		In:        0,
		Out:       e.TitleFrames,
	}, nil
}

func (e *Emitter) ensureDir() error {
	if e.dirReady || e.DryRun {
		return nil
	}
	if err := os.MkdirAll(e.TitleDir, 0755); err != nil {
		return cuterr.Wrap(cuterr.IO, "create title card directory", err)
	}
	e.dirReady = true
	return nil
}

func atLine(line int, err error) error {
	var ce *cuterr.Error
	if errors.As(err, &ce) {
		out := *ce
		out.Line = line
		return &out
	}
	return err
}
