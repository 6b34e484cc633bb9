// Package timeline lays out parsed cuts on a single video track and a stereo
// audio pair, inserting title cards and dissolves between cuts.
package timeline

// Element is anything placed on the video track.
type Element interface {
	// Span returns the absolute start and end frames on the timeline.
	Span() (start, end int)
	isElement()
}

// MediaClip is a trimmed range of a source file.
type MediaClip struct {
	ID           int
	Source       string
	Path         string
	FileID       int
	MasterclipID int
	// FirstUse marks the first clip referencing FileID; the document defines
	// the file there and references it everywhere else.
	FirstUse bool
	Start    int
	End      int
	In       int
	Out      int
}

// TitleClip is a generated still image shown for a fixed duration.
type TitleClip struct {
	ID        int
	Caption   string
	ImagePath string
	Start     int
	End       int
	In        int
	Out       int
}

// Transition is a dissolve centered on Boundary.
type Transition struct {
	Boundary int
	Start    int
	End      int
}

func (c MediaClip) Span() (int, int)  { return c.Start, c.End }
func (c TitleClip) Span() (int, int)  { return c.Start, c.End }
func (t Transition) Span() (int, int) { return t.Start, t.End }

func (MediaClip) isElement()  {}
func (TitleClip) isElement()  {}
func (Transition) isElement() {}

// AudioClip mirrors one channel of a MediaClip on the audio track.
type AudioClip struct {
	ClipID       int
	Track        int
	Source       string
	FileID       int
	MasterclipID int
	Start        int
	End          int
	In           int
	Out          int
}

// Timeline is the result of one assembly pass.
type Timeline struct {
	Name     string
	Rate     int
	Duration int
	Video    []Element
	Audio    []AudioClip
}

// Counts tallies the video elements by kind.
func (t *Timeline) Counts() (media, titles, transitions int) {
	for _, e := range t.Video {
		switch e.(type) {
		case MediaClip:
			media++
		case TitleClip:
			titles++
		case Transition:
			transitions++
		}
	}
	return media, titles, transitions
}
