package fcp

import (
	"net/url"
	"path/filepath"

	"cutxml/timecode"
	"cutxml/timeline"
)

// Fixed output format.
const (
	FrameWidth  = 1920
	FrameHeight = 1080
	AudioDepth  = 16
	AudioRate   = 44100
	// MediaDurationPlaceholder stands in for the real length of source media;
	// clips are trimmed by in and out points.
	MediaDurationPlaceholder = 130554
	// TicksPerSecond is Premiere's time base for cutPointTicks.
	TicksPerSecond = 254016000000
)

// Meta carries values that are not part of the assembled timeline.
type Meta struct {
	SequenceUUID string
}

// Build maps an assembled timeline onto the xmeml tree. Every number it writes
// was computed during assembly.
func Build(tl *timeline.Timeline, meta Meta) XMEML {
	rate := Rate{Timebase: tl.Rate, NTSC: "FALSE"}

	video := Track{Enabled: "TRUE", Locked: "FALSE"}
	for _, el := range tl.Video {
		switch v := el.(type) {
		case timeline.MediaClip:
			video.Items = append(video.Items, mediaClipItem(v, rate))
		case timeline.TitleClip:
			video.Items = append(video.Items, titleClipItem(v, rate))
		case timeline.Transition:
			video.Items = append(video.Items, dissolveItem(v, rate))
		}
	}

	audio := Track{Enabled: "TRUE", Locked: "FALSE"}
	for _, a := range tl.Audio {
		audio.Items = append(audio.Items, audioClipItem(a, rate))
	}

	seqFormat := videoCharacteristics(rate)
	seqFormat.Codec = proResCodec()
	seqFormat.ColorDepth = 24

	return XMEML{
		Version: "4",
		Sequence: Sequence{
			ID:             "sequence-1",
			ExplodedTracks: "true",
			UUID:           meta.SequenceUUID,
			Duration:       tl.Duration,
			Rate:           rate,
			Name:           tl.Name,
			Media: SequenceMedia{
				Video: SequenceVideo{
					Format: VideoFormat{SampleCharacteristics: seqFormat},
					Track:  video,
				},
				Audio: SequenceAudio{
					Format: AudioFormat{SampleCharacteristics: audioCharacteristics()},
					Track:  audio,
				},
			},
			Timecode: zeroTimecode(rate),
		},
	}
}

func mediaClipItem(c timeline.MediaClip, rate Rate) ClipItem {
	item := ClipItem{
		ID:               clipItemID(c.ID),
		MasterClipID:     masterClipID(c.MasterclipID),
		Name:             c.Source,
		Enabled:          "TRUE",
		Duration:         MediaDurationPlaceholder,
		Rate:             rate,
		Start:            c.Start,
		End:              c.End,
		In:               c.In,
		Out:              c.Out,
		AlphaType:        "none",
		PixelAspectRatio: "square",
		Anamorphic:       "FALSE",
		File:             &File{ID: fileID(c.FileID)},
	}
	if c.FirstUse {
		tc := zeroTimecode(rate)
		r := rate
		item.File = &File{
			ID:       fileID(c.FileID),
			Name:     c.Source,
			PathURL:  pathURL(c.Path),
			Rate:     &r,
			Duration: MediaDurationPlaceholder,
			Timecode: &tc,
			Media: &FileMedia{
				Video: &FileVideo{SampleCharacteristics: videoCharacteristics(rate)},
				Audio: &FileAudio{SampleCharacteristics: audioCharacteristics(), ChannelCount: 2},
			},
		}
	}
	return item
}

func titleClipItem(c timeline.TitleClip, rate Rate) ClipItem {
	name := filepath.Base(c.ImagePath)
	duration := c.Out - c.In
	tc := zeroTimecode(rate)
	r := rate
	return ClipItem{
		ID:               clipItemID(c.ID),
		MasterClipID:     titleMasterClipID(c.ID),
		Name:             name,
		Enabled:          "TRUE",
		Duration:         duration,
		Rate:             rate,
		Start:            c.Start,
		End:              c.End,
		In:               c.In,
		Out:              c.Out,
		AlphaType:        "none",
		PixelAspectRatio: "square",
		Anamorphic:       "FALSE",
		File: &File{
			ID:       titleFileID(c.ID),
			Name:     name,
			PathURL:  pathURL(c.ImagePath),
			Rate:     &r,
			Duration: duration,
			Timecode: &tc,
			Media: &FileMedia{
				Video: &FileVideo{SampleCharacteristics: videoCharacteristics(rate)},
			},
		},
	}
}

func audioClipItem(a timeline.AudioClip, rate Rate) ClipItem {
	return ClipItem{
		ID:           audioClipItemID(a.ClipID, a.Track),
		MasterClipID: masterClipID(a.MasterclipID),
		Name:         a.Source,
		Enabled:      "TRUE",
		Duration:     MediaDurationPlaceholder,
		Rate:         rate,
		Start:        a.Start,
		End:          a.End,
		In:           a.In,
		Out:          a.Out,
		File:         &File{ID: fileID(a.FileID)},
		SourceTrack:  &SourceTrack{MediaType: "audio", TrackIndex: a.Track},
		ChannelCount: 2,
	}
}

func dissolveItem(t timeline.Transition, rate Rate) TransitionItem {
	return TransitionItem{
		Start:         t.Start,
		End:           t.End,
		Alignment:     "center",
		CutPointTicks: int64(t.Boundary) * TicksPerSecond / int64(rate.Timebase),
		Rate:          rate,
		Effect: Effect{
			Name:           "Cross Dissolve",
			EffectID:       "Cross Dissolve",
			EffectCategory: "Dissolve",
			EffectType:     "transition",
			MediaType:      "video",
			WipeCode:       0,
			WipeAccuracy:   100,
			StartRatio:     0,
			EndRatio:       1,
			Reverse:        "FALSE",
		},
	}
}

func videoCharacteristics(rate Rate) VideoSampleCharacteristics {
	return VideoSampleCharacteristics{
		Rate:             rate,
		Width:            FrameWidth,
		Height:           FrameHeight,
		Anamorphic:       "FALSE",
		PixelAspectRatio: "square",
		FieldDominance:   "none",
	}
}

func audioCharacteristics() AudioSampleCharacteristics {
	return AudioSampleCharacteristics{Depth: AudioDepth, SampleRate: AudioRate}
}

func proResCodec() *Codec {
	return &Codec{
		Name: "Apple ProRes 422",
		AppSpecificData: AppSpecificData{
			AppName:         "Final Cut Pro",
			AppManufacturer: "Apple Inc.",
			AppVersion:      "7.0",
			Data: CodecData{QTCodec: QTCodec{
				CodecName:       "Apple ProRes 422",
				CodecTypeName:   "Apple ProRes 422",
				CodecTypeCode:   "apcn",
				CodecVendorCode: "appl",
				SpatialQuality:  1024,
			}},
		},
	}
}

func zeroTimecode(rate Rate) Timecode {
	return Timecode{
		Rate:          rate,
		String:        timecode.FromFrames(0, rate.Timebase),
		Frame:         0,
		DisplayFormat: "NDF",
	}
}

// pathURL turns an absolute path into a file://localhost URL.
func pathURL(path string) string {
	u := url.URL{Scheme: "file", Host: "localhost", Path: filepath.ToSlash(path)}
	return u.String()
}
