// Package fcp defines the struct tree for Final Cut Pro 7 interchange XML
// (xmeml version 4) and renders an assembled timeline into it.
//
// Documents are built from these structs and serialized with
// xml.MarshalIndent only, so escaping happens in one place.
package fcp

import "encoding/xml"

type XMEML struct {
	XMLName  xml.Name `xml:"xmeml"`
	Version  string   `xml:"version,attr"`
	Sequence Sequence `xml:"sequence"`
}

type Sequence struct {
	ID             string        `xml:"id,attr"`
	ExplodedTracks string        `xml:"explodedTracks,attr,omitempty"`
	UUID           string        `xml:"uuid"`
	Duration       int           `xml:"duration"`
	Rate           Rate          `xml:"rate"`
	Name           string        `xml:"name"`
	Media          SequenceMedia `xml:"media"`
	Timecode       Timecode      `xml:"timecode"`
}

// Rate is a frame rate; NTSC is the literal TRUE or FALSE.
type Rate struct {
	Timebase int    `xml:"timebase"`
	NTSC     string `xml:"ntsc"`
}

type Timecode struct {
	Rate          Rate   `xml:"rate"`
	String        string `xml:"string"`
	Frame         int    `xml:"frame"`
	DisplayFormat string `xml:"displayformat"`
}

type SequenceMedia struct {
	Video SequenceVideo `xml:"video"`
	Audio SequenceAudio `xml:"audio"`
}

type SequenceVideo struct {
	Format VideoFormat `xml:"format"`
	Track  Track       `xml:"track"`
}

type SequenceAudio struct {
	Format AudioFormat `xml:"format"`
	Track  Track       `xml:"track"`
}

type VideoFormat struct {
	SampleCharacteristics VideoSampleCharacteristics `xml:"samplecharacteristics"`
}

type AudioFormat struct {
	SampleCharacteristics AudioSampleCharacteristics `xml:"samplecharacteristics"`
}

type VideoSampleCharacteristics struct {
	Rate             Rate   `xml:"rate"`
	Codec            *Codec `xml:"codec,omitempty"`
	Width            int    `xml:"width"`
	Height           int    `xml:"height"`
	Anamorphic       string `xml:"anamorphic"`
	PixelAspectRatio string `xml:"pixelaspectratio"`
	FieldDominance   string `xml:"fielddominance"`
	ColorDepth       int    `xml:"colordepth,omitempty"`
}

type AudioSampleCharacteristics struct {
	Depth      int `xml:"depth"`
	SampleRate int `xml:"samplerate"`
}

type Codec struct {
	Name            string          `xml:"name"`
	AppSpecificData AppSpecificData `xml:"appspecificdata"`
}

type AppSpecificData struct {
	AppName         string    `xml:"appname"`
	AppManufacturer string    `xml:"appmanufacturer"`
	AppVersion      string    `xml:"appversion"`
	Data            CodecData `xml:"data"`
}

type CodecData struct {
	QTCodec QTCodec `xml:"qtcodec"`
}

type QTCodec struct {
	CodecName       string `xml:"codecname"`
	CodecTypeName   string `xml:"codectypename"`
	CodecTypeCode   string `xml:"codectypecode"`
	CodecVendorCode string `xml:"codecvendorcode"`
	SpatialQuality  int    `xml:"spatialquality"`
	TemporalQuality int    `xml:"temporalquality"`
	KeyframeRate    int    `xml:"keyframerate"`
	DataRate        int    `xml:"datarate"`
}

// TrackItem is a clipitem or transitionitem.
type TrackItem interface {
	trackItem()
}

// Track holds items in emission order. Clips and transitions interleave, so
// the track marshals its items itself instead of grouping them by type.
type Track struct {
	Items   []TrackItem
	Enabled string
	Locked  string
}

// MarshalXML writes items in slice order followed by enabled and locked.
func (t Track) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, item := range t.Items {
		if err := e.Encode(item); err != nil {
			return err
		}
	}
	if err := e.EncodeElement(t.Enabled, xml.StartElement{Name: xml.Name{Local: "enabled"}}); err != nil {
		return err
	}
	if err := e.EncodeElement(t.Locked, xml.StartElement{Name: xml.Name{Local: "locked"}}); err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// UnmarshalXML keeps items in document order so rendered tracks can be read
// back for inspection.
func (t *Track) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			switch tt.Name.Local {
			case "clipitem":
				var c ClipItem
				if err := d.DecodeElement(&c, &tt); err != nil {
					return err
				}
				t.Items = append(t.Items, c)
			case "transitionitem":
				var ti TransitionItem
				if err := d.DecodeElement(&ti, &tt); err != nil {
					return err
				}
				t.Items = append(t.Items, ti)
			case "enabled":
				if err := d.DecodeElement(&t.Enabled, &tt); err != nil {
					return err
				}
			case "locked":
				if err := d.DecodeElement(&t.Locked, &tt); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

type ClipItem struct {
	XMLName          xml.Name     `xml:"clipitem"`
	ID               string       `xml:"id,attr"`
	MasterClipID     string       `xml:"masterclipid"`
	Name             string       `xml:"name"`
	Enabled          string       `xml:"enabled"`
	Duration         int          `xml:"duration"`
	Rate             Rate         `xml:"rate"`
	Start            int          `xml:"start"`
	End              int          `xml:"end"`
	In               int          `xml:"in"`
	Out              int          `xml:"out"`
	AlphaType        string       `xml:"alphatype,omitempty"`
	PixelAspectRatio string       `xml:"pixelaspectratio,omitempty"`
	Anamorphic       string       `xml:"anamorphic,omitempty"`
	File             *File        `xml:"file,omitempty"`
	SourceTrack      *SourceTrack `xml:"sourcetrack,omitempty"`
	ChannelCount     int          `xml:"channelcount,omitempty"`
}

// File is a full media definition, or a bare reference when only ID is set.
type File struct {
	ID       string     `xml:"id,attr"`
	Name     string     `xml:"name,omitempty"`
	PathURL  string     `xml:"pathurl,omitempty"`
	Rate     *Rate      `xml:"rate,omitempty"`
	Duration int        `xml:"duration,omitempty"`
	Timecode *Timecode  `xml:"timecode,omitempty"`
	Media    *FileMedia `xml:"media,omitempty"`
}

type FileMedia struct {
	Video *FileVideo `xml:"video,omitempty"`
	Audio *FileAudio `xml:"audio,omitempty"`
}

type FileVideo struct {
	SampleCharacteristics VideoSampleCharacteristics `xml:"samplecharacteristics"`
}

type FileAudio struct {
	SampleCharacteristics AudioSampleCharacteristics `xml:"samplecharacteristics"`
	ChannelCount          int                        `xml:"channelcount"`
}

type SourceTrack struct {
	MediaType  string `xml:"mediatype"`
	TrackIndex int    `xml:"trackindex"`
}

type TransitionItem struct {
	XMLName       xml.Name `xml:"transitionitem"`
	Start         int      `xml:"start"`
	End           int      `xml:"end"`
	Alignment     string   `xml:"alignment"`
	CutPointTicks int64    `xml:"cutPointTicks"`
	Rate          Rate     `xml:"rate"`
	Effect        Effect   `xml:"effect"`
}

type Effect struct {
	Name           string `xml:"name"`
	EffectID       string `xml:"effectid"`
	EffectCategory string `xml:"effectcategory"`
	EffectType     string `xml:"effecttype"`
	MediaType      string `xml:"mediatype"`
	WipeCode       int    `xml:"wipecode"`
	WipeAccuracy   int    `xml:"wipeaccuracy"`
	StartRatio     int    `xml:"startratio"`
	EndRatio       int    `xml:"endratio"`
	Reverse        string `xml:"reverse"`
}

func (ClipItem) trackItem()       {}
func (TransitionItem) trackItem() {}
