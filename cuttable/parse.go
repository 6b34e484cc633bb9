// Package cuttable parses the line-oriented cut table format:
//
//	FILENAME: Project_Name
//	SOURCE: clip.mp4
//	00:00:00-00:05:30,Introduction
//
// Cut lines are START-END,LABEL with START and END in HH:MM:SS or HH:MM:SS:FF.
package cuttable

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"cutxml/cuterr"
)

const (
	filenameDirective = "FILENAME:"
	sourceDirective   = "SOURCE:"
)

// Cut is one timecode range with its label. Start and End are kept as
// written; they are converted to frames during assembly.
type Cut struct {
	Start string
	End   string
	Label string
	Line  int
}

// Source groups the cuts taken from one media file, in input order.
type Source struct {
	Name string
	Line int
	Cuts []Cut
}

// Project is the parsed cut table. Sources are ordered by first appearance.
type Project struct {
	Name     string
	Sources  []Source
	Warnings []string
}

// Options controls how repeated directives are treated.
type Options struct {
	// Strict rejects a repeated FILENAME: or SOURCE: directive instead of
	// letting the later one win.
	Strict bool
}

// Parse parses cut table text with default options.
func Parse(text string) (*Project, error) {
	return ParseReader(strings.NewReader(text), Options{})
}

// ParseFile parses the cut table stored at path.
func ParseFile(path string, opts Options) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cuterr.Wrap(cuterr.IO, "failed to open cut table", err)
	}
	defer f.Close()
	return ParseReader(f, opts)
}

// ParseReader scans r top to bottom. Lines that are neither a directive nor a
// cut under an active source are ignored.
func ParseReader(r io.Reader, opts Options) (*Project, error) {
	p := &Project{}
	index := make(map[string]int)
	current := -1
	nameLine := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, filenameDirective):
			name := clean(strings.TrimPrefix(line, filenameDirective))
			if nameLine > 0 {
				if opts.Strict {
					return nil, cuterr.AtLine(lineNo, "repeated %s directive (first on line %d)", filenameDirective, nameLine)
				}
				p.Warnings = append(p.Warnings, fmt.Sprintf("line %d: %s %q replaces %q from line %d", lineNo, filenameDirective, name, p.Name, nameLine))
			}
			p.Name = name
			nameLine = lineNo

		case strings.HasPrefix(line, sourceDirective):
			name := clean(strings.TrimPrefix(line, sourceDirective))
			if name == "" {
				return nil, cuterr.AtLine(lineNo, "empty %s directive", sourceDirective)
			}
			if i, ok := index[name]; ok {
				if opts.Strict {
					return nil, cuterr.AtLine(lineNo, "repeated %s %q (first on line %d)", sourceDirective, name, p.Sources[i].Line)
				}
				// Keeps its original position; earlier cuts are discarded.
				p.Warnings = append(p.Warnings, fmt.Sprintf("line %d: %s %q repeated, discarding %d earlier cut(s)", lineNo, sourceDirective, name, len(p.Sources[i].Cuts)))
				p.Sources[i].Cuts = nil
				p.Sources[i].Line = lineNo
				current = i
				continue
			}
			index[name] = len(p.Sources)
			p.Sources = append(p.Sources, Source{Name: name, Line: lineNo})
			current = len(p.Sources) - 1

		case current >= 0 && strings.Contains(line, "-") && strings.Contains(line, ","):
			p.Sources[current].Cuts = append(p.Sources[current].Cuts, parseCut(line, lineNo))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, cuterr.Wrap(cuterr.IO, "failed to read cut table", err)
	}

	if p.Name == "" {
		return nil, cuterr.Formatf("could not parse the cut table: missing %s directive", filenameDirective)
	}
	if len(p.Sources) == 0 {
		return nil, cuterr.Formatf("could not parse the cut table: no %s directives", sourceDirective)
	}
	return p, nil
}

func parseCut(line string, lineNo int) Cut {
	rangePart, label, _ := strings.Cut(line, ",")
	start, end, _ := strings.Cut(rangePart, "-")
	return Cut{
		Start: strings.TrimSpace(start),
		End:   strings.TrimSpace(end),
		Label: clean(label),
		Line:  lineNo,
	}
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// CutCount returns the number of cuts across all sources.
func (p *Project) CutCount() int {
	n := 0
	for _, s := range p.Sources {
		n += len(s.Cuts)
	}
	return n
}
