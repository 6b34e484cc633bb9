package cuttable

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cutxml/cuterr"
)

func TestParseExample(t *testing.T) {
	p, err := Parse(Example)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if p.Name != "Multi_Source_Test_Project" {
		t.Errorf("Name = %q", p.Name)
	}
	wantSources := []string{"Video_Part_1.mp4", "Video_Part_2.mp4", "Video_Part_3.mp4"}
	if len(p.Sources) != len(wantSources) {
		t.Fatalf("got %d sources, want %d", len(p.Sources), len(wantSources))
	}
	for i, name := range wantSources {
		if p.Sources[i].Name != name {
			t.Errorf("source %d = %q, want %q", i, p.Sources[i].Name, name)
		}
		if len(p.Sources[i].Cuts) != 3 {
			t.Errorf("source %q has %d cuts, want 3", name, len(p.Sources[i].Cuts))
		}
	}
	if p.CutCount() != 9 {
		t.Errorf("CutCount = %d, want 9", p.CutCount())
	}

	first := p.Sources[0].Cuts[0]
	if first.Start != "00:00:00" || first.End != "00:05:30" || first.Label != "Introduction and Overview" {
		t.Errorf("unexpected first cut: %+v", first)
	}
	if first.Line != 3 {
		t.Errorf("first cut line = %d, want 3", first.Line)
	}
	if len(p.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", p.Warnings)
	}
}

func TestParseCutLineShapes(t *testing.T) {
	text := `
  FILENAME:  Shapes  

00:00:00-00:00:05,before any source is ignored
SOURCE: a.mov
  00:00:01 - 00:00:04 , Label, with, commas  
this line has no range separator, so it is ignored
00:00:10-00:00:12 missing label separator
00:00:20-00:00:30:15,Frames
`
	p, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Name != "Shapes" {
		t.Errorf("Name = %q", p.Name)
	}
	if len(p.Sources) != 1 {
		t.Fatalf("got %d sources", len(p.Sources))
	}
	cuts := p.Sources[0].Cuts
	if len(cuts) != 2 {
		t.Fatalf("got %d cuts, want 2: %+v", len(cuts), cuts)
	}
	if cuts[0].Start != "00:00:01" || cuts[0].End != "00:00:04" {
		t.Errorf("range not trimmed: %+v", cuts[0])
	}
	if cuts[0].Label != "Label, with, commas" {
		t.Errorf("Label = %q", cuts[0].Label)
	}
	if cuts[1].End != "00:00:30:15" || cuts[1].Label != "Frames" {
		t.Errorf("unexpected second cut: %+v", cuts[1])
	}
}

func TestParseSplitsOnFirstDash(t *testing.T) {
	p, err := Parse("FILENAME: x\nSOURCE: s\n00:00:01-00:00:02-00:00:03,odd")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	cut := p.Sources[0].Cuts[0]
	if cut.Start != "00:00:01" || cut.End != "00:00:02-00:00:03" {
		t.Errorf("unexpected split: %+v", cut)
	}
}

func TestParseRepeatedDirectives(t *testing.T) {
	text := `FILENAME: First
SOURCE: a.mov
00:00:00-00:00:01,a1
SOURCE: b.mov
00:00:00-00:00:01,b1
SOURCE: a.mov
00:00:05-00:00:06,a2
FILENAME: Second
`
	p, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Name != "Second" {
		t.Errorf("Name = %q, want last FILENAME to win", p.Name)
	}
	if len(p.Sources) != 2 || p.Sources[0].Name != "a.mov" || p.Sources[1].Name != "b.mov" {
		t.Fatalf("unexpected source order: %+v", p.Sources)
	}
	if got := p.Sources[0].Cuts; len(got) != 1 || got[0].Label != "a2" {
		t.Errorf("repeated source should replace earlier cuts, got %+v", got)
	}
	if len(p.Warnings) != 2 {
		t.Errorf("got %d warnings, want 2: %v", len(p.Warnings), p.Warnings)
	}

	_, err = ParseReader(strings.NewReader(text), Options{Strict: true})
	if !cuterr.IsFormat(err) {
		t.Fatalf("strict parse: expected format error, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 6") {
		t.Errorf("strict error should name the line: %v", err)
	}
}

func TestParseRejectsIncompleteTables(t *testing.T) {
	tests := map[string]string{
		"empty":          "",
		"no filename":    "SOURCE: a.mov\n00:00:00-00:00:01,x",
		"blank filename": "FILENAME:   \nSOURCE: a.mov",
		"no source":      "FILENAME: x\n00:00:00-00:00:01,x",
		"empty source":   "FILENAME: x\nSOURCE:\n",
	}
	for name, text := range tests {
		_, err := Parse(text)
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		if !cuterr.IsFormat(err) {
			t.Errorf("%s: expected format error, got %v", name, err)
		}
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cuts.txt")
	if err := os.WriteFile(path, []byte(Example), 0644); err != nil {
		t.Fatalf("failed to write cut table: %v", err)
	}
	p, err := ParseFile(path, Options{})
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if p.CutCount() != 9 {
		t.Errorf("CutCount = %d", p.CutCount())
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.txt"), Options{}); !cuterr.IsIO(err) {
		t.Errorf("missing file error = %v, want io error", err)
	}
}

func TestParseNormalizesUnicode(t *testing.T) {
	decomposed := "Cafe\u0301"
	p, err := Parse("FILENAME: n\nSOURCE: " + decomposed + ".mov\n00:00:00-00:00:01," + decomposed)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Sources[0].Name != "Caf\u00e9.mov" {
		t.Errorf("source not NFC normalized: %q", p.Sources[0].Name)
	}
	if p.Sources[0].Cuts[0].Label != "Caf\u00e9" {
		t.Errorf("label not NFC normalized: %q", p.Sources[0].Cuts[0].Label)
	}
}
