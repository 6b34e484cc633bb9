package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cutxml/cuttable"
	"cutxml/fcp"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--log-format", "json"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// setupCLITestEnv isolates HOME and the working directory.
func setupCLITestEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeCutTable(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "cuts.txt")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write cut table: %v", err)
	}
	return path
}

func clipCount(t *testing.T, data []byte) (clips, transitions int) {
	t.Helper()
	doc, err := fcp.Parse(data)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	for _, item := range doc.Sequence.Media.Video.Track.Items {
		switch item.(type) {
		case fcp.ClipItem:
			clips++
		case fcp.TransitionItem:
			transitions++
		}
	}
	return clips, transitions
}

func TestExampleCommand(t *testing.T) {
	setupCLITestEnv(t)
	out, _, err := runCLI(t, "", "example")
	if err != nil {
		t.Fatalf("example: %v", err)
	}
	if out != cuttable.Example {
		t.Fatalf("unexpected example output:\n%s", out)
	}
}

func TestGenerateDefaultOutputName(t *testing.T) {
	dir := setupCLITestEnv(t)
	path := writeCutTable(t, dir, cuttable.Example)

	out, _, err := runCLI(t, "", "generate", path)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "Generated Multi_Source_Test_Project.xml: 9 clips, 6 title cards, 12 transitions") {
		t.Fatalf("unexpected output: %q", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "Multi_Source_Test_Project.xml"))
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	clips, transitions := clipCount(t, data)
	if clips != 15 || transitions != 12 {
		t.Fatalf("video track has %d clips and %d transitions, want 15 and 12", clips, transitions)
	}

	for _, name := range []string{"title_card_5.png", "title_card_7.png", "title_card_17.png"} {
		card := filepath.Join(dir, "title_cards", name)
		if _, err := os.Stat(card); err != nil {
			t.Errorf("expected title card %s: %v", card, err)
		}
	}
}

func TestGenerateFromStdinToStdout(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, cuttable.Example, "generate", "-", "--title-cards=false", "-o", "-")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "<!DOCTYPE xmeml>") {
		t.Fatalf("expected xml document on stdout, got %q", out[:min(len(out), 80)])
	}
	clips, transitions := clipCount(t, []byte(out))
	if clips != 9 || transitions != 0 {
		t.Fatalf("video track has %d clips and %d transitions, want 9 and 0", clips, transitions)
	}
	if _, err := os.Stat("title_cards"); !os.IsNotExist(err) {
		t.Fatalf("title card directory created with title cards off")
	}
}

func TestGenerateExplicitOutput(t *testing.T) {
	dir := setupCLITestEnv(t)
	path := writeCutTable(t, dir, cuttable.Example)
	output := filepath.Join(dir, "out", "seq.xml")
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCLI(t, "", "generate", path,
		"-o", output,
		"--title-dir", filepath.Join(dir, "cards"),
		"--title-before-first",
		"--title-text", "Next",
		"--color", "#003366",
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	if !strings.Contains(string(data), "<name>title_card_4.png</name>") {
		t.Fatal("intro title card missing from document")
	}
	if _, err := os.Stat(filepath.Join(dir, "cards", "title_card_4.png")); err != nil {
		t.Fatalf("expected intro title card: %v", err)
	}
}

func TestGenerateStrictRejectsRepeatedSource(t *testing.T) {
	dir := setupCLITestEnv(t)
	path := writeCutTable(t, dir, "FILENAME: P\nSOURCE: a.mp4\n00:00:00-00:00:05,A\nSOURCE: a.mp4\n00:00:05-00:00:09,B\n")

	if _, _, err := runCLI(t, "", "generate", path, "--strict"); err == nil {
		t.Fatal("expected strict mode to reject repeated SOURCE")
	}

	_, stderr, err := runCLI(t, "", "generate", path, "--title-cards=false")
	if err != nil {
		t.Fatalf("generate without strict: %v", err)
	}
	if !strings.Contains(stderr, "cut table warning") {
		t.Fatalf("expected warning in log output, got %q", stderr)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	dir := setupCLITestEnv(t)
	path := writeCutTable(t, dir, cuttable.Example)

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"generate", filepath.Join(dir, "nope.txt")}},
		{"bad color", []string{"generate", path, "--color", "orange"}},
		{"bad renderer", []string{"generate", path, "--renderer", "gpu"}},
		{"bad duration", []string{"generate", path, "--title-frames", "0"}},
		{"no args", []string{"generate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, "", tt.args...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
	if _, err := os.Stat(filepath.Join(dir, "Multi_Source_Test_Project.xml")); !os.IsNotExist(err) {
		t.Fatal("document written despite errors")
	}
}

func TestPlanWritesNothing(t *testing.T) {
	dir := setupCLITestEnv(t)
	path := writeCutTable(t, dir, cuttable.Example)

	out, _, err := runCLI(t, "", "plan", path)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	for _, want := range []string{
		"Multi_Source_Test_Project",
		"Video_Part_1.mp4 [00:00:00:00-00:05:30:00]",
		"Cross Dissolve",
		"9 clips, 6 title cards, 12 transitions",
		"Total: 87510 frames (00:48:37:00)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("plan output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "title_cards")); !os.IsNotExist(err) {
		t.Fatal("plan created the title card directory")
	}
}

func TestPlanTitleOptions(t *testing.T) {
	dir := setupCLITestEnv(t)
	path := writeCutTable(t, dir, cuttable.Example)

	out, _, err := runCLI(t, "", "plan", path, "--title-before-first", "--title-text", "Chapter", "--title-frames", "90")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if strings.Count(out, "Chapter") != 7 {
		t.Errorf("expected 7 Chapter titles, got %d:\n%s", strings.Count(out, "Chapter"), out)
	}
	if !strings.Contains(out, "Total: 86880 frames") {
		t.Errorf("unexpected total:\n%s", out)
	}
}

func TestTitleCardCommand(t *testing.T) {
	dir := setupCLITestEnv(t)
	output := filepath.Join(dir, "card.png")

	out, _, err := runCLI(t, "", "titlecard", "Hello", "-o", output, "--color", "#202020")
	if err != nil {
		t.Fatalf("titlecard: %v", err)
	}
	if !strings.Contains(out, "Generated title card: "+output) {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("expected card at %s: %v", output, err)
	}
}

func TestConfigFileFeedsGenerate(t *testing.T) {
	dir := setupCLITestEnv(t)
	path := writeCutTable(t, dir, cuttable.Example)
	cfgPath := filepath.Join(dir, "cutxml.toml")
	if err := os.WriteFile(cfgPath, []byte("[title_cards]\nenabled = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, "", "--config", cfgPath, "plan", path)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !strings.Contains(out, "9 clips, 0 title cards, 0 transitions") {
		t.Fatalf("config did not disable title cards:\n%s", out)
	}
}

func TestDefaultOutputName(t *testing.T) {
	tests := map[string]string{
		"Multi_Source_Test_Project": "Multi_Source_Test_Project.xml",
		"../escape":                 "escape.xml",
		"a/b":                       "b.xml",
		`a\b`:                       "b.xml",
		"..":                        "sequence.xml",
		"/":                         "sequence.xml",
	}
	for in, want := range tests {
		if got := defaultOutputName(in); got != want {
			t.Errorf("defaultOutputName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateKeepsDefaultOutputInWorkingDir(t *testing.T) {
	dir := setupCLITestEnv(t)
	path := writeCutTable(t, dir, "FILENAME: ../escape\nSOURCE: a.mp4\n00:00:00-00:00:05,A\n")

	if _, _, err := runCLI(t, "", "generate", path); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.xml")); err != nil {
		t.Fatalf("expected escape.xml in working directory: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape.xml")); !os.IsNotExist(err) {
		t.Fatal("document written outside the working directory")
	}
}
