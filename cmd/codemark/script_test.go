package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codemark/internal/diag"
	"codemark/internal/source"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func TestLoadRenderScript(t *testing.T) {
	path := writeScript(t, `
[[files]]
name = "main.fun"
content = "let x = 1\n"

[[diagnostics]]
severity = "error"
code = "E0308"
message = "mismatched types"
notes = ["expected int"]

[[diagnostics.labels]]
file = "main.fun"
start = 4
end = 5
message = "declared here"
`)

	script, err := loadRenderScript(path)
	if err != nil {
		t.Fatalf("loadRenderScript() error: %v", err)
	}
	if len(script.Files) != 1 || script.Files[0].Name != "main.fun" {
		t.Errorf("Files = %+v, want one entry named main.fun", script.Files)
	}
	if len(script.Diagnostics) != 1 {
		t.Fatalf("len(Diagnostics) = %d, want 1", len(script.Diagnostics))
	}
	d := script.Diagnostics[0]
	if d.Code != "E0308" || d.Message != "mismatched types" {
		t.Errorf("diagnostic = %+v, want code E0308 and message", d)
	}
	if len(d.Labels) != 1 || d.Labels[0].Start != 4 || d.Labels[0].End != 5 {
		t.Errorf("labels = %+v, want one label 4..5", d.Labels)
	}
}

func TestLoadRenderScriptRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "no diagnostics",
			content: "[[files]]\nname = \"a\"\n",
			wantErr: "missing [[diagnostics]]",
		},
		{
			name:    "file without name or path",
			content: "[[files]]\ncontent = \"x\"\n\n[[diagnostics]]\nmessage = \"m\"\n",
			wantErr: "needs a name or a path",
		},
		{
			name:    "diagnostic without message",
			content: "[[diagnostics]]\nseverity = \"error\"\n",
			wantErr: "needs a message",
		},
		{
			name:    "bad severity",
			content: "[[diagnostics]]\nseverity = \"fatal\"\nmessage = \"m\"\n",
			wantErr: "unknown severity",
		},
		{
			name:    "bad toml",
			content: "[[diagnostics\n",
			wantErr: "failed to parse TOML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadRenderScript(writeScript(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input string
		want  diag.Severity
	}{
		{input: "bug", want: diag.SevBug},
		{input: "error", want: diag.SevError},
		{input: "Warning", want: diag.SevWarning},
		{input: "note", want: diag.SevNote},
		{input: "help", want: diag.SevHelp},
		{input: "", want: diag.SevError},
	}

	for _, tt := range tests {
		got, err := parseSeverity(tt.input)
		if err != nil {
			t.Errorf("parseSeverity(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSeverity(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := parseSeverity("fatal"); err == nil {
		t.Error("parseSeverity(\"fatal\") expected error")
	}
}

func TestLoadScriptFiles(t *testing.T) {
	tmp := t.TempDir()
	diskPath := filepath.Join(tmp, "disk.fun")
	if err := os.WriteFile(diskPath, []byte("on disk\r\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	script := &renderScript{
		Files: []scriptFile{
			{Name: "inline.fun", Content: "inline\n"},
			{Path: diskPath},
		},
	}

	fileSet := source.NewFileSet()
	ids, err := loadScriptFiles(context.Background(), fileSet, script)
	if err != nil {
		t.Fatalf("loadScriptFiles() error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("len(ids) = %d, want 2", len(ids))
	}

	inline, err := fileSet.Get(ids["inline.fun"])
	if err != nil {
		t.Fatalf("Get(inline) error: %v", err)
	}
	if string(inline.Content) != "inline\n" {
		t.Errorf("inline Content = %q, want %q", inline.Content, "inline\n")
	}
	if inline.Flags&source.FileVirtual == 0 {
		t.Error("expected FileVirtual flag on inline file")
	}

	disk, err := fileSet.Get(ids[diskPath])
	if err != nil {
		t.Fatalf("Get(disk) error: %v", err)
	}
	if string(disk.Content) != "on disk\n" {
		t.Errorf("disk Content = %q, want CRLF normalized away", disk.Content)
	}
}

func TestLoadScriptFilesMissingDiskFile(t *testing.T) {
	script := &renderScript{
		Files: []scriptFile{{Path: filepath.Join(t.TempDir(), "absent.fun")}},
	}
	if _, err := loadScriptFiles(context.Background(), source.NewFileSet(), script); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadScriptFilesDuplicateName(t *testing.T) {
	script := &renderScript{
		Files: []scriptFile{
			{Name: "a", Content: "1"},
			{Name: "a", Content: "2"},
		},
	}
	if _, err := loadScriptFiles(context.Background(), source.NewFileSet(), script); err == nil {
		t.Fatal("expected error for duplicate name")
	}
}

func TestBuildDiagnostics(t *testing.T) {
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual("main.fun", []byte("let x = 1\n"))
	ids := map[string]source.FileID{"main.fun": id}

	script := &renderScript{
		Diagnostics: []scriptDiagnostic{
			{
				Severity: "warning",
				Code:     "W01",
				Message:  "unused variable",
				Notes:    []string{"remove it"},
				Labels: []scriptLabel{
					{File: "main.fun", Start: 4, End: 5, Message: "declared here"},
					{File: "main.fun", Start: 0, End: 3, Style: "secondary", Message: "in this let"},
				},
			},
		},
	}

	got, err := buildDiagnostics(script, ids)
	if err != nil {
		t.Fatalf("buildDiagnostics() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}

	d := got[0]
	if d.Severity != diag.SevWarning || d.Code != "W01" {
		t.Errorf("diagnostic = %+v, want warning W01", d)
	}
	if len(d.Labels) != 2 {
		t.Fatalf("len(Labels) = %d, want 2", len(d.Labels))
	}
	if d.Labels[0].Style != diag.LabelPrimary || d.Labels[0].Span.Start != 4 {
		t.Errorf("labels[0] = %+v, want primary at 4", d.Labels[0])
	}
	if d.Labels[1].Style != diag.LabelSecondary {
		t.Errorf("labels[1] = %+v, want secondary", d.Labels[1])
	}
	if len(d.Notes) != 1 || d.Notes[0] != "remove it" {
		t.Errorf("Notes = %v, want [remove it]", d.Notes)
	}
}

func TestBuildDiagnosticsRejectsBadLabels(t *testing.T) {
	ids := map[string]source.FileID{"known": 0}

	tests := []struct {
		name    string
		label   scriptLabel
		wantErr string
	}{
		{
			name:    "unknown file",
			label:   scriptLabel{File: "absent", Start: 0, End: 1},
			wantErr: "unknown file",
		},
		{
			name:    "inverted range",
			label:   scriptLabel{File: "known", Start: 5, End: 2},
			wantErr: "invalid range",
		},
		{
			name:    "bad style",
			label:   scriptLabel{File: "known", Start: 0, End: 1, Style: "tertiary"},
			wantErr: "unknown style",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := &renderScript{
				Diagnostics: []scriptDiagnostic{
					{Message: "m", Labels: []scriptLabel{tt.label}},
				},
			}
			_, err := buildDiagnostics(script, ids)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
