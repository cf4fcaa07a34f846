package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"

	"codemark/internal/diag"
	"codemark/internal/source"
)

// renderScript is the TOML format consumed by "codemark render": the
// files to annotate and the diagnostics to render against them. Files
// either point at a path on disk or carry inline content.
type renderScript struct {
	Files       []scriptFile       `toml:"files"`
	Diagnostics []scriptDiagnostic `toml:"diagnostics"`
}

type scriptFile struct {
	Name    string `toml:"name"`
	Path    string `toml:"path"`
	Content string `toml:"content"`
}

type scriptDiagnostic struct {
	Severity string        `toml:"severity"`
	Code     string        `toml:"code"`
	Message  string        `toml:"message"`
	Labels   []scriptLabel `toml:"labels"`
	Notes    []string      `toml:"notes"`
}

type scriptLabel struct {
	File    string `toml:"file"`
	Start   int64  `toml:"start"`
	End     int64  `toml:"end"`
	Style   string `toml:"style"`
	Message string `toml:"message"`
}

func (f *scriptFile) displayName() string {
	if strings.TrimSpace(f.Name) != "" {
		return f.Name
	}
	return f.Path
}

func loadRenderScript(path string) (*renderScript, error) {
	var script renderScript
	meta, err := toml.DecodeFile(path, &script)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("diagnostics") {
		return nil, fmt.Errorf("%s: missing [[diagnostics]]", path)
	}
	for i, f := range script.Files {
		if f.displayName() == "" {
			return nil, fmt.Errorf("%s: files[%d] needs a name or a path", path, i)
		}
	}
	for i, d := range script.Diagnostics {
		if strings.TrimSpace(d.Message) == "" {
			return nil, fmt.Errorf("%s: diagnostics[%d] needs a message", path, i)
		}
		if _, err := parseSeverity(d.Severity); err != nil {
			return nil, fmt.Errorf("%s: diagnostics[%d]: %w", path, i, err)
		}
	}
	return &script, nil
}

func parseSeverity(s string) (diag.Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bug":
		return diag.SevBug, nil
	case "error", "":
		return diag.SevError, nil
	case "warning":
		return diag.SevWarning, nil
	case "note":
		return diag.SevNote, nil
	case "help":
		return diag.SevHelp, nil
	default:
		return diag.SevError, fmt.Errorf("unknown severity %q (must be bug, error, warning, note, or help)", s)
	}
}

// loadScriptFiles registers every script file in the set and returns a
// name -> ID map for label resolution. Disk files are read concurrently;
// registration stays sequential so IDs follow script order.
func loadScriptFiles(ctx context.Context, fileSet *source.FileSet, script *renderScript) (map[string]source.FileID, error) {
	contents := make([][]byte, len(script.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range script.Files {
		if f.Path == "" {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// #nosec G304 -- path comes from the user's script
			data, err := os.ReadFile(f.Path)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", f.Path, err)
			}
			contents[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ids := make(map[string]source.FileID, len(script.Files))
	for i, f := range script.Files {
		name := f.displayName()
		if _, dup := ids[name]; dup {
			return nil, fmt.Errorf("duplicate file name %q", name)
		}
		if f.Path == "" {
			ids[name] = fileSet.AddVirtual(name, []byte(f.Content))
		} else {
			ids[name] = fileSet.AddContent(name, contents[i])
		}
	}
	return ids, nil
}

// buildDiagnostics converts script entries into diag values, resolving
// label file names against the loaded set.
func buildDiagnostics(script *renderScript, ids map[string]source.FileID) ([]diag.Diagnostic, error) {
	out := make([]diag.Diagnostic, 0, len(script.Diagnostics))
	for i, sd := range script.Diagnostics {
		sev, err := parseSeverity(sd.Severity)
		if err != nil {
			return nil, fmt.Errorf("diagnostics[%d]: %w", i, err)
		}
		d := diag.New(sev).WithCode(sd.Code).WithMessage(sd.Message).WithNotes(sd.Notes...)

		for j, sl := range sd.Labels {
			id, ok := ids[sl.File]
			if !ok {
				return nil, fmt.Errorf("diagnostics[%d].labels[%d]: unknown file %q", i, j, sl.File)
			}
			if sl.Start < 0 || sl.End < sl.Start {
				return nil, fmt.Errorf("diagnostics[%d].labels[%d]: invalid range %d..%d", i, j, sl.Start, sl.End)
			}
			span := source.Span{File: id, Start: safeOffset(sl.Start), End: safeOffset(sl.End)}

			var label diag.Label
			switch strings.ToLower(strings.TrimSpace(sl.Style)) {
			case "secondary":
				label = diag.SecondaryLabel(span)
			case "primary", "":
				label = diag.PrimaryLabel(span)
			default:
				return nil, fmt.Errorf("diagnostics[%d].labels[%d]: unknown style %q (must be primary or secondary)", i, j, sl.Style)
			}
			d = d.WithLabels(label.WithMessage(sl.Message))
		}

		out = append(out, d)
	}
	return out, nil
}

func safeOffset(n int64) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return ^uint32(0)
	}
	return v
}
