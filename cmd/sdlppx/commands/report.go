package commands

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/teranos/sdlppx/ixgest/types"
)

// printRun renders a run for humans: one line per step, then its details
func printRun(result *types.RunResult) {
	pterm.DefaultHeader.WithFullWidth().Printf("sdlppx: %s", filepath.Base(result.ArchivePath))
	pterm.Println()

	for _, s := range result.Steps {
		switch s.Status {
		case types.StatusSkipped:
			pterm.Info.Printfln("%s: skipped", s.Name)
			continue
		case types.StatusFailed:
			pterm.Error.Printfln("%s: %s", s.Name, s.Error)
			if s.Hint != "" {
				pterm.Printfln("  hint: %s", s.Hint)
			}
		default:
			pterm.Success.Printfln("%s (%s)", s.Name, s.Duration.Round(time.Millisecond))
		}
		printDetail(s.Detail)
	}
	pterm.Println()

	if result.Success {
		if result.FinalPath != result.ArchivePath {
			pterm.Info.Printfln("Package: %s", result.FinalPath)
		}
		pterm.Success.Println("Conversion completed")
		return
	}
	pterm.Warning.Printfln("Conversion finished with failures (exit code %d)", result.ExitCode())
}

func printDetail(detail interface{}) {
	switch d := detail.(type) {
	case *types.PackageResult:
		printPackage(d)
	case *types.SourceDocumentsResult:
		if d != nil {
			pterm.Printfln("  %d documents copied to %s", len(d.Files), d.OutputDir)
		}
	case []*types.TMResult:
		printMemories(d)
	case []*types.GlossaryResult:
		printGlossaries(d)
	}
}

func printPackage(p *types.PackageResult) {
	if p == nil {
		return
	}
	if !p.Updated {
		pterm.Printfln("  %s left unchanged", p.ArchivePath)
		return
	}
	pterm.Printfln("  Backup:    %s", p.BackupPath)
	pterm.Printfln("  Replaced:  %d %s documents", len(p.Replaced), p.TargetLanguage)
	pterm.Printfln("  Return:    %s", p.NewPath)
	if len(p.Missing) > 0 {
		pterm.Warning.Printfln("No translation for %d documents:", len(p.Missing))
		for _, m := range p.Missing {
			pterm.Printfln("    %s", m)
		}
	}
}

func printMemories(results []*types.TMResult) {
	for _, tm := range results {
		pterm.Printfln("  %s (%s): %d of %d units -> %s",
			tm.Name, tm.SourceLanguage, tm.ExportedUnits, tm.DeclaredUnits, tm.OutputFile)
		if tm.SkippedUnits > 0 {
			pterm.Printfln("    %d units skipped", tm.SkippedUnits)
		}
	}
}

func printGlossaries(results []*types.GlossaryResult) {
	for _, g := range results {
		pterm.Printfln("  %d concepts [%s] %s/%s -> %s",
			g.Concepts, strings.Join(g.Languages, ", "), g.Format, g.Layout, g.OutputFile)
		if g.Skipped > 0 {
			pterm.Printfln("    %d concepts skipped", g.Skipped)
		}
	}
}
