package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/uasset/asset"
	"github.com/wippyai/uasset/property"
)

// SummaryOptions configures Summary.
type SummaryOptions struct {
	Title      string // heading, usually the file name
	Color      bool   // style output with ANSI sequences
	Properties bool   // list every property value under its export
}

type palette struct {
	title, label, class, ok, warn, dim func(...string) string
}

func plain(strs ...string) string {
	return strings.Join(strs, " ")
}

func newPalette(color bool) palette {
	if !color {
		return palette{plain, plain, plain, plain, plain, plain}
	}
	return palette{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).Render,
		label: lipgloss.NewStyle().Bold(true).Render,
		class: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Render,
		ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")).Render,
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render,
		dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Render,
	}
}

// Terminal reports whether w is a terminal, the condition for colored
// output and the interactive browser.
func Terminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// Summary writes a human-readable overview of pkg: versions, table sizes
// and one line per export with its stream outcome.
func Summary(w io.Writer, pkg *asset.Package, opts SummaryOptions) error {
	p := newPalette(opts.Color)
	h := pkg.Header
	var b strings.Builder

	title := opts.Title
	if title == "" {
		title = "package"
	}
	b.WriteString(p.title(title))
	b.WriteString("\n\n")

	row := func(label, format string, args ...any) {
		fmt.Fprintf(&b, "%s %s\n", p.label(fmt.Sprintf("%-10s", label)), fmt.Sprintf(format, args...))
	}
	row("Versions", "legacy %d  ue4 %d  ue5 %d  licensee %d",
		h.LegacyFileVersion, h.UE4Version, h.UE5Version, h.LicenseeVersion)
	row("Saved by", "%s", h.SavedBy)
	row("Folder", "%s", h.FolderName)
	row("GUID", "%s", h.GUID)
	row("Tables", "names %d  imports %d  exports %d", pkg.Names.Len(), len(pkg.Imports), len(pkg.Exports))
	if len(h.CustomVersions) > 0 {
		row("Custom", "%d versions", len(h.CustomVersions))
	}
	if len(pkg.Thumbnails) > 0 {
		row("Thumbnails", "%d", len(pkg.Thumbnails))
	}
	if len(pkg.AssetRegistry) > 0 {
		row("Registry", "%d assets", len(pkg.AssetRegistry))
	}

	if len(pkg.Imports) > 0 {
		b.WriteString("\n")
		b.WriteString(p.label("Imports"))
		b.WriteString("\n")
		for i, imp := range pkg.Imports {
			fmt.Fprintf(&b, "  %-4s %s %s\n",
				fmt.Sprintf("%d", -(i + 1)),
				p.class(pkg.Names.Display(imp.ClassName)),
				pkg.Names.Display(imp.ObjectName))
		}
	}

	if len(pkg.Exports) > 0 {
		b.WriteString("\n")
		b.WriteString(p.label("Exports"))
		b.WriteString("\n")
		for i := range pkg.Exports {
			writeExport(&b, p, &pkg.Exports[i], opts.Properties)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeExport(b *strings.Builder, p palette, e *asset.ExportEntry, props bool) {
	fmt.Fprintf(b, "  %-4s %s %s %s %s\n",
		fmt.Sprintf("#%d", e.Index),
		p.class(e.Metadata.ObjectType),
		e.Metadata.ObjectName,
		p.dim(fmt.Sprintf("[%#x+%d]", e.SerialOffset, e.SerialSize)),
		streamText(p, e))
	if !props {
		return
	}
	for _, v := range e.Properties {
		fmt.Fprintf(b, "       %s = %s\n", v.Name, v.Text())
	}
}

func streamText(p palette, e *asset.ExportEntry) string {
	n := len(e.Properties)
	switch e.Stream.State {
	case property.StateUnknownProperty, property.StateError:
		return p.warn(fmt.Sprintf("%d properties, %s at %#x: %v", n, e.Stream.State, e.Stream.Offset, e.Stream.Err))
	default:
		return p.ok(fmt.Sprintf("%d properties, %s", n, e.Stream.State))
	}
}
