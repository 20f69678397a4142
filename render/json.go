// Package render projects decoded packages into documents for people and
// tools: a JSON document, a styled text summary and hex dumps of export
// byte ranges.
package render

import (
	"encoding/json"
	"io"
	"slices"

	"github.com/wippyai/uasset/asset"
	"github.com/wippyai/uasset/property"
)

// Document is the JSON projection of a package. Table entries keep their
// raw name references and carry the resolved strings alongside.
type Document struct {
	Header        *asset.Header              `json:"header"`
	Names         []asset.NameEntry          `json:"names"`
	Imports       []Import                   `json:"imports"`
	Exports       []Export                   `json:"exports"`
	Thumbnails    []asset.Thumbnail          `json:"thumbnails,omitempty"`
	AssetRegistry []asset.AssetRegistryEntry `json:"assetRegistry,omitempty"`
}

// Import is an import entry with its names resolved.
type Import struct {
	asset.ImportEntry
	Resolved ImportNames `json:"resolved"`
}

// ImportNames holds the display strings of an import's name references.
type ImportNames struct {
	ClassPackage string `json:"classPackage"`
	ClassName    string `json:"className"`
	ObjectName   string `json:"objectName"`
	PackageName  string `json:"packageName"`
	Outer        string `json:"outer"`
}

// Export is an export entry with its stream status.
type Export struct {
	asset.ExportEntry
	Stream Stream `json:"stream"`
}

// Stream reports how an export's property stream ended.
type Stream struct {
	State  property.State `json:"state"`
	Offset int64          `json:"offset"`
	Error  string         `json:"error,omitempty"`
}

// NewDocument builds the document for pkg. Empty tables render as [] rather
// than null.
func NewDocument(pkg *asset.Package) *Document {
	doc := &Document{
		Header:        pkg.Header,
		Names:         pkg.Names.Entries(),
		Imports:       make([]Import, len(pkg.Imports)),
		Exports:       make([]Export, len(pkg.Exports)),
		Thumbnails:    pkg.Thumbnails,
		AssetRegistry: pkg.AssetRegistry,
	}
	if doc.Names == nil {
		doc.Names = []asset.NameEntry{}
	}
	if h := pkg.Header; h != nil && (h.CustomVersions == nil || h.Generations == nil) {
		hc := *h
		if hc.CustomVersions == nil {
			hc.CustomVersions = []asset.CustomVersion{}
		}
		if hc.Generations == nil {
			hc.Generations = []asset.Generation{}
		}
		doc.Header = &hc
	}
	if slices.ContainsFunc(doc.AssetRegistry, func(e asset.AssetRegistryEntry) bool { return e.Tags == nil }) {
		doc.AssetRegistry = slices.Clone(doc.AssetRegistry)
		for i := range doc.AssetRegistry {
			if doc.AssetRegistry[i].Tags == nil {
				doc.AssetRegistry[i].Tags = []asset.AssetTag{}
			}
		}
	}

	for i, imp := range pkg.Imports {
		doc.Imports[i] = Import{
			ImportEntry: imp,
			Resolved: ImportNames{
				ClassPackage: pkg.Names.Display(imp.ClassPackage),
				ClassName:    pkg.Names.Display(imp.ClassName),
				ObjectName:   pkg.Names.Display(imp.ObjectName),
				PackageName:  pkg.Names.Display(imp.PackageName),
				Outer:        pkg.ObjectName(imp.OuterIndex),
			},
		}
	}

	for i, e := range pkg.Exports {
		if e.Properties == nil {
			e.Properties = []property.Value{}
		}
		out := Export{
			ExportEntry: e,
			Stream:      Stream{State: e.Stream.State, Offset: e.Stream.Offset},
		}
		if e.Stream.Err != nil {
			out.Stream.Error = e.Stream.Err.Error()
		}
		doc.Exports[i] = out
	}
	return doc
}

// JSON writes the document for pkg to w. Indented output uses two spaces.
func JSON(w io.Writer, pkg *asset.Package, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(NewDocument(pkg))
}
