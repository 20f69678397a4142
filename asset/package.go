package asset

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/uasset/errors"
	"github.com/wippyai/uasset/internal/binary"
	"github.com/wippyai/uasset/property"
)

// Package is one decoded package file.
type Package struct {
	Header  *Header       `json:"header"`
	Names   *NameTable    `json:"-"`
	Imports []ImportEntry `json:"imports"`
	Exports []ExportEntry `json:"exports"`

	// Filled only when requested in DecodeOptions.
	Thumbnails    []Thumbnail          `json:"thumbnails,omitempty"`
	AssetRegistry []AssetRegistryEntry `json:"assetRegistry,omitempty"`
}

// DecodeOptions controls decoding behavior
type DecodeOptions struct {
	Registry       *property.Registry // property decoders; nil uses property.DefaultRegistry
	Logger         *zap.Logger        // nil uses the package logger
	SkipProperties bool               // decode tables only
	Thumbnails     bool               // read the thumbnail table
	AssetRegistry  bool               // read the asset registry data
}

// Decode decodes a package held entirely in data.
func Decode(data []byte) (*Package, error) {
	return DecodeWithOptions(data, DecodeOptions{})
}

// DecodeWithOptions decodes a package with the given options.
//
// Header, name, import and export table failures abort the decode. A
// property stream failure is recorded on its export's Stream status and the
// remaining exports still decode.
func DecodeWithOptions(data []byte, opts DecodeOptions) (*Package, error) {
	log := opts.Logger
	if log == nil {
		log = Logger()
	}
	c := binary.NewCursor(data)

	h, err := decodeHeader(c)
	if err != nil {
		return nil, err
	}
	log.Debug("header decoded",
		zap.Int32("legacy", h.LegacyFileVersion),
		zap.Int32("ue4", h.UE4Version),
		zap.Int32("ue5", h.UE5Version),
		zap.Int32("licensee", h.LicenseeVersion))

	names, err := decodeNames(c, h)
	if err != nil {
		return nil, err
	}
	imports, err := decodeImports(c, h)
	if err != nil {
		return nil, err
	}
	exports, err := decodeExports(c, h)
	if err != nil {
		return nil, err
	}
	log.Debug("tables decoded",
		zap.Int("names", names.Len()),
		zap.Int("imports", len(imports)),
		zap.Int("exports", len(exports)))

	pkg := &Package{Header: h, Names: names, Imports: imports, Exports: exports}
	for i := range pkg.Exports {
		e := &pkg.Exports[i]
		e.Metadata = ExportMetadata{
			ObjectType: pkg.ClassName(e.ClassIndex),
			ObjectName: names.Display(e.ObjectName),
		}
	}

	if !opts.SkipProperties {
		popts := property.Options{Registry: opts.Registry, Logger: log}
		for i := range pkg.Exports {
			pkg.decodeProperties(data, i, popts)
		}
	}

	if opts.Thumbnails {
		if pkg.Thumbnails, err = ReadThumbnails(data, h); err != nil {
			return nil, err
		}
	}
	if opts.AssetRegistry {
		if pkg.AssetRegistry, err = ReadAssetRegistry(data, h); err != nil {
			return nil, err
		}
	}
	return pkg, nil
}

func (p *Package) decodeProperties(data []byte, i int, opts property.Options) {
	e := &p.Exports[i]
	opts.Path = []string{"exports", strconv.Itoa(i)}
	res := property.Decode(data, e.SerialOffset, e.SerialSize, p.Names, opts)
	e.Properties = res.Values
	e.Stream = res.Status
}

// ObjectName resolves a package index to an object name: negative indices
// name imports, positive ones exports. Zero and out-of-range indices yield "".
func (p *Package) ObjectName(index int32) string {
	switch {
	case index < 0:
		i := int(-int64(index)) - 1
		if i < len(p.Imports) {
			return p.Names.Display(p.Imports[i].ObjectName)
		}
	case index > 0:
		i := int(index) - 1
		if i < len(p.Exports) {
			return p.Names.Display(p.Exports[i].ObjectName)
		}
	}
	return ""
}

// ClassName resolves an export's class index. Index zero is the native
// class object.
func (p *Package) ClassName(index int32) string {
	if index == 0 {
		return "Class"
	}
	return p.ObjectName(index)
}

// Export returns the export at a table index.
func (p *Package) Export(i int) (*ExportEntry, error) {
	if i < 0 || i >= len(p.Exports) {
		return nil, errors.NotFound(errors.PhaseExports, "export", strconv.Itoa(i))
	}
	return &p.Exports[i], nil
}

// StreamErrors returns the exports whose property stream stopped early.
func (p *Package) StreamErrors() []*ExportEntry {
	var out []*ExportEntry
	for i := range p.Exports {
		if st := p.Exports[i].Stream.State; st == property.StateUnknownProperty || st == property.StateError {
			out = append(out, &p.Exports[i])
		}
	}
	return out
}
