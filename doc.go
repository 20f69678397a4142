// Package uasset decodes Unreal Engine package files (.uasset, .umap).
//
// A package file starts with a summary header followed by the name, import
// and export tables. Each export owns a byte range holding a tagged-property
// stream, and that stream is where Blueprint graphs, default values and
// editor metadata live. The library decodes all of it from one in-memory
// buffer without ever reading outside the bounds of that buffer.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	uasset/              Root package with file loading
//	├── asset/           Header, name/import/export tables, thumbnails, asset registry
//	├── property/        Tagged-property stream decoder and decoder registry
//	├── guid/            128-bit identifiers and their two rendering orders
//	├── errors/          Structured error types for debugging
//	├── render/          JSON document, text summary and hex dumps
//	├── store/           SQLite index of decoded packages
//	├── server/          HTTP API over the index
//	└── cmd/uasset/      Command line driver and interactive browser
//
// # Quick Start
//
// Load and inspect a package:
//
//	f, err := uasset.Load("BP_Door.uasset")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, e := range f.Package.Exports {
//	    fmt.Println(e.Metadata.ObjectType, e.Metadata.ObjectName, len(e.Properties))
//	}
//
//	render.JSON(os.Stdout, f.Package, true)
//
// # Failure Model
//
// Header and table failures abort the decode and no partial package is
// returned. A property stream that hits an unregistered property stops for
// that export only: the values decoded so far are kept, the export's
// Stream status names the offending offset, and sibling exports still
// decode. See the errors package for the kind taxonomy.
//
// # Extending the Decoder
//
// Property shapes the default registry does not know can be added on a
// cloned registry and passed through asset.DecodeOptions:
//
//	reg := property.NewDefaultRegistry()
//	reg.RegisterTypeFunc("MyProperty", func(ctx *property.Context, tag *property.Tag) ([]property.Value, error) {
//	    b, err := ctx.Cursor.ReadBytes(tag.Size)
//	    return []property.Value{property.Bytes(tag.ValueName(), b)}, err
//	})
//	pkg, err := asset.DecodeWithOptions(data, asset.DecodeOptions{Registry: reg})
//
// # Thread Safety
//
// Decoding shares no mutable state between calls, so independent packages can
// decode concurrently. Registries are read-only during a decode; register
// custom decoders before handing a registry to concurrent callers.
package uasset
