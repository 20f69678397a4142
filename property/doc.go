// Package property decodes tagged-property streams.
//
// An export's serialized data is a sequence of tags, each a name, a declared
// type, a payload size and type-specific fields, followed by its payload. The
// sequence ends with the name "None". Decode walks one stream and returns the
// flat list of values it produced together with how the stream ended:
//
//	StateTerminated       "None" reached
//	StateExhausted        range consumed without a terminator
//	StateUnknownProperty  no decoder for the tag; earlier values are kept
//	StateError            truncated or malformed data inside the range
//
// Decoders are looked up in a Registry. A name-keyed row for the fixed
// Blueprint metadata records wins when the tag's declared shape matches the
// row; every other tag is decoded by its declared type. Struct payloads are
// decoded through the struct table, with unknown structs kept as raw bytes.
//
// Registering a decoder for a project-specific type:
//
//	r := property.NewDefaultRegistry()
//	r.RegisterTypeFunc("MyCustomProperty", func(ctx *property.Context, tag *property.Tag) ([]property.Value, error) {
//	    b, err := ctx.Cursor.ReadBytes(tag.Size)
//	    return []property.Value{property.Bytes(tag.ValueName(), b)}, err
//	})
//
// Value names encode their position: "Name[2]" for array elements and static
// array indices, "Name.Member" for struct members and "Name[0].Key" for map
// entries.
package property
