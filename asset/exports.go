package asset

import (
	"strconv"

	"github.com/wippyai/uasset/errors"
	"github.com/wippyai/uasset/guid"
	"github.com/wippyai/uasset/internal/binary"
	"github.com/wippyai/uasset/property"
)

// ExportMetadata names an export for display.
type ExportMetadata struct {
	ObjectType string `json:"objectType"`
	ObjectName string `json:"objectName"`
}

// ExportEntry is an object defined in this package. Its tagged-property
// stream occupies [SerialOffset, SerialOffset+SerialSize).
type ExportEntry struct {
	// Index is the export's position in the table; Offset the record start.
	Index  int   `json:"index"`
	Offset int64 `json:"recordOffset"`

	ClassIndex    int32   `json:"classIndex"`
	SuperIndex    int32   `json:"superIndex"`
	TemplateIndex int32   `json:"templateIndex"`
	OuterIndex    int32   `json:"outerIndex"`
	ObjectName    NameRef `json:"objectName"`
	ObjectFlags   uint32  `json:"objectFlags"`
	SerialSize    int64   `json:"serialSize"`
	SerialOffset  int64   `json:"serialOffset"`

	ForcedExport bool      `json:"forcedExport"`
	NotForClient bool      `json:"notForClient"`
	NotForServer bool      `json:"notForServer"`
	PackageGUID  guid.GUID `json:"packageGuid"`
	PackageFlags uint32    `json:"packageFlags"`

	NotAlwaysLoadedForEditorGame bool `json:"notAlwaysLoadedForEditorGame"`
	IsAsset                      bool `json:"isAsset"`
	GeneratePublicHash           bool `json:"generatePublicHash"`

	FirstExportDependency                        int32 `json:"firstExportDependency"`
	SerializationBeforeSerializationDependencies int32 `json:"serializationBeforeSerializationDependencies"`
	CreateBeforeSerializationDependencies        int32 `json:"createBeforeSerializationDependencies"`
	SerializationBeforeCreateDependencies        int32 `json:"serializationBeforeCreateDependencies"`
	CreateBeforeCreateDependencies               int32 `json:"createBeforeCreateDependencies"`

	Metadata   ExportMetadata   `json:"metadata"`
	Properties []property.Value `json:"properties"`
	// Stream records how property decoding ended for this export.
	Stream property.Status `json:"-"`
}

// decodeExports reads header.ExportCount fixed-size records. Record i always
// starts at exportOffset + i*ExportRecordSize.
func decodeExports(c *binary.Cursor, h *Header) ([]ExportEntry, error) {
	if h.ExportCount == 0 {
		return nil, nil
	}

	base := int64(h.ExportOffset)
	tableSize := int64(h.ExportCount) * ExportRecordSize
	if base+tableSize > c.End() {
		e := errors.OutOfBounds(errors.PhaseExports, base, tableSize, c.End()-base)
		e.Path = []string{"exports"}
		return nil, e
	}

	exports := make([]ExportEntry, 0, h.ExportCount)
	for i := 0; i < int(h.ExportCount); i++ {
		start := base + int64(i)*ExportRecordSize
		path := []string{"exports", strconv.Itoa(i)}

		win, err := c.Window(start, ExportRecordSize)
		if err != nil {
			return nil, errors.At(errors.PhaseExports, err, path...)
		}
		exp, err := readExport(win, h)
		if err != nil {
			return nil, errors.At(errors.PhaseExports, err, path...)
		}
		exp.Index = i
		exp.Offset = start

		if exp.SerialSize < 0 || exp.SerialOffset < 0 || exp.SerialOffset > c.End() || exp.SerialSize > c.End()-exp.SerialOffset {
			return nil, errors.New(errors.PhaseExports, errors.KindOutOfBounds).
				Path(path...).
				Offset(exp.SerialOffset).
				Detail("serial range %d+%d exceeds file length %d", exp.SerialOffset, exp.SerialSize, c.End()).
				Build()
		}
		exports = append(exports, exp)
	}
	return exports, nil
}

func readExport(win *binary.Cursor, h *Header) (ExportEntry, error) {
	e := ExportEntry{FirstExportDependency: -1}

	ints := []*int32{&e.ClassIndex, &e.SuperIndex, &e.TemplateIndex, &e.OuterIndex}
	for _, dst := range ints {
		v, err := win.ReadI32()
		if err != nil {
			return e, err
		}
		*dst = v
	}

	var err error
	if e.ObjectName, err = win.ReadNameRef(); err != nil {
		return e, err
	}
	if e.ObjectFlags, err = win.ReadU32(); err != nil {
		return e, err
	}

	size, err := win.ReadLE64()
	if err != nil {
		return e, err
	}
	offset, err := win.ReadLE64()
	if err != nil {
		return e, err
	}
	e.SerialSize, e.SerialOffset = int64(size), int64(offset)

	flags := []*bool{&e.ForcedExport, &e.NotForClient, &e.NotForServer}
	for _, dst := range flags {
		v, err := win.ReadI32()
		if err != nil {
			return e, err
		}
		*dst = v != 0
	}

	if e.PackageGUID, err = win.ReadGUID(); err != nil {
		return e, err
	}
	if e.PackageFlags, err = win.ReadU32(); err != nil {
		return e, err
	}

	flags = []*bool{&e.NotAlwaysLoadedForEditorGame, &e.IsAsset}
	for _, dst := range flags {
		v, err := win.ReadI32()
		if err != nil {
			return e, err
		}
		*dst = v != 0
	}

	// The gated tail is read only while the record has room for it.
	if h.UE5Version >= VerUE5OptionalResources && win.Remaining() >= 4 {
		v, err := win.ReadI32()
		if err != nil {
			return e, err
		}
		e.GeneratePublicHash = v != 0
	}
	if h.UE4Version >= VerUE4PreloadDependenciesInCookedExports {
		deps := []*int32{
			&e.FirstExportDependency,
			&e.SerializationBeforeSerializationDependencies,
			&e.CreateBeforeSerializationDependencies,
			&e.SerializationBeforeCreateDependencies,
			&e.CreateBeforeCreateDependencies,
		}
		for _, dst := range deps {
			if win.Remaining() < 4 {
				break
			}
			if *dst, err = win.ReadI32(); err != nil {
				return e, err
			}
		}
	}
	return e, nil
}
