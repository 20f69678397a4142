package fixture

import (
	"github.com/wippyai/uasset/guid"
	"github.com/wippyai/uasset/internal/binary"
)

// Version gates mirrored from the decoder. Kept here as plain numbers so the
// builder does not import the package it produces input for.
const (
	tag               uint32 = 0x9E2A83C1
	legacyUE5         int32  = -8
	legacyNoTexAlloc  int32  = -7
	ue4SoftPackageRef int32  = 0x0154
	ue4Searchable     int32  = 0x0163
	ue4PackageOwner   int32  = 0x0166
	ue4EngineVersion  int32  = 0x0171
	ue4Compatible     int32  = 0x0175
	ue4NonOuter       int32  = 0x0183
	ue4ChunkIDs       int32  = 0x0191
	ue4Preload        int32  = 0x0194
	ue4GatherableText int32  = 0x0E14
	ue5SoftObjectPath int32  = 0x0151
	ue5NamesRefd      int32  = 0x0196
	ue5PayloadToc     int32  = 0x0197
	ue5DataResources  int32  = 0x0198
	ue5Optional       int32  = 1003

	exportRecordSize = 96
)

// Gates maps the decoder constant each mirrored value copies to the value.
var Gates = map[string]int32{
	"LegacyVersionUE5":                               legacyUE5,
	"LegacyVersionNoTextureAllocations":              legacyNoTexAlloc,
	"VerUE4AddStringAssetReferencesMap":              ue4SoftPackageRef,
	"VerUE4AddedSearchableNames":                     ue4Searchable,
	"VerUE4AddedPackageOwner":                        ue4PackageOwner,
	"VerUE4EngineVersionObject":                      ue4EngineVersion,
	"VerUE4PackageSummaryHasCompatibleEngineVersion": ue4Compatible,
	"VerUE4NonOuterPackageImport":                    ue4NonOuter,
	"VerUE4WorldLevelInfo":                           ue4NonOuter,
	"VerUE4ChangedChunkIDToBeAnArrayOfChunkIDs":      ue4ChunkIDs,
	"VerUE4PreloadDependenciesInCookedExports":       ue4Preload,
	"VerUE4SerializeTextInPackages":                  ue4GatherableText,
	"VerUE5AddSoftObjectPathList":                    ue5SoftObjectPath,
	"VerUE5NamesReferencedFromExportData":            ue5NamesRefd,
	"VerUE5PayloadToc":                               ue5PayloadToc,
	"VerUE5DataResources":                            ue5DataResources,
	"VerUE5OptionalResources":                        ue5Optional,
	"ExportRecordSize":                               exportRecordSize,
}

// PackageTag is the leading magic Build writes by default.
const PackageTag = tag

// Common version sets.
const (
	// UE5 style: legacy -8 with a UE5 counter past every gate.
	LegacyUE5   int32 = -8
	UE4Modern   int32 = 0x0194
	UE5Modern   int32 = 1004
	LegacyUE4   int32 = -7
	LegacyOld   int32 = -5
	UE4Original int32 = 0x0100
)

// Import describes one import record.
type Import struct {
	ClassPackage string
	ClassName    string
	ObjectName   string
	PackageName  string
	Outer        int32
	Optional     bool
}

// Export describes one export record and its serialized data.
type Export struct {
	Class    int32
	Super    int32
	Template int32
	Outer    int32
	Name     string
	Number   int32
	Flags    uint32
	IsAsset  bool
	Data     []byte

	// SerialSize, when non-zero, replaces len(Data) in the record.
	SerialSize int64
}

// Thumbnail describes one thumbnail table entry.
type Thumbnail struct {
	ClassName  string
	ObjectPath string
	Width      int32
	Height     int32
	JPEG       bool
	Data       []byte
}

// RegistryEntry describes one asset registry record.
type RegistryEntry struct {
	ObjectPath  string
	ObjectClass string
	Tags        [][2]string
}

// EngineVersion is the composite engine version.
type EngineVersion struct {
	Major, Minor, Patch uint16
	Changelist          uint32
	Branch              string
}

// Package lays out a whole package file.
type Package struct {
	Names *Names

	Tag      uint32 // 0 writes the package tag
	Legacy   int32
	UE3      int32
	UE4      int32
	UE5      int32
	Licensee int32

	CustomVersions []guid.GUID
	FolderName     string
	PackageFlags   uint32
	GUID           guid.GUID
	Persistent     guid.GUID
	Generations    [][2]int32
	SavedBy        EngineVersion
	Changelist     int32

	CompressedChunks   int32
	AdditionalPackages uint32
	ChunkIDs           int32

	Imports       []Import
	Exports       []Export
	Thumbnails    []Thumbnail
	AssetRegistry []RegistryEntry
}

// NewPackage returns a UE5 package over names.
func NewPackage(names *Names) *Package {
	return &Package{
		Names:      names,
		Legacy:     LegacyUE5,
		UE4:        UE4Modern,
		UE5:        UE5Modern,
		FolderName: "None",
		SavedBy:    EngineVersion{Major: 5, Minor: 3, Patch: 2, Changelist: 29314046, Branch: "++UE5+Release-5.3"},
	}
}

// Layout reports where Build placed each section.
type Layout struct {
	NameOffset      int
	ImportOffset    int
	ExportOffset    int
	SerialOffsets   []int
	ThumbnailOffset int
	RegistryOffset  int
}

// patches records header slots filled in after the sections are placed.
type patches struct {
	totalHeaderSize int
	nameOffset      int
	exportOffset    int
	importOffset    int
	thumbnails      int
	registry        int
}

// Build returns the encoded file.
func (p *Package) Build() []byte {
	data, _ := p.BuildWithLayout()
	return data
}

// BuildWithLayout returns the encoded file and its section offsets.
func (p *Package) BuildWithLayout() ([]byte, Layout) {
	// Intern every name before the name table is written.
	for _, imp := range p.Imports {
		p.Names.Index(imp.ClassPackage)
		p.Names.Index(imp.ClassName)
		p.Names.Index(imp.ObjectName)
		p.Names.Index(imp.PackageName)
	}
	for _, e := range p.Exports {
		p.Names.Index(e.Name)
	}

	w := binary.NewWriter()
	slots := p.writeHeader(w)

	var lay Layout
	lay.NameOffset = w.Len()
	w.PatchI32(slots.nameOffset, int32(lay.NameOffset))
	for _, n := range p.Names.List() {
		w.FString(n)
		w.U16(0)
		w.U16(0)
	}

	lay.ImportOffset = w.Len()
	w.PatchI32(slots.importOffset, int32(lay.ImportOffset))
	for _, imp := range p.Imports {
		p.writeImport(w, imp)
	}

	lay.ExportOffset = w.Len()
	w.PatchI32(slots.exportOffset, int32(lay.ExportOffset))
	serial := make([]int, len(p.Exports))
	for i, e := range p.Exports {
		serial[i] = p.writeExport(w, e)
	}
	w.PatchI32(slots.totalHeaderSize, int32(w.Len()))

	for i, e := range p.Exports {
		off := w.Len()
		lay.SerialOffsets = append(lay.SerialOffsets, off)
		size := int64(len(e.Data))
		if e.SerialSize != 0 {
			size = e.SerialSize
		}
		w.PatchI64(serial[i], size)
		w.PatchI64(serial[i]+8, int64(off))
		w.WriteBytes(e.Data)
	}

	if len(p.Thumbnails) > 0 {
		lay.ThumbnailOffset = w.Len()
		w.PatchI32(slots.thumbnails, int32(lay.ThumbnailOffset))
		p.writeThumbnails(w)
	}
	if len(p.AssetRegistry) > 0 {
		lay.RegistryOffset = w.Len()
		w.PatchI32(slots.registry, int32(lay.RegistryOffset))
		p.writeRegistry(w)
	}
	return w.Bytes(), lay
}

func (p *Package) writeHeader(w *binary.Writer) patches {
	var s patches

	if p.Tag == 0 {
		w.U32(tag)
	} else {
		w.U32(p.Tag)
	}
	w.I32(p.Legacy)
	w.I32(p.UE3)
	w.I32(p.UE4)
	if p.Legacy <= legacyUE5 {
		w.I32(p.UE5)
	}
	w.I32(p.Licensee)

	w.I32(int32(len(p.CustomVersions)))
	for i, key := range p.CustomVersions {
		w.GUID(key)
		w.I32(int32(i + 1))
	}

	s.totalHeaderSize = w.Len()
	w.I32(0)
	w.FString(p.FolderName)
	w.U32(p.PackageFlags)
	w.I32(int32(p.Names.Len()))
	s.nameOffset = w.Len()
	w.I32(0)

	ue5 := p.ue5()
	if ue5 >= ue5SoftObjectPath {
		w.I32(0)
		w.I32(0)
	}
	w.FString("")
	if p.UE4 >= ue4GatherableText {
		w.I32(0)
		w.I32(0)
	}

	w.I32(int32(len(p.Exports)))
	s.exportOffset = w.Len()
	w.I32(0)
	w.I32(int32(len(p.Imports)))
	s.importOffset = w.Len()
	w.I32(0)
	w.I32(0) // depends

	if p.UE4 >= ue4SoftPackageRef {
		w.I32(0)
		w.I32(0)
	}
	if p.UE4 >= ue4Searchable {
		w.I32(0)
	}

	s.thumbnails = w.Len()
	w.I32(0)
	w.GUID(p.GUID)

	if p.UE4 >= ue4PackageOwner {
		w.GUID(p.Persistent)
		if p.UE4 < ue4NonOuter {
			w.GUID(guid.GUID{})
		}
	}

	w.I32(int32(len(p.Generations)))
	for _, g := range p.Generations {
		w.I32(g[0])
		w.I32(g[1])
	}

	if p.UE4 >= ue4EngineVersion {
		writeEngineVersion(w, p.SavedBy)
	} else {
		w.I32(p.Changelist)
	}
	if p.UE4 >= ue4Compatible {
		writeEngineVersion(w, p.SavedBy)
	}

	w.U32(0) // compression flags
	w.I32(p.CompressedChunks)
	w.U32(0) // package source
	w.U32(p.AdditionalPackages)

	if p.Legacy > legacyNoTexAlloc {
		w.I32(0)
	}

	s.registry = w.Len()
	w.I32(0)
	w.I64(0) // bulk data start

	if p.UE4 >= ue4NonOuter {
		w.I32(0) // world tile info
	}
	if p.UE4 >= ue4ChunkIDs {
		w.I32(p.ChunkIDs)
	}
	if p.UE4 >= ue4Preload {
		w.I32(0)
		w.I32(0)
	}

	if ue5 >= ue5NamesRefd {
		w.I32(0)
	}
	if ue5 >= ue5PayloadToc {
		w.I64(-1)
	}
	if ue5 >= ue5DataResources {
		w.I32(0)
	}
	return s
}

func writeEngineVersion(w *binary.Writer, v EngineVersion) {
	w.U16(v.Major)
	w.U16(v.Minor)
	w.U16(v.Patch)
	w.U32(v.Changelist)
	w.FString(v.Branch)
}

func (p *Package) ue5() int32 {
	if p.Legacy > legacyUE5 {
		return 0
	}
	return p.UE5
}

func (p *Package) writeImport(w *binary.Writer, imp Import) {
	w.NameRef(p.Names.Index(imp.ClassPackage), 0)
	w.NameRef(p.Names.Index(imp.ClassName), 0)
	w.I32(imp.Outer)
	w.NameRef(p.Names.Index(imp.ObjectName), 0)
	if p.UE4 >= ue4NonOuter {
		w.NameRef(p.Names.Index(imp.PackageName), 0)
	}
	if p.ue5() >= ue5Optional {
		if imp.Optional {
			w.I32(1)
		} else {
			w.I32(0)
		}
	}
}

// writeExport writes one 96-byte record and returns the position of its
// serial size slot.
func (p *Package) writeExport(w *binary.Writer, e Export) int {
	r := binary.NewWriter()
	r.I32(e.Class)
	r.I32(e.Super)
	r.I32(e.Template)
	r.I32(e.Outer)
	r.NameRef(p.Names.Index(e.Name), e.Number)
	r.U32(e.Flags)
	serial := r.Len()
	r.I64(0)
	r.I64(0)
	r.I32(0) // forced
	r.I32(0) // not for client
	r.I32(0) // not for server
	r.GUID(guid.GUID{})
	r.U32(0)
	r.I32(0) // not always loaded for editor game
	if e.IsAsset {
		r.I32(1)
	} else {
		r.I32(0)
	}
	if p.ue5() >= ue5Optional {
		r.I32(0)
	}
	if p.UE4 >= ue4Preload {
		r.I32(-1)
		for i := 0; i < 4; i++ {
			r.I32(0)
		}
	}

	rec := r.Bytes()
	if len(rec) > exportRecordSize {
		rec = rec[:exportRecordSize]
	}
	start := w.Len()
	w.WriteBytes(rec)
	w.Zeros(exportRecordSize - len(rec))
	return start + serial
}

func (p *Package) writeThumbnails(w *binary.Writer) {
	w.I32(int32(len(p.Thumbnails)))
	slots := make([]int, len(p.Thumbnails))
	for i, t := range p.Thumbnails {
		w.FString(t.ClassName)
		w.FString(t.ObjectPath)
		slots[i] = w.Len()
		w.I32(0)
	}
	for i, t := range p.Thumbnails {
		w.PatchI32(slots[i], int32(w.Len()))
		w.I32(t.Width)
		if t.JPEG {
			w.I32(-t.Height)
		} else {
			w.I32(t.Height)
		}
		w.I32(int32(len(t.Data)))
		w.WriteBytes(t.Data)
	}
}

func (p *Package) writeRegistry(w *binary.Writer) {
	w.I32(int32(len(p.AssetRegistry)))
	for _, e := range p.AssetRegistry {
		w.FString(e.ObjectPath)
		w.FString(e.ObjectClass)
		w.I32(int32(len(e.Tags)))
		for _, kv := range e.Tags {
			w.FString(kv[0])
			w.FString(kv[1])
		}
	}
}
