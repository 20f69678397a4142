package asset

import (
	"fmt"

	"github.com/wippyai/uasset/errors"
	"github.com/wippyai/uasset/guid"
	"github.com/wippyai/uasset/internal/binary"
)

// CustomVersion is one (key, version) entry of the custom version list.
type CustomVersion struct {
	Key     guid.GUID `json:"key"`
	Version int32     `json:"version"`
}

// Generation records the table sizes of an earlier save.
type Generation struct {
	ExportCount int32 `json:"exportCount"`
	NameCount   int32 `json:"nameCount"`
}

// EngineVersion identifies the engine build that wrote or can read a package.
type EngineVersion struct {
	Branch     string `json:"branch"`
	Changelist uint32 `json:"changelist"`
	Major      uint16 `json:"major"`
	Minor      uint16 `json:"minor"`
	Patch      uint16 `json:"patch"`
}

// String renders Major.Minor.Patch-Changelist+Branch.
func (v EngineVersion) String() string {
	return fmt.Sprintf("%d.%d.%d-%d+%s", v.Major, v.Minor, v.Patch, v.Changelist, v.Branch)
}

// Header is the package summary at the start of the file.
//
// Fields whose version gate is closed keep their zero value, except
// PreloadDependencyCount and PayloadTocOffset which default to -1.
type Header struct {
	Tag               uint32 `json:"tag"`
	LegacyFileVersion int32  `json:"legacyFileVersion"`
	LegacyUE3Version  int32  `json:"legacyUE3Version"`
	UE4Version        int32  `json:"ue4Version"`
	UE5Version        int32  `json:"ue5Version"`
	LicenseeVersion   int32  `json:"licenseeVersion"`

	CustomVersions []CustomVersion `json:"customVersions"`

	TotalHeaderSize int32  `json:"totalHeaderSize"`
	FolderName      string `json:"folderName"`
	PackageFlags    uint32 `json:"packageFlags"`

	NameCount             int32  `json:"nameCount"`
	NameOffset            int32  `json:"nameOffset"`
	SoftObjectPathsCount  int32  `json:"softObjectPathsCount"`
	SoftObjectPathsOffset int32  `json:"softObjectPathsOffset"`
	LocalizationID        string `json:"localizationId"`
	GatherableTextCount   int32  `json:"gatherableTextCount"`
	GatherableTextOffset  int32  `json:"gatherableTextOffset"`

	ExportCount   int32 `json:"exportCount"`
	ExportOffset  int32 `json:"exportOffset"`
	ImportCount   int32 `json:"importCount"`
	ImportOffset  int32 `json:"importOffset"`
	DependsOffset int32 `json:"dependsOffset"`

	SoftPackageReferencesCount  int32 `json:"softPackageReferencesCount"`
	SoftPackageReferencesOffset int32 `json:"softPackageReferencesOffset"`
	SearchableNamesOffset       int32 `json:"searchableNamesOffset"`
	ThumbnailTableOffset        int32 `json:"thumbnailTableOffset"`

	GUID                guid.GUID `json:"guid"`
	PersistentGUID      guid.GUID `json:"persistentGuid"`
	OwnerPersistentGUID guid.GUID `json:"ownerPersistentGuid"`

	Generations []Generation `json:"generations"`

	// EngineChangelist is set only when the file predates the composite
	// engine version.
	EngineChangelist int32         `json:"engineChangelist"`
	SavedBy          EngineVersion `json:"savedByEngineVersion"`
	CompatibleWith   EngineVersion `json:"compatibleWithEngineVersion"`

	CompressionFlags        uint32 `json:"compressionFlags"`
	PackageSource           uint32 `json:"packageSource"`
	NumTextureAllocations   int32  `json:"numTextureAllocations"`
	AssetRegistryDataOffset int32  `json:"assetRegistryDataOffset"`
	BulkDataStartOffset     int64  `json:"bulkDataStartOffset"`
	WorldTileInfoDataOffset int32  `json:"worldTileInfoDataOffset"`

	PreloadDependencyCount             int32 `json:"preloadDependencyCount"`
	PreloadDependencyOffset            int32 `json:"preloadDependencyOffset"`
	NamesReferencedFromExportDataCount int32 `json:"namesReferencedFromExportDataCount"`
	PayloadTocOffset                   int64 `json:"payloadTocOffset"`
	DataResourceOffset                 int32 `json:"dataResourceOffset"`
}

// IsUE5 reports whether the file carries a UE5 version field.
func (h *Header) IsUE5() bool {
	return h.LegacyFileVersion <= LegacyVersionUE5
}

// headerReader decodes the summary field by field. Each field's presence can
// depend on one read before it, so the order below is fixed.
type headerReader struct {
	c   *binary.Cursor
	h   *Header
	err error
}

func (r *headerReader) i32(dst *int32, field string) {
	if r.err != nil {
		return
	}
	v, err := r.c.ReadI32()
	if err != nil {
		r.err = errors.At(errors.PhaseHeader, err, "header", field)
		return
	}
	*dst = v
}

func (r *headerReader) u32(dst *uint32, field string) {
	if r.err != nil {
		return
	}
	v, err := r.c.ReadU32()
	if err != nil {
		r.err = errors.At(errors.PhaseHeader, err, "header", field)
		return
	}
	*dst = v
}

func (r *headerReader) i64(dst *int64, field string) {
	if r.err != nil {
		return
	}
	v, err := r.c.ReadI64()
	if err != nil {
		r.err = errors.At(errors.PhaseHeader, err, "header", field)
		return
	}
	*dst = v
}

func (r *headerReader) str(dst *string, field string) {
	if r.err != nil {
		return
	}
	v, err := r.c.ReadFString()
	if err != nil {
		r.err = errors.At(errors.PhaseHeader, err, "header", field)
		return
	}
	*dst = v
}

func (r *headerReader) guid(dst *guid.GUID, field string) {
	if r.err != nil {
		return
	}
	v, err := r.c.ReadGUID()
	if err != nil {
		r.err = errors.At(errors.PhaseHeader, err, "header", field)
		return
	}
	*dst = v
}

func (r *headerReader) engineVersion(dst *EngineVersion, field string) {
	if r.err != nil {
		return
	}
	var v EngineVersion
	var err error
	if v.Major, err = r.c.ReadU16(); err == nil {
		if v.Minor, err = r.c.ReadU16(); err == nil {
			if v.Patch, err = r.c.ReadU16(); err == nil {
				if v.Changelist, err = r.c.ReadU32(); err == nil {
					v.Branch, err = r.c.ReadFString()
				}
			}
		}
	}
	if err != nil {
		r.err = errors.At(errors.PhaseHeader, err, "header", field)
		return
	}
	*dst = v
}

// count reads a list length and checks that count records of recordSize
// bytes can fit in what is left of the buffer.
func (r *headerReader) count(field string, recordSize int64) int {
	var n int32
	r.i32(&n, field)
	if r.err != nil {
		return 0
	}
	if n < 0 {
		r.err = errors.New(errors.PhaseHeader, errors.KindInvalidData).
			Path("header", field).
			Offset(r.c.Position() - 4).
			Detail("negative count %d", n).
			Value(n).
			Build()
		return 0
	}
	if int64(n)*recordSize > r.c.Remaining() {
		e := errors.OutOfBounds(errors.PhaseHeader, r.c.Position(), int64(n)*recordSize, r.c.Remaining())
		e.Path = []string{"header", field}
		r.err = e
		return 0
	}
	return int(n)
}

func (r *headerReader) fail(err *errors.Error) {
	if r.err == nil {
		r.err = err
	}
}

// decodeHeader reads the package summary from the start of the buffer.
func decodeHeader(c *binary.Cursor) (*Header, error) {
	h := &Header{}
	r := &headerReader{c: c, h: h}

	r.u32(&h.Tag, "tag")
	if r.err == nil && h.Tag != PackageTag {
		if h.Tag == PackageTagSwapped {
			r.fail(errors.FormatUnsupported(errors.PhaseHeader, "byte-swapped package"))
		} else {
			r.fail(errors.New(errors.PhaseHeader, errors.KindInvalidData).
				Path("header", "tag").
				Offset(0).
				Detail("bad package tag 0x%08x", h.Tag).
				Value(h.Tag).
				Build())
		}
	}

	r.i32(&h.LegacyFileVersion, "legacyFileVersion")
	r.i32(&h.LegacyUE3Version, "legacyUE3Version")
	r.i32(&h.UE4Version, "ue4Version")
	if h.LegacyFileVersion <= LegacyVersionUE5 {
		r.i32(&h.UE5Version, "ue5Version")
	}
	r.i32(&h.LicenseeVersion, "licenseeVersion")

	n := r.count("customVersions", guid.Size+4)
	for i := 0; i < n && r.err == nil; i++ {
		var cv CustomVersion
		r.guid(&cv.Key, "customVersions")
		r.i32(&cv.Version, "customVersions")
		h.CustomVersions = append(h.CustomVersions, cv)
	}

	r.i32(&h.TotalHeaderSize, "totalHeaderSize")
	r.str(&h.FolderName, "folderName")
	r.u32(&h.PackageFlags, "packageFlags")
	r.i32(&h.NameCount, "nameCount")
	r.i32(&h.NameOffset, "nameOffset")

	if h.UE5Version >= VerUE5AddSoftObjectPathList {
		r.i32(&h.SoftObjectPathsCount, "softObjectPathsCount")
		r.i32(&h.SoftObjectPathsOffset, "softObjectPathsOffset")
	}

	r.str(&h.LocalizationID, "localizationId")

	if h.UE4Version >= VerUE4SerializeTextInPackages {
		r.i32(&h.GatherableTextCount, "gatherableTextCount")
		r.i32(&h.GatherableTextOffset, "gatherableTextOffset")
	}

	r.i32(&h.ExportCount, "exportCount")
	r.i32(&h.ExportOffset, "exportOffset")
	r.i32(&h.ImportCount, "importCount")
	r.i32(&h.ImportOffset, "importOffset")
	r.i32(&h.DependsOffset, "dependsOffset")

	if h.UE4Version >= VerUE4AddStringAssetReferencesMap {
		r.i32(&h.SoftPackageReferencesCount, "softPackageReferencesCount")
		r.i32(&h.SoftPackageReferencesOffset, "softPackageReferencesOffset")
	}
	if h.UE4Version >= VerUE4AddedSearchableNames {
		r.i32(&h.SearchableNamesOffset, "searchableNamesOffset")
	}

	r.i32(&h.ThumbnailTableOffset, "thumbnailTableOffset")
	r.guid(&h.GUID, "guid")

	if h.UE4Version >= VerUE4AddedPackageOwner {
		r.guid(&h.PersistentGUID, "persistentGuid")
		if h.UE4Version < VerUE4NonOuterPackageImport {
			r.guid(&h.OwnerPersistentGUID, "ownerPersistentGuid")
		}
	}

	n = r.count("generations", 8)
	for i := 0; i < n && r.err == nil; i++ {
		var g Generation
		r.i32(&g.ExportCount, "generations")
		r.i32(&g.NameCount, "generations")
		h.Generations = append(h.Generations, g)
	}

	if h.UE4Version >= VerUE4EngineVersionObject {
		r.engineVersion(&h.SavedBy, "savedByEngineVersion")
	} else {
		r.i32(&h.EngineChangelist, "engineChangelist")
	}
	if h.UE4Version >= VerUE4PackageSummaryHasCompatibleEngineVersion {
		r.engineVersion(&h.CompatibleWith, "compatibleWithEngineVersion")
	} else {
		h.CompatibleWith = h.SavedBy
	}

	r.u32(&h.CompressionFlags, "compressionFlags")

	var compressedChunks int32
	r.i32(&compressedChunks, "compressedChunks")
	if r.err == nil && compressedChunks > 0 {
		r.fail(errors.FormatUnsupported(errors.PhaseHeader,
			fmt.Sprintf("package is compressed (%d chunks)", compressedChunks)))
	}

	r.u32(&h.PackageSource, "packageSource")

	var additionalPackages uint32
	r.u32(&additionalPackages, "additionalPackagesToCook")
	if r.err == nil && additionalPackages > 0 {
		r.fail(errors.FormatUnsupported(errors.PhaseHeader,
			fmt.Sprintf("package lists %d additional packages to cook", additionalPackages)))
	}

	if h.LegacyFileVersion > LegacyVersionNoTextureAllocations {
		r.i32(&h.NumTextureAllocations, "numTextureAllocations")
	}

	r.i32(&h.AssetRegistryDataOffset, "assetRegistryDataOffset")
	r.i64(&h.BulkDataStartOffset, "bulkDataStartOffset")

	if h.UE4Version >= VerUE4WorldLevelInfo {
		r.i32(&h.WorldTileInfoDataOffset, "worldTileInfoDataOffset")
	}

	if h.UE4Version >= VerUE4ChangedChunkIDToBeAnArrayOfChunkIDs {
		var chunkIDs int32
		r.i32(&chunkIDs, "chunkIds")
		switch {
		case r.err != nil:
		case chunkIDs < 0:
			r.fail(errors.InvalidData(errors.PhaseHeader, []string{"header", "chunkIds"},
				fmt.Sprintf("negative count %d", chunkIDs)))
		case chunkIDs > 0:
			r.fail(errors.UnsupportedMetadata(errors.PhaseHeader, "chunk id list", int64(chunkIDs)))
		}
	}

	if h.UE4Version >= VerUE4PreloadDependenciesInCookedExports {
		r.i32(&h.PreloadDependencyCount, "preloadDependencyCount")
		r.i32(&h.PreloadDependencyOffset, "preloadDependencyOffset")
	} else {
		h.PreloadDependencyCount = -1
		h.PreloadDependencyOffset = 0
	}

	if h.UE5Version >= VerUE5NamesReferencedFromExportData {
		r.i32(&h.NamesReferencedFromExportDataCount, "namesReferencedFromExportDataCount")
	}
	if h.UE5Version >= VerUE5PayloadToc {
		r.i64(&h.PayloadTocOffset, "payloadTocOffset")
	} else {
		h.PayloadTocOffset = -1
	}
	if h.UE5Version >= VerUE5DataResources {
		r.i32(&h.DataResourceOffset, "dataResourceOffset")
	}

	if r.err != nil {
		return nil, r.err
	}
	if err := h.validate(c.End()); err != nil {
		return nil, err
	}
	return h, nil
}

// validate checks counts and offsets against the buffer length.
func (h *Header) validate(size int64) error {
	counts := []struct {
		name string
		v    int32
	}{
		{"nameCount", h.NameCount},
		{"importCount", h.ImportCount},
		{"exportCount", h.ExportCount},
		{"gatherableTextCount", h.GatherableTextCount},
		{"softPackageReferencesCount", h.SoftPackageReferencesCount},
		{"softObjectPathsCount", h.SoftObjectPathsCount},
		{"namesReferencedFromExportDataCount", h.NamesReferencedFromExportDataCount},
	}
	for _, c := range counts {
		if c.v < 0 {
			return errors.New(errors.PhaseHeader, errors.KindInvalidData).
				Path("header", c.name).
				Detail("negative count %d", c.v).
				Value(c.v).
				Build()
		}
	}
	if h.PreloadDependencyCount < -1 {
		return errors.InvalidData(errors.PhaseHeader, []string{"header", "preloadDependencyCount"},
			fmt.Sprintf("invalid count %d", h.PreloadDependencyCount))
	}

	// Tables this package reads must have a non-negative offset.
	tables := []struct {
		name string
		v    int32
	}{
		{"nameOffset", h.NameOffset},
		{"importOffset", h.ImportOffset},
		{"exportOffset", h.ExportOffset},
	}
	for _, t := range tables {
		if t.v < 0 {
			return errors.New(errors.PhaseHeader, errors.KindInvalidData).
				Path("header", t.name).
				Detail("negative offset %d", t.v).
				Value(t.v).
				Build()
		}
	}

	offsets := []struct {
		name string
		v    int32
	}{
		{"nameOffset", h.NameOffset},
		{"importOffset", h.ImportOffset},
		{"exportOffset", h.ExportOffset},
		{"dependsOffset", h.DependsOffset},
		{"softObjectPathsOffset", h.SoftObjectPathsOffset},
		{"gatherableTextOffset", h.GatherableTextOffset},
		{"softPackageReferencesOffset", h.SoftPackageReferencesOffset},
		{"searchableNamesOffset", h.SearchableNamesOffset},
		{"thumbnailTableOffset", h.ThumbnailTableOffset},
		{"assetRegistryDataOffset", h.AssetRegistryDataOffset},
		{"worldTileInfoDataOffset", h.WorldTileInfoDataOffset},
		{"preloadDependencyOffset", h.PreloadDependencyOffset},
		{"dataResourceOffset", h.DataResourceOffset},
	}
	for _, o := range offsets {
		if int64(o.v) > size {
			return errors.New(errors.PhaseHeader, errors.KindOutOfBounds).
				Path("header", o.name).
				Offset(int64(o.v)).
				Detail("offset beyond file length %d", size).
				Value(o.v).
				Build()
		}
	}
	return nil
}
