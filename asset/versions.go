package asset

// PackageTag is the leading magic of every package file.
const (
	PackageTag        uint32 = 0x9E2A83C1
	PackageTagSwapped uint32 = 0xC1832A9E
)

// ExportRecordSize is the fixed stride of export table records.
const ExportRecordSize = 96

// Legacy file version gates. The legacy counter grows more negative.
const (
	// LegacyVersionUE5 and below carry a UE5 version field.
	LegacyVersionUE5 int32 = -8
	// Above LegacyVersionNoTextureAllocations the texture allocation count is present.
	LegacyVersionNoTextureAllocations int32 = -7
)

// UE4 file version gates.
const (
	VerUE4AddStringAssetReferencesMap              int32 = 0x0154
	VerUE4AddedSearchableNames                     int32 = 0x0163
	VerUE4AddedPackageOwner                        int32 = 0x0166
	VerUE4EngineVersionObject                      int32 = 0x0171
	VerUE4PackageSummaryHasCompatibleEngineVersion int32 = 0x0175
	VerUE4NonOuterPackageImport                    int32 = 0x0183
	VerUE4WorldLevelInfo                           int32 = 0x0183
	VerUE4ChangedChunkIDToBeAnArrayOfChunkIDs      int32 = 0x0191
	VerUE4PreloadDependenciesInCookedExports       int32 = 0x0194
	VerUE4SerializeTextInPackages                  int32 = 0x0E14
)

// UE5 file version gates.
const (
	VerUE5AddSoftObjectPathList         int32 = 0x0151
	VerUE5NamesReferencedFromExportData int32 = 0x0196
	VerUE5PayloadToc                    int32 = 0x0197
	VerUE5DataResources                 int32 = 0x0198
	VerUE5OptionalResources             int32 = 1003
)
