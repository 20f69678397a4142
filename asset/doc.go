// Package asset decodes Unreal Engine package files (.uasset, .umap).
//
// A package is decoded from one fully loaded byte buffer in a fixed order:
// the package summary (Header), the name table, the import table, the export
// table and finally each export's tagged-property stream.
//
//	data, err := os.ReadFile("BP_Door.uasset")
//	if err != nil {
//	    return err
//	}
//	pkg, err := asset.Decode(data)
//	if err != nil {
//	    return err
//	}
//	for _, e := range pkg.Exports {
//	    fmt.Println(e.Metadata.ObjectType, e.Metadata.ObjectName, len(e.Properties))
//	}
//
// # Failure scope
//
// Header and table failures abort the decode and no package is returned.
// Property stream failures stay with their export: the values decoded before
// the failure are kept in Properties, the failure itself in Stream, and the
// remaining exports are decoded as usual. Package.StreamErrors lists them.
//
// # Version gating
//
// Which summary and record fields exist depends on three counters in the
// header: the legacy file version, the UE4 version and the UE5 version. The
// Ver* constants name the thresholds. They are protocol constants and are
// compared exactly as declared.
//
// # Optional sections
//
// The thumbnail table and the asset registry data are read only when
// DecodeOptions asks for them. Both can also be read on their own with
// ReadThumbnails and ReadAssetRegistry once a Header is available.
package asset
