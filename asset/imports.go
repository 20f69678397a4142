package asset

import (
	"strconv"

	"github.com/wippyai/uasset/errors"
	"github.com/wippyai/uasset/internal/binary"
)

// ImportEntry references an object defined in another package.
type ImportEntry struct {
	ClassPackage NameRef `json:"classPackage"`
	ClassName    NameRef `json:"className"`
	ObjectName   NameRef `json:"objectName"`
	PackageName  NameRef `json:"packageName"`
	// OuterIndex is a package index: negative imports, positive exports,
	// zero the root.
	OuterIndex int32 `json:"outerIndex"`
	Optional   bool  `json:"optional"`
}

// minImportSize is the smallest import record: three names and the outer index.
const minImportSize = 8*3 + 4

// decodeImports reads header.ImportCount records at header.ImportOffset.
func decodeImports(c *binary.Cursor, h *Header) ([]ImportEntry, error) {
	if h.ImportCount == 0 {
		return nil, nil
	}
	if err := c.Seek(int64(h.ImportOffset)); err != nil {
		return nil, errors.At(errors.PhaseImports, err, "imports")
	}
	if int64(h.ImportCount)*minImportSize > c.Remaining() {
		e := errors.OutOfBounds(errors.PhaseImports, c.Position(), int64(h.ImportCount)*minImportSize, c.Remaining())
		e.Path = []string{"imports"}
		return nil, e
	}

	imports := make([]ImportEntry, 0, h.ImportCount)
	for i := int32(0); i < h.ImportCount; i++ {
		imp, err := readImport(c, h)
		if err != nil {
			return nil, errors.At(errors.PhaseImports, err, "imports", strconv.Itoa(int(i)))
		}
		imports = append(imports, imp)
	}
	return imports, nil
}

func readImport(c *binary.Cursor, h *Header) (ImportEntry, error) {
	var imp ImportEntry
	var err error

	if imp.ClassPackage, err = c.ReadNameRef(); err != nil {
		return imp, err
	}
	if imp.ClassName, err = c.ReadNameRef(); err != nil {
		return imp, err
	}
	if imp.OuterIndex, err = c.ReadI32(); err != nil {
		return imp, err
	}
	if imp.ObjectName, err = c.ReadNameRef(); err != nil {
		return imp, err
	}
	if h.UE4Version >= VerUE4NonOuterPackageImport {
		if imp.PackageName, err = c.ReadNameRef(); err != nil {
			return imp, err
		}
	}
	if h.UE5Version >= VerUE5OptionalResources {
		flag, err := c.ReadI32()
		if err != nil {
			return imp, err
		}
		imp.Optional = flag != 0
	}
	return imp, nil
}
