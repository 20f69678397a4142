package asset

import (
	"strconv"

	"github.com/wippyai/uasset/errors"
	"github.com/wippyai/uasset/internal/binary"
)

// AssetTag is one key/value pair of asset registry data.
type AssetTag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AssetRegistryEntry describes one asset object for the editor's registry.
type AssetRegistryEntry struct {
	ObjectPath  string     `json:"objectPath"`
	ObjectClass string     `json:"objectClass"`
	Tags        []AssetTag `json:"tags"`
}

// Tag returns the value of key.
func (e *AssetRegistryEntry) Tag(key string) (string, bool) {
	for _, t := range e.Tags {
		if t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}

// ReadAssetRegistry reads the records at header.AssetRegistryDataOffset.
// A zero offset means the package carries no registry data.
func ReadAssetRegistry(data []byte, h *Header) ([]AssetRegistryEntry, error) {
	if h.AssetRegistryDataOffset <= 0 {
		return nil, nil
	}
	c := binary.NewCursor(data)
	if err := c.Seek(int64(h.AssetRegistryDataOffset)); err != nil {
		return nil, errors.At(errors.PhaseRegistry, err, "assetRegistry")
	}

	count, err := readRegistryCount(c, 12, "assetRegistry")
	if err != nil {
		return nil, err
	}

	entries := make([]AssetRegistryEntry, 0, count)
	for i := 0; i < count; i++ {
		path := []string{"assetRegistry", strconv.Itoa(i)}

		var e AssetRegistryEntry
		if e.ObjectPath, err = c.ReadFString(); err != nil {
			return nil, errors.At(errors.PhaseRegistry, err, path...)
		}
		if e.ObjectClass, err = c.ReadFString(); err != nil {
			return nil, errors.At(errors.PhaseRegistry, err, path...)
		}

		tags, err := readRegistryCount(c, 8, path...)
		if err != nil {
			return nil, err
		}
		e.Tags = make([]AssetTag, 0, tags)
		for j := 0; j < tags; j++ {
			var t AssetTag
			if t.Key, err = c.ReadFString(); err == nil {
				t.Value, err = c.ReadFString()
			}
			if err != nil {
				return nil, errors.At(errors.PhaseRegistry, err, append(path, "tags", strconv.Itoa(j))...)
			}
			e.Tags = append(e.Tags, t)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// readRegistryCount reads a count of records that take at least minSize
// bytes each.
func readRegistryCount(c *binary.Cursor, minSize int64, path ...string) (int, error) {
	n, err := c.ReadI32()
	if err != nil {
		return 0, errors.At(errors.PhaseRegistry, err, path...)
	}
	if n < 0 || int64(n)*minSize > c.Remaining() {
		return 0, errors.New(errors.PhaseRegistry, errors.KindInvalidData).
			Path(path...).
			Offset(c.Position()-4).
			Detail("count %d does not fit the file", n).
			Build()
	}
	return int(n), nil
}
