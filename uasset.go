package uasset

import (
	"io/fs"
	"os"

	"github.com/wippyai/uasset/asset"
	"github.com/wippyai/uasset/errors"
)

// File is a package loaded from disk with the bytes it was decoded from.
// The raw bytes back hex dumps and content hashing.
type File struct {
	Path    string
	Data    []byte
	Package *asset.Package
}

// Load reads and decodes the package file at path with default options.
func Load(path string) (*File, error) {
	return LoadWithOptions(path, asset.DecodeOptions{})
}

// LoadWithOptions reads the whole file at path and decodes it.
func LoadWithOptions(path string, opts asset.DecodeOptions) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
				Path(path).
				Detail("file does not exist").
				Cause(err).
				Build()
		}
		return nil, errors.IO(errors.PhaseLoad, err, "read "+path)
	}

	pkg, err := asset.DecodeWithOptions(data, opts)
	if err != nil {
		return nil, err
	}
	return &File{Path: path, Data: data, Package: pkg}, nil
}
