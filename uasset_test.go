package uasset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/uasset/asset"
	"github.com/wippyai/uasset/errors"
	"github.com/wippyai/uasset/internal/fixture"
)

func writePackage(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "BP_Door.uasset")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func doorPackage() []byte {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.Int("NodePosX", 8)
	s.None()

	p := fixture.NewPackage(names)
	p.Imports = []fixture.Import{
		{ClassPackage: "/Script/CoreUObject", ClassName: "Class", ObjectName: "Actor", PackageName: "/Script/Engine"},
	}
	p.Exports = []fixture.Export{{Class: -1, Name: "BP_Door", Data: s.Bytes()}}
	p.Thumbnails = []fixture.Thumbnail{{ClassName: "Blueprint", ObjectPath: "BP_Door", Width: 1, Height: 1, Data: []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}}}
	return p.Build()
}

func TestLoad(t *testing.T) {
	data := doorPackage()
	path := writePackage(t, data)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Path != path || len(f.Data) != len(data) {
		t.Errorf("File = %s with %d bytes, want %s with %d", f.Path, len(f.Data), path, len(data))
	}
	if n := len(f.Package.Exports); n != 1 {
		t.Fatalf("exports = %d, want 1", n)
	}
	if got := f.Package.Exports[0].Metadata.ObjectName; got != "BP_Door" {
		t.Errorf("export name = %q, want BP_Door", got)
	}
	if f.Package.Thumbnails != nil {
		t.Error("thumbnails read without being requested")
	}
}

func TestLoadWithOptions(t *testing.T) {
	path := writePackage(t, doorPackage())

	f, err := LoadWithOptions(path, asset.DecodeOptions{Thumbnails: true, SkipProperties: true})
	if err != nil {
		t.Fatalf("LoadWithOptions: %v", err)
	}
	if len(f.Package.Thumbnails) != 1 || f.Package.Thumbnails[0].Format != asset.ThumbnailPNG {
		t.Errorf("thumbnails = %+v, want one png", f.Package.Thumbnails)
	}
	if f.Package.Exports[0].Properties != nil {
		t.Error("properties decoded although skipped")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.uasset"))
	if !errors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindNotFound}) {
		t.Errorf("missing file error = %v, want load not_found", err)
	}

	_, err = Load(dir)
	if errors.KindOf(err) != errors.KindIO {
		t.Errorf("directory error = %v, want io", err)
	}

	truncated := writePackage(t, doorPackage()[:40])
	_, err = Load(truncated)
	if !errors.Is(err, errors.ErrOutOfBounds) {
		t.Errorf("truncated file error = %v, want out of bounds", err)
	}
}
