package testbed

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/uasset"
	"github.com/wippyai/uasset/asset"
	"github.com/wippyai/uasset/guid"
	"github.com/wippyai/uasset/internal/fixture"
	"github.com/wippyai/uasset/property"
	"github.com/wippyai/uasset/render"
	"github.com/wippyai/uasset/server"
	"github.com/wippyai/uasset/store"
)

// blueprintPackage builds a small Blueprint: an event node with graph
// metadata, a member reference and a pin array, and the Blueprint asset.
func blueprintPackage() []byte {
	names := fixture.NewNames()

	ref := fixture.NewStream(names)
	ref.NameProp("MemberName", "ReceiveBeginPlay")
	ref.Object("MemberParent", -2)
	ref.None()

	node := fixture.NewStream(names)
	node.Nested("EventReference", "MemberReference", ref)
	node.Int("NodePosX", 256)
	node.Int("NodePosY", -128)
	node.GuidStruct("NodeGuid", guid.GUID{0x78, 0x56, 0x34, 0x12, 1, 2, 3, 4})
	node.Bool("bOverrideFunction", true)
	node.None()

	bp := fixture.NewStream(names)
	bp.Object("ParentClass", -2)
	bp.Enum("BlueprintType", "EBlueprintType", "BPTYPE_Normal")
	bp.None()

	p := fixture.NewPackage(names)
	p.Imports = []fixture.Import{
		{ClassPackage: "/Script/CoreUObject", ClassName: "Class", ObjectName: "K2Node_Event", PackageName: "/Script/BlueprintGraph"},
		{ClassPackage: "/Script/CoreUObject", ClassName: "Class", ObjectName: "Actor", PackageName: "/Script/Engine"},
		{ClassPackage: "/Script/CoreUObject", ClassName: "Class", ObjectName: "Blueprint", PackageName: "/Script/Engine"},
	}
	p.Exports = []fixture.Export{
		{Class: -1, Outer: 2, Name: "K2Node_Event", Data: node.Bytes()},
		{Class: -3, Name: "BP_Door", IsAsset: true, Data: bp.Bytes()},
	}
	p.AssetRegistry = []fixture.RegistryEntry{
		{ObjectPath: "/Game/BP_Door.BP_Door", ObjectClass: "Blueprint", Tags: [][2]string{{"ParentClass", "Actor"}}},
	}
	return p.Build()
}

func TestBlueprintEndToEnd(t *testing.T) {
	ctx := context.Background()
	data := blueprintPackage()
	path := filepath.Join(t.TempDir(), "BP_Door.uasset")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := uasset.LoadWithOptions(path, asset.DecodeOptions{AssetRegistry: true})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	pkg := f.Package

	if errs := pkg.StreamErrors(); len(errs) != 0 {
		t.Fatalf("stream errors: %v", errs[0].Stream.Err)
	}

	node := pkg.Exports[0]
	want := map[string]string{
		"EventReference.MemberName": `"ReceiveBeginPlay"`,
		"NodePosX":                  "256",
		"NodePosY":                  "-128",
		"NodeGuid":                  "12345678-0403-0201-0000-000000000000",
		"bOverrideFunction":         "true",
	}
	got := make(map[string]string)
	for _, v := range node.Properties {
		got[v.Name] = v.Text()
	}
	for name, w := range want {
		if got[name] != w {
			t.Errorf("%s = %q, want %q", name, got[name], w)
		}
	}
	if v, ok := got["EventReference.MemberParent"]; !ok || v != "-2" {
		t.Errorf("EventReference.MemberParent = %q, want -2", v)
	}

	if len(pkg.AssetRegistry) != 1 {
		t.Fatalf("asset registry = %d entries, want 1", len(pkg.AssetRegistry))
	}
	if parent, _ := pkg.AssetRegistry[0].Tag("ParentClass"); parent != "Actor" {
		t.Errorf("ParentClass tag = %q, want Actor", parent)
	}

	var doc bytes.Buffer
	if err := render.JSON(&doc, pkg, false); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !json.Valid(doc.Bytes()) {
		t.Fatal("rendered document is not valid JSON")
	}

	st, err := store.Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	defer st.Close()
	rec, err := st.Put(ctx, "BP_Door.uasset", f.Data, pkg)
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	ts := httptest.NewServer(server.New(server.Config{}, st))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/classes/Blueprint/exports")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var rows []store.Export
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(rows) != 1 || rows[0].Hash != rec.Hash || rows[0].ObjectName != "BP_Door" {
		t.Errorf("class search = %+v, want BP_Door from %s", rows, rec.Hash)
	}
}

// TestCorpus decodes every package under testdata/. Real packages are not
// checked in; drop .uasset or .umap files there to run it.
func TestCorpus(t *testing.T) {
	var files []string
	for _, pattern := range []string{"testdata/*.uasset", "testdata/*.umap"} {
		m, _ := filepath.Glob(pattern)
		files = append(files, m...)
	}
	if len(files) == 0 {
		t.Skip("no packages in testdata")
	}

	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			f, err := uasset.LoadWithOptions(path, asset.DecodeOptions{Thumbnails: true, AssetRegistry: true})
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			for _, e := range f.Package.Exports {
				if e.SerialOffset+e.SerialSize > int64(len(f.Data)) {
					t.Errorf("export %d range exceeds file", e.Index)
				}
				if e.Stream.State == property.StateUnknownProperty {
					t.Logf("export %d %s stopped: %v", e.Index, e.Metadata.ObjectName, e.Stream.Err)
				}
			}
			if err := render.JSON(&bytes.Buffer{}, f.Package, false); err != nil {
				t.Errorf("render: %v", err)
			}
		})
	}
}
