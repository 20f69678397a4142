package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/uasset"
	"github.com/wippyai/uasset/asset"
	"github.com/wippyai/uasset/property"
	"github.com/wippyai/uasset/render"
	"github.com/wippyai/uasset/server"
	"github.com/wippyai/uasset/store"
)

type options struct {
	file        string
	json        bool
	summary     bool
	properties  bool
	dump        int
	thumbs      string
	registry    bool
	db          string
	serve       string
	interactive bool
}

func main() {
	var (
		file        = flag.String("file", "", "Path to package file (.uasset, .umap)")
		asJSON      = flag.Bool("json", false, "Print the decoded package as JSON")
		summary     = flag.Bool("summary", false, "Print a text summary (default output)")
		properties  = flag.Bool("props", false, "List property values in the summary")
		dump        = flag.Int("dump", -1, "Hex dump the serial range of export N")
		thumbs      = flag.String("thumbs", "", "Extract thumbnails into directory")
		registry    = flag.Bool("registry", false, "Print asset registry data")
		dbPath      = flag.String("db", "", "Index the package into the SQLite database at path")
		serve       = flag.String("serve", "", "Serve the HTTP API on address (e.g. :7089)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose development logging")
	)
	flag.Parse()

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	asset.SetLogger(log)
	property.SetLogger(log)
	store.SetLogger(log)
	server.SetLogger(log)

	opts := options{
		file:        *file,
		json:        *asJSON,
		summary:     *summary,
		properties:  *properties,
		dump:        *dump,
		thumbs:      *thumbs,
		registry:    *registry,
		db:          *dbPath,
		serve:       *serve,
		interactive: *interactive,
	}

	if opts.file == "" && opts.serve == "" {
		fmt.Fprintln(os.Stderr, "Usage: uasset -file <package> [-json|-summary|-dump N|-thumbs DIR|-registry]")
		fmt.Fprintln(os.Stderr, "       uasset -file <package> -db index.db   (index into SQLite)")
		fmt.Fprintln(os.Stderr, "       uasset -serve :7089 [-db index.db]   (HTTP API)")
		fmt.Fprintln(os.Stderr, "       uasset -file <package> -i            (interactive mode)")
		os.Exit(1)
	}

	if opts.interactive {
		if err := runInteractive(opts.file); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if opts.serve != "" {
		err = runServe(opts)
	} else {
		err = run(opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(opts options) error {
	f, err := uasset.LoadWithOptions(opts.file, asset.DecodeOptions{
		Thumbnails:    opts.thumbs != "",
		AssetRegistry: opts.registry,
	})
	if err != nil {
		return fmt.Errorf("decode %s: %w", opts.file, err)
	}
	pkg := f.Package

	chosen := false
	if opts.json {
		chosen = true
		if err := render.JSON(os.Stdout, pkg, true); err != nil {
			return err
		}
	}
	if opts.dump >= 0 {
		chosen = true
		if err := render.DumpExport(os.Stdout, f.Data, pkg, opts.dump); err != nil {
			return err
		}
	}
	if opts.thumbs != "" {
		chosen = true
		if err := extractThumbnails(opts.thumbs, pkg.Thumbnails); err != nil {
			return err
		}
	}
	if opts.registry {
		chosen = true
		printRegistry(pkg.AssetRegistry)
	}
	if opts.db != "" {
		chosen = true
		if err := index(opts.db, f); err != nil {
			return err
		}
	}

	if opts.summary || !chosen {
		err := render.Summary(os.Stdout, pkg, render.SummaryOptions{
			Title:      filepath.Base(opts.file),
			Color:      render.Terminal(os.Stdout),
			Properties: opts.properties,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func extractThumbnails(dir string, thumbs []asset.Thumbnail) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	for i, th := range thumbs {
		name := fmt.Sprintf("%02d_%s%s", i, safeName(th.ObjectPath), th.Extension())
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, th.Data, 0o644); err != nil {
			return fmt.Errorf("write thumbnail: %w", err)
		}
		fmt.Printf("%s %dx%d %s\n", path, th.Width, th.Height, th.Format)
	}
	if len(thumbs) == 0 {
		fmt.Println("No thumbnails.")
	}
	return nil
}

// safeName flattens an object path into a file name.
func safeName(path string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '.', ' ':
			return '_'
		}
		return r
	}, strings.Trim(path, "/"))
}

func printRegistry(entries []asset.AssetRegistryEntry) {
	if len(entries) == 0 {
		fmt.Println("No asset registry data.")
		return
	}
	for _, e := range entries {
		fmt.Printf("%s (%s)\n", e.ObjectPath, e.ObjectClass)
		for _, t := range e.Tags {
			fmt.Printf("  %s = %s\n", t.Key, t.Value)
		}
	}
}

func index(dsn string, f *uasset.File) error {
	st, err := store.Open(dsn)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.Put(context.Background(), filepath.Base(f.Path), f.Data, f.Package)
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %s as %s (%d exports, %d stream errors)\n", rec.Name, rec.Hash, rec.ExportCount, rec.StreamErrors)
	return nil
}

func runServe(opts options) error {
	dsn := opts.db
	if dsn == "" {
		dsn = ":memory:"
	}
	st, err := store.Open(dsn)
	if err != nil {
		return err
	}
	defer st.Close()

	if opts.file != "" {
		f, err := uasset.Load(opts.file)
		if err != nil {
			return fmt.Errorf("decode %s: %w", opts.file, err)
		}
		if _, err := st.Put(context.Background(), filepath.Base(f.Path), f.Data, f.Package); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := server.New(server.Config{Addr: opts.serve}, st)
	fmt.Printf("Serving on %s\n", opts.serve)
	return srv.ListenAndServe(ctx)
}
