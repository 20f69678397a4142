// Package store indexes decoded packages in SQLite.
//
// Packages are keyed by the BLAKE2b-256 hash of their file content, so
// storing the same bytes twice replaces the earlier entry instead of adding
// a second one. Each stored package keeps its rendered JSON document plus
// one row per export and per name, which makes class and name queries cheap
// without decoding the file again.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/hex"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/wippyai/uasset/asset"
	"github.com/wippyai/uasset/errors"
	"github.com/wippyai/uasset/render"
)

const schema = `
	CREATE TABLE IF NOT EXISTS
		packages
	(
		hash TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		size INTEGER NOT NULL,
		legacyFileVersion INTEGER NOT NULL,
		ue4Version INTEGER NOT NULL,
		ue5Version INTEGER NOT NULL,
		licenseeVersion INTEGER NOT NULL,
		savedBy TEXT NOT NULL,
		nameCount INTEGER NOT NULL,
		importCount INTEGER NOT NULL,
		exportCount INTEGER NOT NULL,
		streamErrors INTEGER NOT NULL,
		document BLOB NOT NULL,
		indexed TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS
		exports
	(
		hash TEXT NOT NULL REFERENCES packages (hash) ON DELETE CASCADE,
		idx INTEGER NOT NULL,
		className TEXT NOT NULL,
		objectName TEXT NOT NULL,
		serialOffset INTEGER NOT NULL,
		serialSize INTEGER NOT NULL,
		properties INTEGER NOT NULL,
		state TEXT NOT NULL,

		UNIQUE (hash, idx)
	);

	CREATE INDEX IF NOT EXISTS exports_className ON exports (className);

	CREATE TABLE IF NOT EXISTS
		names
	(
		hash TEXT NOT NULL REFERENCES packages (hash) ON DELETE CASCADE,
		idx INTEGER NOT NULL,
		text TEXT NOT NULL,

		UNIQUE (hash, idx)
	);
`

// Record is one stored package.
type Record struct {
	Hash              string `json:"hash"`
	Name              string `json:"name"`
	Size              int64  `json:"size"`
	LegacyFileVersion int32  `json:"legacyFileVersion"`
	UE4Version        int32  `json:"ue4Version"`
	UE5Version        int32  `json:"ue5Version"`
	LicenseeVersion   int32  `json:"licenseeVersion"`
	SavedBy           string `json:"savedBy"`
	NameCount         int    `json:"nameCount"`
	ImportCount       int    `json:"importCount"`
	ExportCount       int    `json:"exportCount"`
	StreamErrors      int    `json:"streamErrors"`
	// Document is the rendered JSON; only Get fills it.
	Document []byte    `json:"-"`
	Indexed  time.Time `json:"indexed"`
}

// Export is one stored export row.
type Export struct {
	Hash         string `json:"hash"`
	Package      string `json:"package"`
	Index        int    `json:"index"`
	ClassName    string `json:"className"`
	ObjectName   string `json:"objectName"`
	SerialOffset int64  `json:"serialOffset"`
	SerialSize   int64  `json:"serialSize"`
	Properties   int    `json:"properties"`
	State        string `json:"state"`
}

// Store is a package index backed by one SQLite database.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// HashContent returns the hex BLAKE2b-256 digest of a package file.
func HashContent(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Open opens or creates the database at dsn and applies the schema.
// ":memory:" gives a private in-memory index.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.IO(errors.PhaseStore, err, "open "+dsn)
	}
	// An in-memory database exists only inside its connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.IO(errors.PhaseStore, err, "enable foreign keys")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.IO(errors.PhaseStore, err, "apply schema")
	}

	s := &Store{db: db, log: Logger()}
	s.log.Debug("store opened", zap.String("dsn", dsn))
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores pkg, decoded from data, under the content hash of data. An
// existing entry with the same hash is replaced.
func (s *Store) Put(ctx context.Context, name string, data []byte, pkg *asset.Package) (*Record, error) {
	if pkg == nil || pkg.Header == nil {
		return nil, errors.InvalidInput(errors.PhaseStore, "nil package")
	}

	var doc bytes.Buffer
	if err := render.JSON(&doc, pkg, false); err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "render document")
	}

	h := pkg.Header
	rec := &Record{
		Hash:              HashContent(data),
		Name:              name,
		Size:              int64(len(data)),
		LegacyFileVersion: h.LegacyFileVersion,
		UE4Version:        h.UE4Version,
		UE5Version:        h.UE5Version,
		LicenseeVersion:   h.LicenseeVersion,
		SavedBy:           h.SavedBy.String(),
		NameCount:         pkg.Names.Len(),
		ImportCount:       len(pkg.Imports),
		ExportCount:       len(pkg.Exports),
		StreamErrors:      len(pkg.StreamErrors()),
		Document:          doc.Bytes(),
		Indexed:           time.Now().UTC().Truncate(time.Second),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.IO(errors.PhaseStore, err, "begin")
	}
	defer tx.Rollback()

	if err := putPackage(ctx, tx, rec, pkg); err != nil {
		return nil, errors.IO(errors.PhaseStore, err, "put "+rec.Hash)
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.IO(errors.PhaseStore, err, "commit")
	}

	s.log.Debug("package stored",
		zap.String("hash", rec.Hash),
		zap.String("name", name),
		zap.Int("exports", rec.ExportCount))
	return rec, nil
}

func putPackage(ctx context.Context, tx *sql.Tx, rec *Record, pkg *asset.Package) error {
	if err := deletePackage(ctx, tx, rec.Hash); err != nil {
		return err
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO
			packages
				(
					hash, name, size, legacyFileVersion, ue4Version, ue5Version,
					licenseeVersion, savedBy, nameCount, importCount, exportCount,
					streamErrors, document, indexed
				)
		VALUES
				(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.Hash, rec.Name, rec.Size, rec.LegacyFileVersion, rec.UE4Version, rec.UE5Version,
		rec.LicenseeVersion, rec.SavedBy, rec.NameCount, rec.ImportCount, rec.ExportCount,
		rec.StreamErrors, rec.Document, rec.Indexed.Format(time.RFC3339))
	if err != nil {
		return err
	}

	exp, err := tx.PrepareContext(ctx, `
		INSERT INTO
			exports
				(hash, idx, className, objectName, serialOffset, serialSize, properties, state)
		VALUES
				(?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer exp.Close()
	for _, e := range pkg.Exports {
		_, err := exp.ExecContext(ctx, rec.Hash, e.Index, e.Metadata.ObjectType, e.Metadata.ObjectName,
			e.SerialOffset, e.SerialSize, len(e.Properties), e.Stream.State.String())
		if err != nil {
			return err
		}
	}

	nm, err := tx.PrepareContext(ctx, `INSERT INTO names (hash, idx, text) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer nm.Close()
	for i, text := range pkg.Names.Strings() {
		if _, err := nm.ExecContext(ctx, rec.Hash, i, text); err != nil {
			return err
		}
	}
	return nil
}

const recordColumns = `
	hash, name, size, legacyFileVersion, ue4Version, ue5Version, licenseeVersion,
	savedBy, nameCount, importCount, exportCount, streamErrors, indexed`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner, extra ...any) (*Record, error) {
	var rec Record
	var indexed string
	dest := []any{
		&rec.Hash, &rec.Name, &rec.Size, &rec.LegacyFileVersion, &rec.UE4Version,
		&rec.UE5Version, &rec.LicenseeVersion, &rec.SavedBy, &rec.NameCount,
		&rec.ImportCount, &rec.ExportCount, &rec.StreamErrors, &indexed,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, indexed)
	if err != nil {
		return nil, err
	}
	rec.Indexed = t
	return &rec, nil
}

// Get returns the stored package with its JSON document.
func (s *Store) Get(ctx context.Context, hash string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT `+recordColumns+`,
		document
	FROM
		packages
	WHERE
		hash = ?`, hash)

	var doc []byte
	rec, err := scanRecord(row, &doc)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound(errors.PhaseStore, "package", hash)
	}
	if err != nil {
		return nil, errors.IO(errors.PhaseStore, err, "get "+hash)
	}
	rec.Document = doc
	return rec, nil
}

// List returns every stored package ordered by name, without documents.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT `+recordColumns+`
	FROM
		packages
	ORDER BY
		name, hash`)
	if err != nil {
		return nil, errors.IO(errors.PhaseStore, err, "list")
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.IO(errors.PhaseStore, err, "list")
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.IO(errors.PhaseStore, err, "list")
	}
	return out, nil
}

// Delete removes a stored package. Deleting an unknown hash is NotFound.
func (s *Store) Delete(ctx context.Context, hash string) error {
	if _, err := s.Get(ctx, hash); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.IO(errors.PhaseStore, err, "begin")
	}
	defer tx.Rollback()

	if err := deletePackage(ctx, tx, hash); err != nil {
		return errors.IO(errors.PhaseStore, err, "delete "+hash)
	}
	if err := tx.Commit(); err != nil {
		return errors.IO(errors.PhaseStore, err, "commit")
	}
	s.log.Debug("package deleted", zap.String("hash", hash))
	return nil
}

func deletePackage(ctx context.Context, tx *sql.Tx, hash string) error {
	for _, table := range []string{"exports", "names", "packages"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE hash = ?`, hash); err != nil {
			return err
		}
	}
	return nil
}

const exportQuery = `
	SELECT
		e.hash, p.name, e.idx, e.className, e.objectName,
		e.serialOffset, e.serialSize, e.properties, e.state
	FROM
		exports e
	JOIN
		packages p ON p.hash = e.hash
	`

// Exports returns the export rows of one package in table order. An unknown
// hash is NotFound.
func (s *Store) Exports(ctx context.Context, hash string) ([]Export, error) {
	if _, err := s.Get(ctx, hash); err != nil {
		return nil, err
	}
	return s.queryExports(ctx, exportQuery+`WHERE e.hash = ? ORDER BY e.idx`, hash)
}

// FindExportsByClass returns every stored export whose class name equals
// class, across all packages.
func (s *Store) FindExportsByClass(ctx context.Context, class string) ([]Export, error) {
	return s.queryExports(ctx, exportQuery+`WHERE e.className = ? ORDER BY p.name, e.hash, e.idx`, class)
}

func (s *Store) queryExports(ctx context.Context, query string, args ...any) ([]Export, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.IO(errors.PhaseStore, err, "query exports")
	}
	defer rows.Close()

	out := []Export{}
	for rows.Next() {
		var e Export
		err := rows.Scan(&e.Hash, &e.Package, &e.Index, &e.ClassName, &e.ObjectName,
			&e.SerialOffset, &e.SerialSize, &e.Properties, &e.State)
		if err != nil {
			return nil, errors.IO(errors.PhaseStore, err, "scan export")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.IO(errors.PhaseStore, err, "query exports")
	}
	return out, nil
}

// Names returns the name table of a stored package in index order.
func (s *Store) Names(ctx context.Context, hash string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT text FROM names WHERE hash = ? ORDER BY idx`, hash)
	if err != nil {
		return nil, errors.IO(errors.PhaseStore, err, "query names")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, errors.IO(errors.PhaseStore, err, "scan name")
		}
		out = append(out, text)
	}
	return out, rows.Err()
}

// FindPackagesByName returns the packages whose name table contains text.
func (s *Store) FindPackagesByName(ctx context.Context, text string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT `+recordColumns+`
	FROM
		packages
	WHERE
		hash IN (SELECT hash FROM names WHERE text = ?)
	ORDER BY
		name, hash`, text)
	if err != nil {
		return nil, errors.IO(errors.PhaseStore, err, "find by name")
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.IO(errors.PhaseStore, err, "find by name")
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}
