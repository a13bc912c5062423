package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"fathom/internal/document"
)

// Snapshot file layout: a 5-byte header (magic + format version) followed by
// a zstd stream of msgpack values: one snapshotHeader, then Count field maps
// in position order.

var snapshotMagic = [4]byte{'F', 'S', 'N', 'P'}

const snapshotVersion = 1

// Snapshot errors.
var (
	ErrBadSnapshot       = errors.New("not a snapshot file")
	ErrSnapshotVersion   = errors.New("unsupported snapshot version")
	ErrSnapshotTruncated = errors.New("snapshot truncated")
)

type snapshotHeader struct {
	ID    string `msgpack:"id"`
	Name  string `msgpack:"name"`
	Count uint64 `msgpack:"count"`
}

// WriteTo writes the collection's documents as a snapshot stream.
func (c *Collection) WriteTo(w io.Writer) error {
	if _, err := w.Write(snapshotMagic[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte{snapshotVersion}); err != nil {
		return err
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	enc := msgpack.NewEncoder(zw)

	hdr := snapshotHeader{
		ID:    c.ID.String(),
		Name:  c.Name,
		Count: uint64(len(c.docs)),
	}
	if err := enc.Encode(hdr); err != nil {
		zw.Close()
		return err
	}
	for _, doc := range c.docs {
		if err := enc.Encode(doc.Fields); err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}

// ReadFrom loads documents from a snapshot stream into an empty collection,
// replacing its name. Existing documents are discarded.
func (c *Collection) ReadFrom(r io.Reader) error {
	var hdr [5]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return ErrBadSnapshot
	}
	if [4]byte(hdr[:4]) != snapshotMagic {
		return ErrBadSnapshot
	}
	if hdr[4] != snapshotVersion {
		return fmt.Errorf("%w: %d", ErrSnapshotVersion, hdr[4])
	}

	zr, err := zstd.NewReader(r)
	if err != nil {
		return err
	}
	defer zr.Close()
	dec := msgpack.NewDecoder(zr.IOReadCloser())

	var snap snapshotHeader
	if err := dec.Decode(&snap); err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshotTruncated, err)
	}
	c.Name = snap.Name
	if id, err := uuid.Parse(snap.ID); err == nil {
		c.ID = id
	}

	c.docs = make([]document.Document, 0, snap.Count)
	for pos := uint64(0); pos < snap.Count; pos++ {
		var fields map[string]any
		if err := dec.Decode(&fields); err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrSnapshotTruncated, pos, err)
		}
		c.docs = append(c.docs, document.New(pos, normalizeFields(fields)))
	}

	c.logger.Info("snapshot loaded", "collection", c.Name, "documents", len(c.docs))
	return nil
}

// Save writes a snapshot atomically via temp-file-then-rename.
func (c *Collection) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := c.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// Load reads a snapshot file into the collection.
func (c *Collection) Load(path string) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return c.ReadFrom(f)
}

// normalizeFields rewrites msgpack-decoded maps into the shape document.Get
// expects: map[string]any objects and float64 numbers all the way down.
func normalizeFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalizeFields(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			key, ok := k.(string)
			if !ok {
				continue
			}
			out[key] = normalizeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case int:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}
