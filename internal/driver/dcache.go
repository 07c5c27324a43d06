package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/project"
	"hlslc/internal/source"
)

// Current schema version - increment when CachedResult format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты компиляции по ключу H(source || options).
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedNote is a diagnostic note without its file id; notes always point
// into the compiled file.
type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Start    uint32
	End      uint32
	Message  string
	Notes    []CachedNote
}

// CachedResult is the msgpack payload of one compiled file.
type CachedResult struct {
	Schema      uint16
	Path        string
	Stage       uint8
	Parsed      bool
	EntryPoint  string
	LocalSize   [3]int
	IR          string
	Diagnostics []CachedDiagnostic
	Dropped     int
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache uses dir as the cache root.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первому байту, чтобы не держать тысячи файлов в одном
	return filepath.Join(c.dir, "ir", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *CachedResult) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key project.Digest, out *CachedResult) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func newCachedResult(r *Result) *CachedResult {
	p := &CachedResult{
		Schema:  diskCacheSchemaVersion,
		Path:    r.File.Path,
		Stage:   uint8(r.Stage),
		Parsed:  r.Parsed,
		IR:      r.IR,
		Dropped: r.Bag.Dropped(),
	}
	if m := r.Sema.Module; m != nil {
		p.EntryPoint = m.EntryPoint
		p.LocalSize = m.LocalSize
	}
	for _, d := range r.Bag.Items() {
		// тайминги относятся к конкретному запуску
		if d.Code == diag.ObsTimings {
			continue
		}
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		p.Diagnostics = append(p.Diagnostics, cd)
	}
	return p
}

// restore fills r from the payload. Spans are re-pointed at r.File, whose
// content hash is part of the cache key.
func (p *CachedResult) restore(r *Result) bool {
	if p.Schema != diskCacheSchemaVersion || ir.Stage(p.Stage) != r.Stage {
		return false
	}
	r.Cached = true
	r.Parsed = p.Parsed
	r.IR = p.IR
	r.Bag = diag.NewBag(len(p.Diagnostics) + p.Dropped)
	id := r.File.ID
	for _, cd := range p.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), source.Span{File: id, Start: cd.Start, End: cd.End}, cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(source.Span{File: id, Start: n.Start, End: n.End}, n.Msg)
		}
		r.Bag.Add(d)
	}
	return true
}
