package session

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"loom/internal/code"
	"loom/internal/decl"
	"loom/internal/diag"
	"loom/internal/expand"
	"loom/internal/macro"
)

// Current schema version - increment when the cached payload format changes.
const cacheSchemaVersion uint16 = 1

// Cache stores successful execution results on disk, keyed by the snapshot
// digest and the (macro, target, phase) triple. Failed executions are never
// stored: a *macro.Failure preserves its identity in memory and cannot
// round-trip through serialization.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// OpenCache initializes a cache rooted at dir.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		return nil, errors.New("cache dir must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// OpenDefaultCache initializes a cache at the standard user location.
func OpenDefaultCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCache(filepath.Join(base, app))
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// cacheKey derives the content-addressed key for one execution.
func cacheKey(digest, macroName string, target decl.Ref, phase macro.Phase) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s\x00%s\x00%s\x00%s", digest, macroName, target, phase))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) pathFor(key string) string {
	// Результаты лежат в подкаталоге "results" для удобства очистки.
	return filepath.Join(c.dir, "results", key+".mp")
}

// Put serializes and writes a result to the cache. Results carrying a
// failure are rejected.
func (c *Cache) Put(key string, r *expand.Result) error {
	if c == nil {
		return nil
	}
	if r.Failure != nil {
		return errors.New("failed results are not cacheable")
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
	tmp := f.Name()
	defer func() {
		if tmp != "" {
			_ = os.Remove(tmp)
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(encodeResult(r)); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		return err
	}
	tmp = ""
	return nil
}

// Get reads a cached result. Returns (nil, false, nil) on a miss; stale
// schema versions count as misses.
func (c *Cache) Get(key string) (*expand.Result, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() {
		_ = f.Close()
	}()

	var payload cachedResult
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return decodeResult(&payload), true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "results"))
}

// cachedResult mirrors expand.Result for serialization. Code fragments
// flatten to part slices; refs flatten to (id, kind) pairs.
type cachedResult struct {
	Schema     uint16
	Phase      uint8
	TargetID   uint32
	TargetKind uint8
	MacroName  string

	NewTypes   []cachedNamed
	ShapeEdits []cachedShapeEdit
	Decls      []cachedPlaced
	Augments   []cachedAugment
	Diags      []cachedDiagnostic
}

type cachedNamed struct {
	Name  string
	Parts []code.Part
}

type cachedShapeEdit struct {
	Slot  uint8
	Owner decl.Ident
	Parts [][]code.Part
}

type cachedPlaced struct {
	Placement uint8
	Owner     decl.Ident
	Parts     []code.Part
}

type cachedAugment struct {
	TargetID   uint32
	TargetKind uint8
	Slot       uint8
	Parts      []code.Part
	List       [][]code.Part
}

type cachedDiagnostic struct {
	Severity   uint8
	Message    string
	Target     *decl.Ident
	Contexts   []cachedContext
	Correction string
}

type cachedContext struct {
	Msg    string
	Target *decl.Ident
}

func encodeResult(r *expand.Result) *cachedResult {
	p := &cachedResult{
		Schema:     cacheSchemaVersion,
		Phase:      uint8(r.Phase),
		TargetID:   uint32(r.Target.ID),
		TargetKind: uint8(r.Target.Kind),
		MacroName:  r.MacroName,
	}

	for _, nt := range r.NewTypes {
		p.NewTypes = append(p.NewTypes, cachedNamed{Name: nt.Name, Parts: nt.Code.Parts()})
	}
	for _, se := range r.TypeShapeEdits {
		p.ShapeEdits = append(p.ShapeEdits, cachedShapeEdit{
			Slot:  uint8(se.Slot),
			Owner: se.Owner,
			Parts: encodeFragments(se.Parts),
		})
	}
	for _, pc := range r.Declarations {
		p.Decls = append(p.Decls, cachedPlaced{
			Placement: uint8(pc.Placement),
			Owner:     pc.Owner,
			Parts:     pc.Code.Parts(),
		})
	}
	for _, a := range r.Augmentations {
		p.Augments = append(p.Augments, cachedAugment{
			TargetID:   uint32(a.Target.ID),
			TargetKind: uint8(a.Target.Kind),
			Slot:       uint8(a.Slot),
			Parts:      a.Code.Parts(),
			List:       encodeFragments(a.Parts),
		})
	}
	for _, d := range r.Diagnostics {
		cd := cachedDiagnostic{
			Severity:   uint8(d.Severity),
			Message:    d.Message,
			Target:     d.Target,
			Correction: d.Correction,
		}
		for _, c := range d.Contexts {
			cd.Contexts = append(cd.Contexts, cachedContext{Msg: c.Msg, Target: c.Target})
		}
		p.Diags = append(p.Diags, cd)
	}
	return p
}

func decodeResult(p *cachedResult) *expand.Result {
	r := &expand.Result{
		Phase:     macro.Phase(p.Phase),
		Target:    decl.Ref{ID: decl.ID(p.TargetID), Kind: decl.Kind(p.TargetKind)},
		MacroName: p.MacroName,
	}

	for _, nt := range p.NewTypes {
		r.NewTypes = append(r.NewTypes, expand.NamedCode{Name: nt.Name, Code: code.FromParts(nt.Parts)})
	}
	for _, se := range p.ShapeEdits {
		r.TypeShapeEdits = append(r.TypeShapeEdits, expand.ShapeEdit{
			Slot:  expand.ShapeSlot(se.Slot),
			Owner: se.Owner,
			Parts: decodeFragments(se.Parts),
		})
	}
	for _, pc := range p.Decls {
		r.Declarations = append(r.Declarations, expand.PlacedCode{
			Placement: expand.Placement(pc.Placement),
			Owner:     pc.Owner,
			Code:      code.FromParts(pc.Parts),
		})
	}
	for _, a := range p.Augments {
		r.Augmentations = append(r.Augmentations, expand.Augmentation{
			Target: decl.Ref{ID: decl.ID(a.TargetID), Kind: decl.Kind(a.TargetKind)},
			Slot:   expand.AugmentSlot(a.Slot),
			Code:   code.FromParts(a.Parts),
			Parts:  decodeFragments(a.List),
		})
	}
	for _, cd := range p.Diags {
		d := diag.Diagnostic{
			Severity:   diag.Severity(cd.Severity),
			Message:    cd.Message,
			Target:     cd.Target,
			Correction: cd.Correction,
		}
		for _, c := range cd.Contexts {
			d.Contexts = append(d.Contexts, diag.Context{Msg: c.Msg, Target: c.Target})
		}
		r.Diagnostics = append(r.Diagnostics, d)
	}
	return r
}

func encodeFragments(cs []code.Code) [][]code.Part {
	if len(cs) == 0 {
		return nil
	}
	out := make([][]code.Part, len(cs))
	for i, c := range cs {
		out[i] = c.Parts()
	}
	return out
}

func decodeFragments(ps [][]code.Part) []code.Code {
	if len(ps) == 0 {
		return nil
	}
	out := make([]code.Code, len(ps))
	for i, parts := range ps {
		out[i] = code.FromParts(parts)
	}
	return out
}
