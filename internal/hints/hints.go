// Package hints exports the validated statement attributes of a checked file
// set in a compact binary form. Downstream tooling (optimization drivers,
// editors) reads the payload instead of re-running analysis.
package hints

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"karst/internal/ast"
	"karst/internal/source"
)

// SchemaVersion is bumped on any incompatible payload change.
const SchemaVersion = 1

// LoopHint is one normalized loop directive with its source position.
type LoopHint struct {
	Option string `msgpack:"option"`
	Value  int64  `msgpack:"value"`
	Line   uint32 `msgpack:"line"`
	Col    uint32 `msgpack:"col"`
}

// Fallthrough marks one validated fallthrough position.
type Fallthrough struct {
	Line uint32 `msgpack:"line"`
	Col  uint32 `msgpack:"col"`
}

// FilePayload groups everything exported for one source file. Hash is the
// content hash of the analyzed revision, so consumers can detect staleness.
type FilePayload struct {
	Path         string        `msgpack:"path"`
	Hash         []byte        `msgpack:"hash,omitempty"`
	LoopHints    []LoopHint    `msgpack:"loop_hints,omitempty"`
	Fallthroughs []Fallthrough `msgpack:"fallthroughs,omitempty"`
}

// Payload is the top-level export document.
type Payload struct {
	Schema uint32        `msgpack:"schema"`
	Files  []FilePayload `msgpack:"files"`
}

// Encode serializes p, stamping the current schema version.
func (p *Payload) Encode() ([]byte, error) {
	p.Schema = SchemaVersion
	data, err := msgpack.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("hints: encode: %w", err)
	}
	return data, nil
}

// Decode parses an export document and rejects foreign schema versions.
func Decode(data []byte) (*Payload, error) {
	var p Payload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("hints: decode: %w", err)
	}
	if p.Schema != SchemaVersion {
		return nil, fmt.Errorf("hints: unsupported schema version %d (want %d)", p.Schema, SchemaVersion)
	}
	return &p, nil
}

// Collect walks checked statements and gathers the attribute records bound by
// analysis into a per-file payload.
func Collect(fs *source.FileSet, builder *ast.Builder, path string, stmts []ast.StmtID) FilePayload {
	fp := FilePayload{Path: path}
	if fileID, ok := fs.GetLatest(path); ok {
		if f := fs.Get(fileID); f != nil {
			fp.Hash = append(fp.Hash, f.Hash[:]...)
		}
	}
	for _, id := range stmts {
		collectStmt(fs, builder, id, &fp)
	}
	return fp
}

func collectStmt(fs *source.FileSet, builder *ast.Builder, id ast.StmtID, fp *FilePayload) {
	if !id.IsValid() {
		return
	}
	stmt := builder.Stmts.Get(id)

	if stmt.Kind == ast.StmtAttributed {
		for _, rec := range stmt.Records {
			pos, _ := fs.Resolve(rec.Span)
			switch rec.Kind {
			case ast.RecordFallthrough:
				fp.Fallthroughs = append(fp.Fallthroughs, Fallthrough{Line: pos.Line, Col: pos.Col})
			case ast.RecordLoopHint:
				fp.LoopHints = append(fp.LoopHints, LoopHint{
					Option: rec.Option.Name(),
					Value:  rec.Value,
					Line:   pos.Line,
					Col:    pos.Col,
				})
			}
		}
	}

	collectStmt(fs, builder, stmt.Init, fp)
	collectStmt(fs, builder, stmt.Body, fp)
	for _, kid := range stmt.Items {
		collectStmt(fs, builder, kid, fp)
	}
}
