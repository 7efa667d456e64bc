package ast

import (
	"fmt"

	"fortio.org/safecast"

	"karst/internal/source"
)

// Spelling-list indices: which surface form produced an attribute.
const (
	SpellingStandard uint8 = 0 // @name(args)
	SpellingVendor   uint8 = 1 // @[name(args)]
)

// Attr is a raw attribute as produced by the parser, before semantic
// validation. Args are ordered argument expressions; a bare identifier
// argument is an ExprIdent node.
type Attr struct {
	Name          source.StringID
	SpellingIndex uint8
	Args          []ExprID
	Span          source.Span
}

type Attrs struct {
	Arena *Arena[Attr]
}

func NewAttrs(capHint uint) *Attrs {
	return &Attrs{Arena: NewArena[Attr](capHint)}
}

func (a *Attrs) New(attr Attr) AttrID {
	return AttrID(a.Arena.Allocate(attr))
}

func (a *Attrs) Get(id AttrID) *Attr {
	return a.Arena.Get(uint32(id))
}

// Collect returns the contiguous run of count attributes starting at start.
// Attribute lists are allocated back to back during parsing, so a range is
// enough to address one statement's prefix.
func (a *Attrs) Collect(start AttrID, count uint32) []Attr {
	if count == 0 || !start.IsValid() {
		return nil
	}
	end, err := safecast.Conv[uint32](uint64(start) + uint64(count) - 1)
	if err != nil || end > a.Arena.Len() {
		panic(fmt.Errorf("attr range %d+%d out of bounds", start, count))
	}
	out := make([]Attr, 0, count)
	for id := uint32(start); id <= end; id++ {
		out = append(out, *a.Arena.Get(id))
	}
	return out
}

// AttrRecordKind tags validated statement-attribute records.
type AttrRecordKind uint8

const (
	RecordFallthrough AttrRecordKind = iota
	RecordLoopHint
)

// AttrRecord is a validated statement attribute ready to be bound into the
// tree. Fallthrough records carry no payload beyond their location and
// spelling; loop-hint records carry the resolved option and value.
type AttrRecord struct {
	Kind          AttrRecordKind
	Span          source.Span
	SpellingIndex uint8

	Option LoopHintOption // RecordLoopHint
	Value  int64          // RecordLoopHint: 0/1 for enable forms, >=1 for numeric forms

	// Synthesized marks records whose value form was normalized during
	// validation and may not round-trip to the original surface syntax.
	Synthesized bool
}
