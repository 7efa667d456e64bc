package ast

// LoopHintOption is the closed set of loop transformation hints accepted by
// the @loop statement attribute. Each enable/disable option pairs with one
// numeric option into a category that must stay mutually consistent.
type LoopHintOption uint8

const (
	LoopHintVectorize LoopHintOption = iota
	LoopHintVectorizeWidth
	LoopHintInterleave
	LoopHintInterleaveCount
	LoopHintUnroll
	LoopHintUnrollCount
)

// LoopHintCategory groups an enable-form option with its numeric sibling.
type LoopHintCategory uint8

const (
	CategoryVectorize LoopHintCategory = iota
	CategoryInterleave
	CategoryUnroll

	NumLoopHintCategories = 3
)

// IsNumeric reports whether the option takes a numeric argument rather than
// an enable/disable keyword.
func (o LoopHintOption) IsNumeric() bool {
	switch o {
	case LoopHintVectorizeWidth, LoopHintInterleaveCount, LoopHintUnrollCount:
		return true
	default:
		return false
	}
}

func (o LoopHintOption) Category() LoopHintCategory {
	switch o {
	case LoopHintVectorize, LoopHintVectorizeWidth:
		return CategoryVectorize
	case LoopHintInterleave, LoopHintInterleaveCount:
		return CategoryInterleave
	default:
		return CategoryUnroll
	}
}

func (o LoopHintOption) Name() string {
	switch o {
	case LoopHintVectorize:
		return "vectorize"
	case LoopHintVectorizeWidth:
		return "vectorize_width"
	case LoopHintInterleave:
		return "interleave"
	case LoopHintInterleaveCount:
		return "interleave_count"
	case LoopHintUnroll:
		return "unroll"
	case LoopHintUnrollCount:
		return "unroll_count"
	}
	return "unknown"
}

func (c LoopHintCategory) EnableOption() LoopHintOption {
	switch c {
	case CategoryVectorize:
		return LoopHintVectorize
	case CategoryInterleave:
		return LoopHintInterleave
	default:
		return LoopHintUnroll
	}
}

func (c LoopHintCategory) NumericOption() LoopHintOption {
	switch c {
	case CategoryVectorize:
		return LoopHintVectorizeWidth
	case CategoryInterleave:
		return LoopHintInterleaveCount
	default:
		return LoopHintUnrollCount
	}
}

// LoopHintOptionFor resolves an option spelling. Unrecognized spellings fall
// back to the vectorize option; callers rely on the argument check that
// follows to reject anything that genuinely makes no sense.
func LoopHintOptionFor(spelling string) LoopHintOption {
	switch spelling {
	case "vectorize":
		return LoopHintVectorize
	case "vectorize_width":
		return LoopHintVectorizeWidth
	case "interleave":
		return LoopHintInterleave
	case "interleave_count":
		return LoopHintInterleaveCount
	case "unroll":
		return LoopHintUnroll
	case "unroll_count":
		return LoopHintUnrollCount
	default:
		return LoopHintVectorize
	}
}

// LoopHintValueName renders an enable-form value the way it is spelled in
// source: 0 is "disable", anything else "enable".
func LoopHintValueName(value int64) string {
	if value == 0 {
		return "disable"
	}
	return "enable"
}
