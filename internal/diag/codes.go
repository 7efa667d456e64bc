package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Ranges are reserved per phase:
// 1000 lexical, 2000 syntactic, 3000 semantic.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar       Code = 1001
	LexBadNumber         Code = 1002
	LexUnterminatedBlock Code = 1003

	// Syntactic
	SynUnexpectedToken  Code = 2001
	SynExpectSemicolon  Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectExpression Code = 2004
	SynExpectColon      Code = 2005
	SynUnclosedParen    Code = 2006
	SynUnclosedBrace    Code = 2007
	SynUnclosedBracket  Code = 2008
	SynExpectWhile      Code = 2009
	SynExpectIn         Code = 2010
	SynIntOutOfRange    Code = 2011

	// Semantic: statement attributes
	SemaUnknownAttrIgnored       Code = 3001
	SemaUnknownVendorAttrIgnored Code = 3002
	SemaAttrInvalidOnStmt        Code = 3003
	SemaFallthroughWrongTarget   Code = 3004
	SemaFallthroughInsertSemi    Code = 3005
	SemaFallthroughOutsideSwitch Code = 3006
	SemaLoopHintNonLoop          Code = 3007
	SemaLoopHintInvalidKeyword   Code = 3008
	SemaLoopHintInvalidValue     Code = 3009
	SemaLoopHintCompatibility    Code = 3010
)

// ID returns the stable identifier used in rendered output, e.g. "KA3004".
func (c Code) ID() string {
	return fmt.Sprintf("KA%04d", uint16(c))
}

func (c Code) String() string {
	return c.ID()
}
