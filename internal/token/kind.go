package token

// Kind enumerates the token kinds of the karst statement grammar.
type Kind uint8

const (
	EOF Kind = iota
	Invalid

	Ident
	IntLit

	At       // @
	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
	Semicolon
	Colon
	Comma
	Assign // =

	Plus
	Minus
	Star
	Slash
	Percent
	Shl // <<
	Shr // >>
	Lt
	Gt

	KwLet
	KwFor
	KwWhile
	KwDo
	KwIn
	KwSwitch
	KwCase
	KwDefault
	KwBreak
	KwContinue
)

var kindNames = map[Kind]string{
	EOF:        "EOF",
	Invalid:    "invalid",
	Ident:      "identifier",
	IntLit:     "integer literal",
	At:         "'@'",
	LParen:     "'('",
	RParen:     "')'",
	LBrace:     "'{'",
	RBrace:     "'}'",
	LBracket:   "'['",
	RBracket:   "']'",
	Semicolon:  "';'",
	Colon:      "':'",
	Comma:      "','",
	Assign:     "'='",
	Plus:       "'+'",
	Minus:      "'-'",
	Star:       "'*'",
	Slash:      "'/'",
	Percent:    "'%'",
	Shl:        "'<<'",
	Shr:        "'>>'",
	Lt:         "'<'",
	Gt:         "'>'",
	KwLet:      "'let'",
	KwFor:      "'for'",
	KwWhile:    "'while'",
	KwDo:       "'do'",
	KwIn:       "'in'",
	KwSwitch:   "'switch'",
	KwCase:     "'case'",
	KwDefault:  "'default'",
	KwBreak:    "'break'",
	KwContinue: "'continue'",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

var keywords = map[string]Kind{
	"let":      KwLet,
	"for":      KwFor,
	"while":    KwWhile,
	"do":       KwDo,
	"in":       KwIn,
	"switch":   KwSwitch,
	"case":     KwCase,
	"default":  KwDefault,
	"break":    KwBreak,
	"continue": KwContinue,
}

// LookupKeyword resolves an identifier spelling to its keyword kind.
func LookupKeyword(s string) (Kind, bool) {
	k, ok := keywords[s]
	return k, ok
}
