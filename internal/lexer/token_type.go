package lexer

// TokenType identifies the lexical class of a Token.
type TokenType int

const (
	// Special tokens.
	ILLEGAL TokenType = iota
	EOF
	COMMENT
	NEWLINE

	// Identifiers and literals.
	IDENT
	INT
	FLOAT
	STRING        // "..." possibly containing {interpolations}
	TRIPLE_STRING // """...""" — interpolation forbidden
	HEREDOC       // <<TAG ... TAG

	literalEnd

	// Keywords.
	TRUE
	FALSE
	NULL
	BREAK
	RETURN
	EACH
	MAP
	FOLD
	FILTER

	keywordEnd

	// Delimiters.
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	FRONTMATTER // ---

	// Variable / pipe sigils.
	DOLLAR   // $name
	PIPE_VAR // bare $

	// Pipe / capture / chain operators.
	ARROW         // ->
	CAPTURE_OP    // :>
	CLOSURE_CHAIN // >>

	// Access operators.
	DOT               // .
	OPT_DOT           // .?
	QUESTION          // ?
	QUESTION_QUESTION // ??

	// Type operators.
	COLON       // :
	COLON_COLON // ::
	EXCLAIM     // !

	// Extraction operators.
	DESTRUCTURE // *<
	SLICE_OP    // /<
	UNDERSCORE  // _
	SPREAD      // * (prefix, contextual)

	// Closure / misc.
	PIPE      // |
	AT        // @
	CARET     // ^
	AMPERSAND // & (optional-field-access type suffix: .?field&type)

	// Assignment / comparison / logical.
	ASSIGN // =
	EQ     // ==
	NEQ    // !=
	LT
	GT
	LE
	GE
	OR_OR   // ||
	AND_AND // &&

	// Arithmetic.
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
)

var tokenNames = map[TokenType]string{
	ILLEGAL:           "ILLEGAL",
	EOF:               "EOF",
	COMMENT:           "COMMENT",
	NEWLINE:           "NEWLINE",
	IDENT:             "IDENT",
	INT:               "INT",
	FLOAT:             "FLOAT",
	STRING:            "STRING",
	TRIPLE_STRING:     "TRIPLE_STRING",
	HEREDOC:           "HEREDOC",
	TRUE:              "TRUE",
	FALSE:             "FALSE",
	NULL:              "NULL",
	BREAK:             "BREAK",
	RETURN:            "RETURN",
	EACH:              "EACH",
	MAP:               "MAP",
	FOLD:              "FOLD",
	FILTER:            "FILTER",
	LPAREN:            "LPAREN",
	RPAREN:            "RPAREN",
	LBRACE:            "LBRACE",
	RBRACE:            "RBRACE",
	LBRACKET:          "LBRACKET",
	RBRACKET:          "RBRACKET",
	COMMA:             "COMMA",
	FRONTMATTER:       "FRONTMATTER",
	DOLLAR:            "DOLLAR",
	PIPE_VAR:          "PIPE_VAR",
	ARROW:             "ARROW",
	CAPTURE_OP:        "CAPTURE_OP",
	CLOSURE_CHAIN:     "CLOSURE_CHAIN",
	DOT:               "DOT",
	OPT_DOT:           "OPT_DOT",
	QUESTION:          "QUESTION",
	QUESTION_QUESTION: "QUESTION_QUESTION",
	COLON:             "COLON",
	COLON_COLON:       "COLON_COLON",
	EXCLAIM:           "EXCLAIM",
	DESTRUCTURE:       "DESTRUCTURE",
	SLICE_OP:          "SLICE_OP",
	UNDERSCORE:        "UNDERSCORE",
	SPREAD:            "SPREAD",
	PIPE:              "PIPE",
	AT:                "AT",
	CARET:             "CARET",
	AMPERSAND:         "AMPERSAND",
	ASSIGN:            "ASSIGN",
	EQ:                "EQ",
	NEQ:               "NEQ",
	LT:                "LT",
	GT:                "GT",
	LE:                "LE",
	GE:                "GE",
	OR_OR:             "OR_OR",
	AND_AND:           "AND_AND",
	PLUS:              "PLUS",
	MINUS:             "MINUS",
	STAR:              "STAR",
	SLASH:             "SLASH",
	PERCENT:           "PERCENT",
}

func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return "UNKNOWN"
}

// IsLiteral reports whether tt is one of the literal token kinds.
func (tt TokenType) IsLiteral() bool { return tt > NEWLINE && tt < literalEnd }

// IsKeyword reports whether tt is one of the reserved-word token kinds.
func (tt TokenType) IsKeyword() bool { return tt > literalEnd && tt < keywordEnd }

var keywords = map[string]TokenType{
	"true":   TRUE,
	"false":  FALSE,
	"null":   NULL,
	"break":  BREAK,
	"return": RETURN,
	"each":   EACH,
	"map":    MAP,
	"fold":   FOLD,
	"filter": FILTER,
}

// LookupIdent classifies an identifier as a keyword or a plain IDENT.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}
