package lexer

import "testing"

func TestNextTokenOperators(t *testing.T) {
	input := `$x -> trim :> $y >> .?field&string ?? 1 :: type`

	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"$", DOLLAR},
		{"x", IDENT},
		{"->", ARROW},
		{"trim", IDENT},
		{":>", CAPTURE_OP},
		{"$", DOLLAR},
		{"y", IDENT},
		{">>", CLOSURE_CHAIN},
		{".?", OPT_DOT},
		{"field", IDENT},
		{"&", AMPERSAND},
		{"string", IDENT},
		{"??", QUESTION_QUESTION},
		{"1", INT},
		{"::", COLON_COLON},
		{"type", IDENT},
		{"", EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `true false null break return each map fold filter notakeyword`

	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"true", TRUE},
		{"false", FALSE},
		{"null", NULL},
		{"break", BREAK},
		{"return", RETURN},
		{"each", EACH},
		{"map", MAP},
		{"fold", FOLD},
		{"filter", FILTER},
		{"notakeyword", IDENT},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input        string
		expectedType TokenType
	}{
		{"42", INT},
		{"3.14", FLOAT},
		{"1_000_000", INT},
		{"1e10", FLOAT},
		{"2.5e-3", FLOAT},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Errorf("input %q: expected %s, got %s", tt.input, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.input {
			t.Errorf("input %q: expected literal %q, got %q", tt.input, tt.input, tok.Literal)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("a b c")
	first := l.Peek(0)
	if first.Literal != "a" {
		t.Fatalf("Peek(0) = %q, want %q", first.Literal, "a")
	}
	second := l.Peek(1)
	if second.Literal != "b" {
		t.Fatalf("Peek(1) = %q, want %q", second.Literal, "b")
	}
	tok := l.NextToken()
	if tok.Literal != "a" {
		t.Fatalf("NextToken after Peek = %q, want %q", tok.Literal, "a")
	}
}

func TestSaveAndRestoreState(t *testing.T) {
	l := New("$a $b $c")
	l.NextToken()
	state := l.SaveState()
	second := l.NextToken()
	l.RestoreState(state)
	replay := l.NextToken()
	if second.Literal != replay.Literal || second.Type != replay.Type {
		t.Fatalf("replayed token %+v does not match original %+v", replay, second)
	}
}

func TestBOMStripped(t *testing.T) {
	l := New("\xEF\xBB\xBFhello")
	tok := l.NextToken()
	if tok.Type != IDENT || tok.Literal != "hello" {
		t.Fatalf("got %+v, want IDENT(hello)", tok)
	}
}
