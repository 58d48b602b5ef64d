package fuzztests

import "testing"

const maxFuzzInput = 1 << 16 // 64 KiB

// languageSeeds cover every statement form and most operators.
var languageSeeds = []string{
	"",
	"x = 1;",
	"let a = 1 + 2 * 3 ** 4 - 5 / 6 % 7;",
	"const int n = 0x1F + 0o17 + 0b101 + 1_000ul;",
	"float f = 1.5f; double d = 2.5e-3;",
	"s = 'a\\n\\x41\\u00e9' + \"q\";",
	"y = a ? b : c ? d : e;",
	"y = !a && b || typeof c == 'int' && d instanceof E;",
	"v = a.b[1:2][:n][i](c, d)++;",
	"if (x) { a(); } else if (y) { b(); } else { c(); }",
	"for (let i = 0; i < 10; i++) { if (i == 3) { continue; } break; }",
	"while (x > 0) { x -= 1; }",
	"def add(a, int b, c = 1, int d = 2) { return a + b; }",
	"class P(Base, Other) { int x = 0; def get() { return x; } }",
	"print(greet('unsure'));",
	"def f() { while (a) { def g() { return; } } }",
	"(((1)))",
	"x = (1 + 2;",
	"}",
	"let x = 1 2;",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range languageSeeds {
		f.Add([]byte(seed))
	}
}

// clampInput copies input, cutting it to maxFuzzInput.
func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
