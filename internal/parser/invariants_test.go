package parser

import (
	"testing"

	"unsure/internal/testkit"
)

func TestSpanInvariants(t *testing.T) {
	sources := []string{
		"",
		"x = 1 + 2 * 3;",
		"let y = a ? b : c ? d : e;\nprint(y);",
		"  z = (1 - 2) - 3;  ",
		"y = -a.b[1:2](c);\nw = x++;",
		"if (a) { x = 1; } else if (b) { x = 2; } else { x = 3; }",
		"for (let i = 0; i < 10; i++) { if (i == 5) { break; } }",
		"def add(a, int b = 2) { return a + b; }\nclass P(Base) { int x = 0; def get() { return x; } }",
		"while (x > 0) {\n  x = x - 1;\n}\n",
	}
	for _, src := range sources {
		prog := mustParse(t, src)
		if err := testkit.CheckSpanInvariants(prog); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}
