// Package testkit holds structural checks shared by parser and codegen tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"unsure/internal/ast"
	"unsure/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed program:
// 1) prog.Span belongs to prog.File and lies within its content
// 2) every allocated node has a non-empty span inside prog.Span
// 3) operands of unary, binary and ternary nodes lie inside their parent
// 4) top-level statements are in source order and do not overlap
func CheckSpanInvariants(prog *ast.Program) error {
	if prog == nil || prog.File == nil || prog.Builder == nil {
		return fmt.Errorf("nil program, file or builder")
	}
	sf := prog.File

	// 1) program span sanity
	if prog.Span.File != sf.ID {
		return fmt.Errorf("program span points to different file id: got=%d want=%d", prog.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if prog.Span.Start > prog.Span.End || prog.Span.End > lenContent {
		return fmt.Errorf("program span %v is outside content of %d bytes", prog.Span, lenContent)
	}

	// 2) каждый узел внутри программы
	inside := func(what string, sp source.Span) error {
		if sp.End <= sp.Start {
			return fmt.Errorf("%s has an empty span: %v", what, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.Start < prog.Span.Start || sp.End > prog.Span.End {
			return fmt.Errorf("%s span %v is outside program span %v", what, sp, prog.Span)
		}
		return nil
	}
	exprs, stmts := prog.Builder.Exprs, prog.Builder.Stmts
	for i := uint32(1); i <= stmts.Arena.Len(); i++ {
		st := stmts.Get(ast.StmtID(i))
		if err := inside(fmt.Sprintf("statement %d (%s)", i, st.Kind), st.Span); err != nil {
			return err
		}
	}
	for i := uint32(1); i <= exprs.Arena.Len(); i++ {
		id := ast.ExprID(i)
		e := exprs.Get(id)
		if err := inside(fmt.Sprintf("expression %d (%s)", i, e.Kind), e.Span); err != nil {
			return err
		}
		// 3) операнды внутри родителя
		for _, child := range operands(exprs, id) {
			if !child.IsValid() {
				continue
			}
			cs := exprs.Get(child).Span
			if cs.Start < e.Span.Start || cs.End > e.Span.End {
				return fmt.Errorf("operand span %v escapes %s span %v", cs, e.Kind, e.Span)
			}
		}
	}

	// 4) top-level order
	var prevEnd uint32
	for i, id := range prog.Statements {
		sp := stmts.Get(id).Span
		if i > 0 && sp.Start < prevEnd {
			return fmt.Errorf("statement %d span %v overlaps the previous one (ends at %d)", i, sp, prevEnd)
		}
		prevEnd = sp.End
	}
	return nil
}

func operands(exprs *ast.Exprs, id ast.ExprID) []ast.ExprID {
	if data, ok := exprs.Unary(id); ok {
		return []ast.ExprID{data.Operand}
	}
	if data, ok := exprs.Binary(id); ok {
		return []ast.ExprID{data.Left, data.Right}
	}
	if data, ok := exprs.Ternary(id); ok {
		return []ast.ExprID{data.Cond, data.Then, data.Else}
	}
	return nil
}
