package snapshot

import (
	"fmt"

	"github.com/hupe1980/ccgchart/core"
	"github.com/hupe1980/ccgchart/entry"
	"github.com/hupe1980/ccgchart/grammar"
)

func unaryID(r grammar.UnaryRule) int32 {
	if r == nil {
		return noRule
	}
	return r.ID()
}

func combinatorID(c grammar.Combinator) int32 {
	if c == nil {
		return noRule
	}
	return c.ID()
}

func lexiconID(l grammar.LexiconEntry) int32 {
	if l == nil {
		return noRule
	}
	return l.ID()
}

func (e *encoder) ref(r entry.Ref) {
	e.u32(uint32(r.Span.Start))
	e.u32(uint32(r.Span.End))
	e.u32(uint32(r.Index))
}

func (e *encoder) entry(ce *entry.ChartEntry) {
	raw := ce.Raw()

	e.i32(int32(raw.Syntax))
	e.u32(uint32(len(raw.UniqueVars)))
	for _, v := range raw.UniqueVars {
		e.i32(int32(v))
	}
	e.i32(unaryID(raw.RootUnary))
	e.i32(unaryID(raw.LeftUnary))
	e.i32(unaryID(raw.RightUnary))
	e.u64s(raw.Assignments)
	e.u64s(raw.Unfilled)
	e.u64s(raw.Filled)

	if raw.Terminal {
		e.u8(1)
		e.u32(uint32(raw.Span.Start))
		e.u32(uint32(raw.Span.End))
		e.i32(lexiconID(raw.Lexicon))
		e.u32(uint32(len(raw.Trigger)))
		for _, w := range raw.Trigger {
			e.str(w)
		}
		return
	}
	e.u8(0)
	e.ref(raw.Left)
	e.ref(raw.Right)
	e.i32(combinatorID(raw.Combinator))
}

func (d *decoder) ref() entry.Ref {
	start, end := int(d.u32()), int(d.u32())
	return entry.Ref{Span: core.NewSpan(start, end), Index: int(d.u32())}
}

type resolver struct {
	reg grammar.Registry
	err error
}

func (r *resolver) fail(kind string, id int32) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s %d", ErrUnknownRule, kind, id)
	}
}

func (r *resolver) unary(id int32) grammar.UnaryRule {
	if id == noRule {
		return nil
	}
	u, ok := r.reg.UnaryRule(id)
	if !ok {
		r.fail("unary rule", id)
	}
	return u
}

func (r *resolver) combinator(id int32) grammar.Combinator {
	if id == noRule {
		return nil
	}
	c, ok := r.reg.Combinator(id)
	if !ok {
		r.fail("combinator", id)
	}
	return c
}

func (r *resolver) lexicon(id int32) grammar.LexiconEntry {
	if id == noRule {
		return nil
	}
	l, ok := r.reg.LexiconEntry(id)
	if !ok {
		r.fail("lexicon entry", id)
	}
	return l
}

func (d *decoder) entry(r *resolver) *entry.ChartEntry {
	var raw entry.Raw

	raw.Syntax = core.SyntaxID(d.i32())
	if n := d.length(4); n > 0 {
		raw.UniqueVars = make([]core.VarID, n)
		for i := range raw.UniqueVars {
			raw.UniqueVars[i] = core.VarID(d.i32())
		}
	}
	raw.RootUnary = r.unary(d.i32())
	raw.LeftUnary = r.unary(d.i32())
	raw.RightUnary = r.unary(d.i32())
	raw.Assignments = d.u64s()
	raw.Unfilled = d.u64s()
	raw.Filled = d.u64s()

	raw.Terminal = d.u8() == 1
	if raw.Terminal {
		start, end := int(d.u32()), int(d.u32())
		raw.Span = core.NewSpan(start, end)
		raw.Lexicon = r.lexicon(d.i32())
		if n := d.length(4); n > 0 {
			raw.Trigger = make([]string, n)
			for i := range raw.Trigger {
				raw.Trigger[i] = d.str()
			}
		}
	} else {
		raw.Left = d.ref()
		raw.Right = d.ref()
		raw.Combinator = r.combinator(d.i32())
		raw.Span = core.NewSpan(raw.Left.Span.Start, raw.Right.Span.End)
	}

	if d.err != nil || r.err != nil {
		return nil
	}
	return entry.FromRaw(raw)
}
