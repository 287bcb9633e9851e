// Package packed encodes grammar state into dense 64-bit values.
//
// Chart entries store assignments and dependencies as uint64 slices so that
// comparison, hashing and copying stay cheap. All bit manipulation lives in
// this package; callers work with the tagged structs.
//
// Layouts (low bits first):
//
//	Assignment: predicate 20 | position 10 | var 10
//	Unfilled:   subject predicate 20 | subject position 10 | arg 4 | object var 10
//	Filled:     subject predicate 20 | subject position 10 | arg 4 | object predicate 20 | object position 10
package packed

import (
	"errors"
	"fmt"

	"github.com/hupe1980/ccgchart/core"
)

const (
	predicateBits = 20
	positionBits  = 10
	varBits       = 10
	argBits       = 4

	predicateMask = 1<<predicateBits - 1
	positionMask  = 1<<positionBits - 1
	varMask       = 1<<varBits - 1
	argMask       = 1<<argBits - 1

	// MaxPredicate is the largest encodable predicate id.
	MaxPredicate = predicateMask
	// MaxPosition is the largest encodable sentence position.
	MaxPosition = positionMask
	// MaxVar is the largest encodable variable id.
	MaxVar = varMask
	// MaxArg is the largest encodable argument index.
	MaxArg = argMask
)

// ErrFieldOverflow is returned when a field does not fit its bit width.
var ErrFieldOverflow = errors.New("packed: field overflow")

// Assignment binds a variable to a predicate at a sentence position.
type Assignment struct {
	Var       core.VarID
	Predicate core.PredicateID
	Position  int
}

// Unfilled is a dependency whose subject is known but whose object is still a
// variable of the category.
type Unfilled struct {
	SubjectPredicate core.PredicateID
	SubjectPosition  int
	Arg              int
	ObjectVar        core.VarID
}

// Filled is a fully resolved predicate-argument dependency.
type Filled struct {
	SubjectPredicate core.PredicateID
	SubjectPosition  int
	Arg              int
	ObjectPredicate  core.PredicateID
	ObjectPosition   int
}

func check(name string, v, limit int64) error {
	if v < 0 || v > limit {
		return fmt.Errorf("%w: %s=%d not in [0,%d]", ErrFieldOverflow, name, v, limit)
	}
	return nil
}

// EncodeAssignment packs a.
func EncodeAssignment(a Assignment) (uint64, error) {
	if err := errors.Join(
		check("predicate", int64(a.Predicate), MaxPredicate),
		check("position", int64(a.Position), MaxPosition),
		check("var", int64(a.Var), MaxVar),
	); err != nil {
		return 0, err
	}
	return uint64(a.Predicate) |
		uint64(a.Position)<<predicateBits |
		uint64(a.Var)<<(predicateBits+positionBits), nil
}

// DecodeAssignment unpacks v.
func DecodeAssignment(v uint64) Assignment {
	return Assignment{
		Predicate: core.PredicateID(v & predicateMask),
		Position:  int(v >> predicateBits & positionMask),
		Var:       core.VarID(v >> (predicateBits + positionBits) & varMask),
	}
}

// EncodeUnfilled packs u.
func EncodeUnfilled(u Unfilled) (uint64, error) {
	if err := errors.Join(
		check("subject predicate", int64(u.SubjectPredicate), MaxPredicate),
		check("subject position", int64(u.SubjectPosition), MaxPosition),
		check("arg", int64(u.Arg), MaxArg),
		check("object var", int64(u.ObjectVar), MaxVar),
	); err != nil {
		return 0, err
	}
	return uint64(u.SubjectPredicate) |
		uint64(u.SubjectPosition)<<predicateBits |
		uint64(u.Arg)<<(predicateBits+positionBits) |
		uint64(u.ObjectVar)<<(predicateBits+positionBits+argBits), nil
}

// DecodeUnfilled unpacks v.
func DecodeUnfilled(v uint64) Unfilled {
	return Unfilled{
		SubjectPredicate: core.PredicateID(v & predicateMask),
		SubjectPosition:  int(v >> predicateBits & positionMask),
		Arg:              int(v >> (predicateBits + positionBits) & argMask),
		ObjectVar:        core.VarID(v >> (predicateBits + positionBits + argBits) & varMask),
	}
}

// EncodeFilled packs f.
func EncodeFilled(f Filled) (uint64, error) {
	if err := errors.Join(
		check("subject predicate", int64(f.SubjectPredicate), MaxPredicate),
		check("subject position", int64(f.SubjectPosition), MaxPosition),
		check("arg", int64(f.Arg), MaxArg),
		check("object predicate", int64(f.ObjectPredicate), MaxPredicate),
		check("object position", int64(f.ObjectPosition), MaxPosition),
	); err != nil {
		return 0, err
	}
	const objShift = predicateBits + positionBits + argBits
	return uint64(f.SubjectPredicate) |
		uint64(f.SubjectPosition)<<predicateBits |
		uint64(f.Arg)<<(predicateBits+positionBits) |
		uint64(f.ObjectPredicate)<<objShift |
		uint64(f.ObjectPosition)<<(objShift+predicateBits), nil
}

// DecodeFilled unpacks v.
func DecodeFilled(v uint64) Filled {
	const objShift = predicateBits + positionBits + argBits
	return Filled{
		SubjectPredicate: core.PredicateID(v & predicateMask),
		SubjectPosition:  int(v >> predicateBits & positionMask),
		Arg:              int(v >> (predicateBits + positionBits) & argMask),
		ObjectPredicate:  core.PredicateID(v >> objShift & predicateMask),
		ObjectPosition:   int(v >> (objShift + predicateBits) & positionMask),
	}
}

// Assignments packs a slice of assignments.
func Assignments(as []Assignment) ([]uint64, error) {
	out := make([]uint64, len(as))
	for i, a := range as {
		v, err := EncodeAssignment(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// UnfilledDeps packs a slice of unfilled dependencies.
func UnfilledDeps(us []Unfilled) ([]uint64, error) {
	out := make([]uint64, len(us))
	for i, u := range us {
		v, err := EncodeUnfilled(u)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// FilledDeps packs a slice of filled dependencies.
func FilledDeps(fs []Filled) ([]uint64, error) {
	out := make([]uint64, len(fs))
	for i, f := range fs {
		v, err := EncodeFilled(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
