// Package libdiff compares encoded documents line by line.
package libdiff

import (
	"bytes"
	"strings"

	"github.com/signadot/tony-format/go-reconcile/encode"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	}
	return " "
}

type Line struct {
	Op   Op
	Text string
}

// Lines returns the line diff turning from into to.
func Lines(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)
	var res []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			res = append(res, Line{Op: op, Text: strings.TrimSuffix(ln, "\n")})
		}
	}
	return res
}

// Changed reports whether a diff has any insertion or deletion.
func Changed(lines []Line) bool {
	for _, ln := range lines {
		if ln.Op != Equal {
			return true
		}
	}
	return false
}

// Pretty renders lines with a +, - or blank prefix. Changed lines are
// colored when colors is not nil.
func Pretty(lines []Line, colors *encode.Colors) string {
	var sb strings.Builder
	for _, ln := range lines {
		s := ln.Op.String() + " " + ln.Text
		if colors != nil {
			switch ln.Op {
			case Insert:
				s = colors.Color(encode.InsertColor, s)
			case Delete:
				s = colors.Color(encode.DeleteColor, s)
			}
		}
		sb.WriteString(s)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Values encodes from and to and diffs the results.
func Values(from, to any, opts ...encode.EncodeOption) ([]Line, error) {
	fb, tb := &bytes.Buffer{}, &bytes.Buffer{}
	if err := encode.Encode(from, fb, opts...); err != nil {
		return nil, err
	}
	if err := encode.Encode(to, tb, opts...); err != nil {
		return nil, err
	}
	return Lines(fb.String(), tb.String()), nil
}
