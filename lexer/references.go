package lexer

import "strconv"

// PathSegment is one step of a link reference path: a property name,
// optionally followed by an array index.
type PathSegment struct {
	Name     string
	HasIndex bool
	Index    int
}

// LinkRef is a parsed `$^...name[i].name...` reference: Ups carets ascend
// Ups levels from the reference's location before the segment walk begins;
// Ups == 0 means the walk starts at the tree root.
type LinkRef struct {
	Ups      int
	Segments []PathSegment
}

// String reconstructs the canonical `linkTo` syntax for wire output.
func (l LinkRef) String() string {
	s := "$"
	for i := 0; i < l.Ups; i++ {
		s += "^"
	}
	for i, seg := range l.Segments {
		if i > 0 {
			s += "."
		}
		s += seg.Name
		if seg.HasIndex {
			s += "[" + strconv.Itoa(seg.Index) + "]"
		}
	}
	return s
}

// ReadReference parses a reference. c must be positioned right after the
// leading '$'; dollarPos is its byte offset, used for error spans.
func ReadReference(c *Cursor, dollarPos int) (LinkRef, error) {
	var ref LinkRef
	for c.Peek() == '^' {
		c.Advance()
		ref.Ups++
	}

	seg, err := readPathSegment(c, dollarPos)
	if err != nil {
		return LinkRef{}, err
	}
	ref.Segments = append(ref.Segments, seg)

	for c.Peek() == '.' {
		c.Advance()
		seg, err := readPathSegment(c, dollarPos)
		if err != nil {
			return LinkRef{}, err
		}
		ref.Segments = append(ref.Segments, seg)
	}

	return ref, nil
}

func readPathSegment(c *Cursor, dollarPos int) (PathSegment, error) {
	name := ReadIdentRun(c)
	if name == "" {
		return PathSegment{}, lexErr(dollarPos, c.Pos(), "expected identifier in reference path")
	}
	seg := PathSegment{Name: name}

	if c.Peek() == '[' {
		c.Advance()
		start := c.Pos()
		for isDigitASCII[c.Peek()] {
			c.Advance()
		}
		digits := c.Slice(start, c.Pos())
		if digits == "" {
			return PathSegment{}, lexErr(dollarPos, c.Pos(), "expected digits in array index")
		}
		if !c.Consume("]") {
			return PathSegment{}, lexErr(dollarPos, c.Pos(), "expected ']' after array index")
		}
		idx, err := strconv.Atoi(digits)
		if err != nil {
			return PathSegment{}, lexErr(dollarPos, c.Pos(), "invalid array index")
		}
		seg.HasIndex = true
		seg.Index = idx
	}

	return seg, nil
}
