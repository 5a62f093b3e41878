package canonjson

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"unicode/utf8"
)

// Options control rendering.
type Options struct {
	// Indent enables pretty output with the given unit per level. Inline
	// arrays stay on one line.
	Indent string
	// SortKeys orders object members by key code point instead of insertion order.
	SortKeys bool
	// TrailingNewline terminates the document with '\n'.
	TrailingNewline bool
}

// Pretty is the on-disk layout.
var Pretty = Options{Indent: "  ", TrailingNewline: true}

// Canonical is the compact, key-sorted layout used for hashing.
var Canonical = Options{SortKeys: true}

// Encode streams n to w.
func Encode(w io.Writer, n Node, opts Options) error {
	bw := bufio.NewWriter(w)
	e := &encoder{w: bw, opts: opts}
	if err := e.value(n, 0, false); err != nil {
		return err
	}
	if opts.TrailingNewline {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Marshal renders n into a byte slice.
func Marshal(n Node, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, n, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type encoder struct {
	w    *bufio.Writer
	opts Options
	err  error
}

func (e *encoder) write(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s)
}

func (e *encoder) pretty(compact bool) bool {
	return e.opts.Indent != "" && !compact
}

func (e *encoder) newline(depth int) {
	e.write("\n")
	for i := 0; i < depth; i++ {
		e.write(e.opts.Indent)
	}
}

func (e *encoder) value(n Node, depth int, compact bool) error {
	switch v := n.(type) {
	case *Object:
		e.object(v, depth, compact)
	case *Array:
		e.array(v, depth, compact)
	case String:
		e.write(quote(string(v)))
	case Number:
		if v == "" {
			return fmt.Errorf("canonjson: empty number literal")
		}
		e.write(string(v))
	case Bool:
		e.write(strconv.FormatBool(bool(v)))
	case Null:
		e.write("null")
	default:
		return fmt.Errorf("canonjson: cannot encode %s", TypeName(n))
	}
	return e.err
}

func (e *encoder) object(o *Object, depth int, compact bool) {
	if o == nil || len(o.Members) == 0 {
		e.write("{}")
		return
	}
	members := o.Members
	if e.opts.SortKeys {
		members = append([]Member(nil), members...)
		sort.SliceStable(members, func(i, j int) bool { return members[i].Key < members[j].Key })
	}
	e.write("{")
	for i, m := range members {
		if i > 0 {
			e.write(",")
			if !e.pretty(compact) && e.opts.Indent != "" {
				e.write(" ")
			}
		}
		if e.pretty(compact) {
			e.newline(depth + 1)
		}
		e.write(quote(m.Key))
		if e.opts.Indent != "" {
			e.write(": ")
		} else {
			e.write(":")
		}
		if err := e.value(m.Value, depth+1, compact); err != nil && e.err == nil {
			e.err = err
		}
	}
	if e.pretty(compact) {
		e.newline(depth)
	}
	e.write("}")
}

func (e *encoder) array(a *Array, depth int, compact bool) {
	if a == nil || len(a.Items) == 0 {
		e.write("[]")
		return
	}
	inner := compact || a.Inline
	e.write("[")
	for i, item := range a.Items {
		if i > 0 {
			e.write(",")
			if !e.pretty(inner) && e.opts.Indent != "" {
				e.write(" ")
			}
		}
		if e.pretty(inner) {
			e.newline(depth + 1)
		}
		if err := e.value(item, depth+1, inner); err != nil && e.err == nil {
			e.err = err
		}
	}
	if e.pretty(inner) {
		e.newline(depth)
	}
	e.write("]")
}

const hexDigits = "0123456789abcdef"

// quote renders s as a JSON string. Non-ASCII text is written as UTF-8 and
// only the characters JSON requires are escaped.
func quote(s string) string {
	var b bytes.Buffer
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"':
				b.WriteString(`\"`)
			case '\\':
				b.WriteString(`\\`)
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			case '\b':
				b.WriteString(`\b`)
			case '\f':
				b.WriteString(`\f`)
			default:
				if c < 0x20 {
					b.WriteString(`\u00`)
					b.WriteByte(hexDigits[c>>4])
					b.WriteByte(hexDigits[c&0xF])
				} else {
					b.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteString(`�`)
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	b.WriteByte('"')
	return b.String()
}
