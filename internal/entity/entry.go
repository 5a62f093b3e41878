package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/eslsoft/ordasafn/pkg/canonjson"
)

// Continuation is one further word of a compound conjunction.
type Continuation struct {
	Text string
	Hook Hook
}

// Entry is one word of the corpus.
type Entry struct {
	// Store bookkeeping, never part of the document.
	ID        int64
	CreatedAt time.Time
	EditedAt  time.Time

	Lemma        string
	Category     Category
	Subcategory  Subcategory
	Gender       Gender
	Person       Person
	NumericValue *Decimal
	Meaning      string
	// Compound is nil for atomic entries.
	Compound []Part
	// Paradigm is derived for compounds and nil for indeclinable entries.
	Paradigm     Paradigm
	Governs      []Case
	Multiword    []Continuation
	Dependent    bool
	Indeclinable bool
	Identity     string
	Hash         string
}

// IsCompound reports whether the entry is defined by parts.
func (e *Entry) IsCompound() bool {
	return e.Compound != nil
}

// Form selects which parts of an entry a document carries.
type Form int

const (
	// DiskForm is the file layout: derived tables of compounds are left out.
	DiskForm Form = iota
	// FullForm includes derived tables.
	FullForm
	// HashForm is DiskForm without identity and hash.
	HashForm
)

// Document renders the entry as an ordered JSON object.
func (e *Entry) Document(form Form) *canonjson.Object {
	o := canonjson.NewObject().
		Set("lemma", canonjson.String(e.Lemma)).
		Set("category", canonjson.String(e.Category.String()))
	if e.Subcategory.Specified() {
		o.Set("subcategory", canonjson.String(e.Subcategory.String()))
	}
	if e.Gender.Specified() {
		o.Set("gender", canonjson.String(e.Gender.String()))
	}
	if e.Person.Specified() {
		o.Set("person", canonjson.String(e.Person.String()))
	}
	if e.NumericValue != nil {
		o.Set("numeric_value", canonjson.Number(e.NumericValue.String()))
	}
	if e.Meaning != "" {
		o.Set("meaning", canonjson.String(e.Meaning))
	}
	if e.Compound != nil {
		parts := &canonjson.Array{Items: make([]canonjson.Node, len(e.Compound))}
		for i, part := range e.Compound {
			parts.Items[i] = part.node()
		}
		o.Set("compound", parts)
	}
	if e.Paradigm != nil && (form == FullForm || !e.IsCompound()) {
		e.Paradigm.encode(o)
	}
	if len(e.Governs) > 0 {
		names := make([]string, len(e.Governs))
		for i, c := range e.Governs {
			names[i] = c.String()
		}
		o.Set("governs", canonjson.Strings(names, true))
	}
	if len(e.Multiword) > 0 {
		words := &canonjson.Array{Items: make([]canonjson.Node, len(e.Multiword))}
		for i, w := range e.Multiword {
			words.Items[i] = canonjson.NewObject().
				Set("text", canonjson.String(w.Text)).
				Set("hook", canonjson.String(w.Hook.String()))
		}
		o.Set("multiword", words)
	}
	if e.Dependent {
		o.Set("dependent", canonjson.Bool(true))
	}
	if e.Indeclinable {
		o.Set("indeclinable", canonjson.Bool(true))
	}
	if form != HashForm {
		if e.Identity != "" {
			o.Set("identity", canonjson.String(e.Identity))
		}
		if e.Hash != "" {
			o.Set("hash", canonjson.String(e.Hash))
		}
	}
	return o
}

// Encode renders the on-disk bytes of e.
func Encode(e *Entry) ([]byte, error) {
	return canonjson.Marshal(e.Document(DiskForm), canonjson.Pretty)
}

// ContentHash is the SHA-256 of the compact, key-sorted hash form of e.
func ContentHash(e *Entry) (string, error) {
	data, err := canonjson.Marshal(e.Document(HashForm), canonjson.Canonical)
	if err != nil {
		return "", fmt.Errorf("render hash form: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// DeriveIdentity computes the identity key of e:
// <abbrev>-<lemma>[-<gender>][-_<meaning>_][-ó].
func DeriveIdentity(e *Entry) string {
	return AbbrevOf(e.Category, e.Subcategory) + "-" + FileStem(e)
}

// FileStem is the identity without its category prefix, used as file name.
func FileStem(e *Entry) string {
	s := e.Lemma
	if e.Gender.Specified() {
		s += "-" + e.Gender.Alias().Abbrev
	}
	if e.Meaning != "" {
		s += "-_" + e.Meaning + "_"
	}
	if e.Dependent {
		s += "-ó"
	}
	return s
}

// Seal derives identity and content hash. A stored identity that differs
// from the derived one is an error; a stale hash is replaced and reported
// through the returned flag.
func (e *Entry) Seal() (hashChanged bool, err error) {
	derived := DeriveIdentity(e)
	if e.Identity != "" && e.Identity != derived {
		return false, &IdentityMismatchError{Stored: e.Identity, Derived: derived}
	}
	e.Identity = derived
	h, err := ContentHash(e)
	if err != nil {
		return false, err
	}
	hashChanged = e.Hash != h
	e.Hash = h
	return hashChanged, nil
}

// Clone returns a deep copy of e.
func (e *Entry) Clone() *Entry {
	out := *e
	if e.NumericValue != nil {
		v := *e.NumericValue
		out.NumericValue = &v
	}
	if e.Compound != nil {
		out.Compound = make([]Part, len(e.Compound))
		for i, p := range e.Compound {
			out.Compound[i] = clonePart(p)
		}
	}
	if e.Paradigm != nil {
		out.Paradigm = e.Paradigm.Clone()
	}
	out.Governs = append([]Case(nil), e.Governs...)
	out.Multiword = append([]Continuation(nil), e.Multiword...)
	return &out
}

func clonePart(p Part) Part {
	switch v := p.(type) {
	case *LiteralPart:
		c := *v
		return &c
	case *ReferencePart:
		c := *v
		c.Beygingar = append([]string(nil), v.Beygingar...)
		return &c
	case *AdjectiveFormPart:
		c := *v
		c.Beygingar = append([]string(nil), v.Beygingar...)
		return &c
	}
	return p
}

// Changes lists the document paths that differ between two entries, taking
// derived tables into account.
func Changes(before, after *Entry) []string {
	return canonjson.Diff(before.Document(FullForm), after.Document(FullForm))
}
