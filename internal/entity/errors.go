package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds raised while loading, resolving and storing entries.
var (
	ErrSchemaViolation      = errors.New("schema violation")
	ErrUnknownCategory      = errors.New("unknown category")
	ErrIdentityMismatch     = errors.New("identity mismatch")
	ErrMissingReference     = errors.New("missing reference")
	ErrReferenceCycle       = errors.New("reference cycle")
	ErrEmptyParadigm        = errors.New("empty paradigm")
	ErrInappropriateBeyging = errors.New("inappropriate beyging")
	ErrRoundTrip            = errors.New("round-trip mismatch")
	ErrEntryNotFound        = errors.New("entry not found")
	ErrDuplicateIdentity    = errors.New("entry identity already exists")
)

// FieldError pins an error kind to a dotted path inside an entry.
type FieldError struct {
	Kind error
	Path string
	Msg  string
}

func (e *FieldError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Path, e.Msg)
}

func (e *FieldError) Unwrap() error { return e.Kind }

// IdentityMismatchError is returned when a stored identity disagrees with the derived one.
type IdentityMismatchError struct {
	Stored  string
	Derived string
}

func (e *IdentityMismatchError) Error() string {
	return fmt.Sprintf("%s: stored %q, derived %q", ErrIdentityMismatch, e.Stored, e.Derived)
}

func (e *IdentityMismatchError) Unwrap() error { return ErrIdentityMismatch }

// MissingReferenceError names the entry whose referent could not be found.
type MissingReferenceError struct {
	Identity string
	Referent string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("%s: %s references %s", ErrMissingReference, e.Identity, e.Referent)
}

func (e *MissingReferenceError) Unwrap() error { return ErrMissingReference }

// CycleError lists the identities that could not be resolved.
type CycleError struct {
	Identities []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrReferenceCycle, strings.Join(e.Identities, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrReferenceCycle }

// EntryError attaches the file and identity of the entry an error belongs to.
type EntryError struct {
	Path     string
	Identity string
	Err      error
}

func (e *EntryError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
	}
	if e.Identity != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("(" + e.Identity + ")")
	}
	if b.Len() > 0 {
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *EntryError) Unwrap() error { return e.Err }
