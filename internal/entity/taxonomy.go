package entity

import (
	"fmt"
	"strings"
)

// Alias is the triple under which an enumerator is known. Name is the
// canonical Icelandic spelling written to disk, Abbrev the short token used in
// identities and Slug the English name used for directories and columns.
type Alias struct {
	Name   string
	Abbrev string
	Slug   string
}

func (a Alias) matches(s string) bool {
	return strings.EqualFold(s, a.Name) || strings.EqualFold(s, a.Abbrev) || strings.EqualFold(s, a.Slug)
}

type enumTable[T comparable] struct {
	kind    string
	order   []T
	aliases map[T]Alias
}

func (t enumTable[T]) alias(v T) Alias {
	return t.aliases[v]
}

func (t enumTable[T]) parse(s string) (T, error) {
	s = strings.TrimSpace(s)
	for _, v := range t.order {
		if t.aliases[v].matches(s) {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", t.kind, s)
}

// Category is the top-level word class.
type Category int

const (
	CategoryUnspecified Category = iota
	Noun
	Adjective
	Article
	Pronoun
	Numeral
	Verb
	Particle
	ProperName
)

var categories = enumTable[Category]{
	kind:  "category",
	order: []Category{Noun, Adjective, Article, Pronoun, Numeral, Verb, Particle, ProperName},
	aliases: map[Category]Alias{
		Noun:       {"nafnorð", "n", "noun"},
		Adjective:  {"lýsingarorð", "adj", "adjective"},
		Article:    {"greinir", "art", "article"},
		Pronoun:    {"fornafn", "pron", "pronoun"},
		Numeral:    {"töluorð", "num", "numeral"},
		Verb:       {"sagnorð", "v", "verb"},
		Particle:   {"smáorð", "prt", "particle"},
		ProperName: {"sérnafn", "pn", "proper-name"},
	},
}

// Categories lists every category in taxonomy order.
func Categories() []Category {
	return append([]Category(nil), categories.order...)
}

// ParseCategory accepts any alias of a category, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c, err := categories.parse(s)
	if err != nil {
		return c, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

func (c Category) Alias() Alias { return categories.alias(c) }
func (c Category) String() string { return c.Alias().Name }

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categories.aliases[c]
	return ok
}

// Subcategories lists the subcategories a category requires, if any.
func (c Category) Subcategories() []Subcategory {
	var out []Subcategory
	for _, s := range subcategories.order {
		if subcategoryParent[s] == c {
			out = append(out, s)
		}
	}
	return out
}

// RequiresSubcategory reports whether entries of c must carry a subcategory.
func (c Category) RequiresSubcategory() bool {
	return len(c.Subcategories()) > 0
}

// Subcategory refines pronouns, numerals, particles and proper names.
type Subcategory int

const (
	SubcategoryUnspecified Subcategory = iota
	PersonalPronoun
	ReflexivePronoun
	PossessivePronoun
	DemonstrativePronoun
	IndefinitePronoun
	InterrogativePronoun
	Cardinal
	Ordinal
	Adverb
	Preposition
	Conjunction
	CompoundConjunction
	Interjection
	InfinitiveMarker
	GivenName
	MiddleName
	FamilyName
	PlaceName
	OtherName
)

var subcategories = enumTable[Subcategory]{
	kind: "subcategory",
	order: []Subcategory{
		PersonalPronoun, ReflexivePronoun, PossessivePronoun, DemonstrativePronoun, IndefinitePronoun, InterrogativePronoun,
		Cardinal, Ordinal,
		Adverb, Preposition, Conjunction, CompoundConjunction, Interjection, InfinitiveMarker,
		GivenName, MiddleName, FamilyName, PlaceName, OtherName,
	},
	aliases: map[Subcategory]Alias{
		PersonalPronoun:      {"persónufornafn", "pers", "personal"},
		ReflexivePronoun:     {"afturbeygt fornafn", "refl", "reflexive"},
		PossessivePronoun:    {"eignarfornafn", "poss", "possessive"},
		DemonstrativePronoun: {"ábendingarfornafn", "dem", "demonstrative"},
		IndefinitePronoun:    {"óákveðið fornafn", "indef", "indefinite"},
		InterrogativePronoun: {"spurnarfornafn", "inter", "interrogative"},
		Cardinal:             {"frumtala", "card", "cardinal"},
		Ordinal:              {"raðtala", "ord", "ordinal"},
		Adverb:               {"atviksorð", "adv", "adverb"},
		Preposition:          {"forsetning", "prep", "preposition"},
		Conjunction:          {"samtenging", "conj", "conjunction"},
		CompoundConjunction:  {"fleiryrt samtenging", "mconj", "compound-conjunction"},
		Interjection:         {"upphrópun", "interj", "interjection"},
		InfinitiveMarker:     {"nafnháttarmerki", "infm", "infinitive-marker"},
		GivenName:            {"eiginnafn", "gn", "given"},
		MiddleName:           {"millinafn", "mn", "middle"},
		FamilyName:           {"ættarnafn", "fam", "family"},
		PlaceName:            {"örnefni", "plc", "place"},
		OtherName:            {"annað sérnafn", "oth", "other"},
	},
}

var subcategoryParent = map[Subcategory]Category{
	PersonalPronoun: Pronoun, ReflexivePronoun: Pronoun, PossessivePronoun: Pronoun,
	DemonstrativePronoun: Pronoun, IndefinitePronoun: Pronoun, InterrogativePronoun: Pronoun,
	Cardinal: Numeral, Ordinal: Numeral,
	Adverb: Particle, Preposition: Particle, Conjunction: Particle,
	CompoundConjunction: Particle, Interjection: Particle, InfinitiveMarker: Particle,
	GivenName: ProperName, MiddleName: ProperName, FamilyName: ProperName, PlaceName: ProperName, OtherName: ProperName,
}

// ParseSubcategory accepts any alias of a subcategory.
func ParseSubcategory(s string) (Subcategory, error) {
	sc, err := subcategories.parse(s)
	if err != nil {
		return sc, fmt.Errorf("%w: %v", ErrUnknownCategory, err)
	}
	return sc, nil
}

func (s Subcategory) Alias() Alias { return subcategories.alias(s) }
func (s Subcategory) String() string { return s.Alias().Name }
func (s Subcategory) Parent() Category { return subcategoryParent[s] }
func (s Subcategory) Specified() bool { return s != SubcategoryUnspecified }
func (s Subcategory) BelongsTo(c Category) bool { return s.Specified() && subcategoryParent[s] == c }

// Gender is grammatical gender.
type Gender int

const (
	GenderUnspecified Gender = iota
	Masculine
	Feminine
	Neuter
)

var genders = enumTable[Gender]{
	kind:  "gender",
	order: []Gender{Masculine, Feminine, Neuter},
	aliases: map[Gender]Alias{
		Masculine: {"karlkyn", "m", "masculine"},
		Feminine:  {"kvenkyn", "f", "feminine"},
		Neuter:    {"hvorugkyn", "n", "neuter"},
	},
}

// Genders lists genders in paradigm order.
func Genders() []Gender { return append([]Gender(nil), genders.order...) }

func ParseGender(s string) (Gender, error) { return genders.parse(s) }
func (g Gender) Alias() Alias { return genders.alias(g) }
func (g Gender) String() string { return g.Alias().Name }
func (g Gender) Specified() bool { return g != GenderUnspecified }

// Case is grammatical case; its value is the position inside a case-tuple.
type Case int

const (
	Nominative Case = iota
	Accusative
	Dative
	Genitive
)

var grammaticalCases = enumTable[Case]{
	kind:  "case",
	order: []Case{Nominative, Accusative, Dative, Genitive},
	aliases: map[Case]Alias{
		Nominative: {"nefnifall", "nf", "nominative"},
		Accusative: {"þolfall", "þf", "accusative"},
		Dative:     {"þágufall", "þgf", "dative"},
		Genitive:   {"eignarfall", "ef", "genitive"},
	},
}

// Cases lists cases in tuple order.
func Cases() []Case { return append([]Case(nil), grammaticalCases.order...) }

func ParseCase(s string) (Case, error) { return grammaticalCases.parse(s) }
func (c Case) Alias() Alias { return grammaticalCases.alias(c) }
func (c Case) String() string { return c.Alias().Name }

// Person is grammatical person.
type Person int

const (
	PersonUnspecified Person = iota
	FirstPerson
	SecondPerson
	ThirdPerson
)

var persons = enumTable[Person]{
	kind:  "person",
	order: []Person{FirstPerson, SecondPerson, ThirdPerson},
	aliases: map[Person]Alias{
		FirstPerson:  {"fyrsta persóna", "1p", "first"},
		SecondPerson: {"önnur persóna", "2p", "second"},
		ThirdPerson:  {"þriðja persóna", "3p", "third"},
	},
}

func ParsePerson(s string) (Person, error) { return persons.parse(s) }
func (p Person) Alias() Alias { return persons.alias(p) }
func (p Person) String() string { return p.Alias().Name }
func (p Person) Specified() bool { return p != PersonUnspecified }

// JoinType tells how a literal part attaches to the part on its right.
type JoinType int

const (
	JoinUnspecified JoinType = iota
	StemJoin
	GenitiveJoin
	LinkingJoin
)

var joinTypes = enumTable[JoinType]{
	kind:  "joining type",
	order: []JoinType{StemJoin, GenitiveJoin, LinkingJoin},
	aliases: map[JoinType]Alias{
		StemJoin:     {"stofnsamsetning", "stofn", "stem"},
		GenitiveJoin: {"eignarfallssamsetning", "eignarfalls", "genitive"},
		LinkingJoin:  {"bandstafssamsetning", "bandstafs", "linking"},
	},
}

func ParseJoinType(s string) (JoinType, error) { return joinTypes.parse(s) }
func (j JoinType) Alias() Alias { return joinTypes.alias(j) }
func (j JoinType) String() string { return j.Alias().Name }

// Hook tells how a multiword continuation attaches to what precedes it.
type Hook int

const (
	HookUnspecified Hook = iota
	Linked
	Loose
)

var hooks = enumTable[Hook]{
	kind:  "hook",
	order: []Hook{Linked, Loose},
	aliases: map[Hook]Alias{
		Linked: {"tengt", "t", "linked"},
		Loose:  {"laust", "l", "loose"},
	},
}

func ParseHook(s string) (Hook, error) { return hooks.parse(s) }
func (h Hook) Alias() Alias { return hooks.alias(h) }
func (h Hook) String() string { return h.Alias().Name }

// AbbrevOf is the identity prefix of an entry: the subcategory's abbreviation
// where the category requires one, the category's otherwise.
func AbbrevOf(c Category, s Subcategory) string {
	if c.RequiresSubcategory() && s.BelongsTo(c) {
		return s.Alias().Abbrev
	}
	return c.Alias().Abbrev
}

// DirectoryOf is the corpus directory, relative to the data root, holding
// entries of the given category and subcategory.
func DirectoryOf(c Category, s Subcategory) string {
	if c.RequiresSubcategory() && s.BelongsTo(c) {
		return c.Alias().Slug + "/" + s.Alias().Slug
	}
	return c.Alias().Slug
}
