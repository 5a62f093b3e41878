package entity

import (
	"sort"
	"strings"
)

// A beyging tag is the dotted path of a sub-table, e.g. "et" or
// "positive.strong.singular". A tag selects every form below it.

func fullCases() *CaseForms { return NewCaseForms("-", "-", "-", "-") }

func fullGenders() *GenderCases {
	return &GenderCases{Masculine: fullCases(), Feminine: fullCases(), Neuter: fullCases()}
}

func fullNumbers() *NumberGenderCases {
	return &NumberGenderCases{Singular: fullGenders(), Plural: fullGenders()}
}

func fullStage() *StageBlock { return &StageBlock{Strong: fullNumbers(), Weak: fullNumbers()} }

func fullPersons() *PersonSet { return &PersonSet{str("-"), str("-"), str("-")} }

func fullMood() *VerbForms {
	tense := func() *TenseForms { return &TenseForms{Singular: fullPersons(), Plural: fullPersons()} }
	return &VerbForms{Present: tense(), Past: tense()}
}

func fullVoice() *Voice {
	return &Voice{
		Infinitive:  str("-"),
		Indicative:  fullMood(),
		Subjunctive: fullMood(),
		Imperative:  &Imperative{Singular: str("-"), Plural: str("-"), Clipped: str("-")},
		Supine:      str("-"),
	}
}

// templates returns fully populated paradigms covering every shape of c.
func templates(c Category) []Paradigm {
	switch c {
	case Noun, ProperName:
		nn := func() *NounNumber { return &NounNumber{Bare: fullCases(), Definite: fullCases()} }
		return []Paradigm{&NounParadigm{Singular: nn(), Plural: nn()}}
	case Adjective:
		return []Paradigm{&AdjectiveParadigm{
			Positive:    fullStage(),
			Comparative: &StageBlock{Weak: fullNumbers()},
			Superlative: fullStage(),
		}}
	case Article:
		return []Paradigm{&ArticleParadigm{Singular: fullGenders(), Plural: fullGenders()}}
	case Pronoun:
		return []Paradigm{
			&PronounParadigm{Singular: &PronounNumber{Flat: fullCases()}, Plural: &PronounNumber{Flat: fullCases()}},
			&PronounParadigm{Singular: &PronounNumber{Gendered: fullGenders()}, Plural: &PronounNumber{Gendered: fullGenders()}},
		}
	case Numeral:
		return []Paradigm{&NumeralParadigm{
			Singular: fullGenders(),
			Plural:   fullGenders(),
			Strong:   fullNumbers(),
			Weak:     fullNumbers(),
		}}
	case Verb:
		return []Paradigm{&VerbParadigm{
			Active:     fullVoice(),
			Middle:     fullVoice(),
			Participle: &Participle{Present: str("-"), Past: fullStage()},
		}}
	case Particle:
		return []Paradigm{&ParticleParadigm{Comparative: str("-"), Superlative: str("-")}}
	}
	return nil
}

var tagUniverse = buildTagUniverse()

func buildTagUniverse() map[Category]map[string]struct{} {
	out := make(map[Category]map[string]struct{})
	for _, c := range Categories() {
		tags := make(map[string]struct{})
		for _, p := range templates(c) {
			p.Walk(func(l Leaf) {
				segments := strings.Split(l.Table, ".")
				for i := range segments {
					tags[strings.Join(segments[:i+1], ".")] = struct{}{}
				}
			})
		}
		out[c] = tags
	}
	return out
}

// ValidTag reports whether tag names a sub-table of the paradigm shape of c.
func ValidTag(c Category, tag string) bool {
	_, ok := tagUniverse[c][tag]
	return ok
}

// Tags lists every valid tag of c, sorted.
func Tags(c Category) []string {
	out := make([]string, 0, len(tagUniverse[c]))
	for t := range tagUniverse[c] {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// TagCovers reports whether tag selects the sub-table at path.
func TagCovers(tag, path string) bool {
	return path == tag || strings.HasPrefix(path, tag+".")
}
