package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	EntryTable             = "entry"
	CaseFormsTable         = "case_forms"
	GenderCasesTable       = "gender_cases"
	NumberGenderCasesTable = "number_gender_cases"
	VerbFormsTable         = "verb_forms"
	NounTable              = "noun"
	ProperNameTable        = "proper_name"
	AdjectiveTable         = "adjective"
	ArticleTable           = "article"
	PronounTable           = "pronoun"
	NumeralTable           = "numeral"
	VerbTable              = "verb"
	ParticleTable          = "particle"
	ParticleMultiwordTable = "particle_multiword"
	CompoundEntryTable     = "compound_entry"
	CompoundPartTable      = "compound_part"
)

// VerbFormColumns are the person x number x tense columns of verb_forms.
var VerbFormColumns = []string{
	"present_singular_first", "present_singular_second", "present_singular_third",
	"present_plural_first", "present_plural_second", "present_plural_third",
	"past_singular_first", "past_singular_second", "past_singular_third",
	"past_plural_first", "past_plural_second", "past_plural_third",
}

var (
	// EntryColumns holds the columns for the "entry" table.
	EntryColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "identity", Type: field.TypeString, Unique: true},
		{Name: "lemma", Type: field.TypeString},
		{Name: "category", Type: field.TypeString},
		{Name: "subcategory", Type: field.TypeString, Nullable: true},
		{Name: "gender", Type: field.TypeString, Nullable: true},
		{Name: "person", Type: field.TypeString, Nullable: true},
		{Name: "meaning", Type: field.TypeString, Nullable: true},
		{Name: "numeric_value", Type: field.TypeString, Nullable: true},
		{Name: "is_compound", Type: field.TypeBool, Default: false},
		{Name: "dependent", Type: field.TypeBool, Default: false},
		{Name: "indeclinable", Type: field.TypeBool, Default: false},
		{Name: "content_hash", Type: field.TypeString, Size: 64},
		{Name: "created", Type: field.TypeString, Size: 26},
		{Name: "edited", Type: field.TypeString, Size: 26},
	}
	// EntryTableDesc holds the schema information for the "entry" table.
	EntryTableDesc = &schema.Table{
		Name:       EntryTable,
		Columns:    EntryColumns,
		PrimaryKey: []*schema.Column{EntryColumns[0]},
		Indexes: []*schema.Index{
			{Name: "entry_category_subcategory", Unique: false, Columns: []*schema.Column{EntryColumns[3], EntryColumns[4]}},
			{Name: "entry_edited", Unique: false, Columns: []*schema.Column{EntryColumns[14]}},
		},
	}

	// CaseFormsColumns holds the columns for the "case_forms" table.
	CaseFormsColumns = append(ownedColumns(),
		&schema.Column{Name: "nominative", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "accusative", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "dative", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "genitive", Type: field.TypeString, Nullable: true},
	)
	// CaseFormsTableDesc holds the schema information for the "case_forms" table.
	CaseFormsTableDesc = ownedTable(CaseFormsTable, CaseFormsColumns)

	// GenderCasesColumns holds the columns for the "gender_cases" table.
	GenderCasesColumns = append(ownedColumns(),
		refColumn("masculine_id"),
		refColumn("feminine_id"),
		refColumn("neuter_id"),
	)
	// GenderCasesTableDesc holds the schema information for the "gender_cases" table.
	GenderCasesTableDesc = ownedTable(GenderCasesTable, GenderCasesColumns)

	// NumberGenderCasesColumns holds the columns for the "number_gender_cases" table.
	NumberGenderCasesColumns = append(ownedColumns(),
		refColumn("singular_id"),
		refColumn("plural_id"),
	)
	// NumberGenderCasesTableDesc holds the schema information for the "number_gender_cases" table.
	NumberGenderCasesTableDesc = ownedTable(NumberGenderCasesTable, NumberGenderCasesColumns)

	// VerbFormsColumns holds the columns for the "verb_forms" table.
	VerbFormsColumns = append(ownedColumns(), stringColumns(VerbFormColumns...)...)
	// VerbFormsTableDesc holds the schema information for the "verb_forms" table.
	VerbFormsTableDesc = ownedTable(VerbFormsTable, VerbFormsColumns)

	// NounColumns holds the columns for the "noun" table.
	NounColumns = append(siblingColumns(),
		refColumn("et_bare_id"),
		refColumn("et_definite_id"),
		refColumn("ft_bare_id"),
		refColumn("ft_definite_id"),
	)
	// NounTableDesc holds the schema information for the "noun" table.
	NounTableDesc = siblingTable(NounTable, NounColumns)

	// ProperNameColumns holds the columns for the "proper_name" table.
	ProperNameColumns = append(siblingColumns(),
		refColumn("et_bare_id"),
		refColumn("et_definite_id"),
		refColumn("ft_bare_id"),
		refColumn("ft_definite_id"),
	)
	// ProperNameTableDesc holds the schema information for the "proper_name" table.
	ProperNameTableDesc = siblingTable(ProperNameTable, ProperNameColumns)

	// AdjectiveColumns holds the columns for the "adjective" table.
	AdjectiveColumns = append(siblingColumns(),
		refColumn("positive_strong_id"),
		refColumn("positive_weak_id"),
		refColumn("comparative_weak_id"),
		refColumn("superlative_strong_id"),
		refColumn("superlative_weak_id"),
	)
	// AdjectiveTableDesc holds the schema information for the "adjective" table.
	AdjectiveTableDesc = siblingTable(AdjectiveTable, AdjectiveColumns)

	// ArticleColumns holds the columns for the "article" table.
	ArticleColumns = append(siblingColumns(),
		refColumn("singular_id"),
		refColumn("plural_id"),
	)
	// ArticleTableDesc holds the schema information for the "article" table.
	ArticleTableDesc = siblingTable(ArticleTable, ArticleColumns)

	// PronounColumns holds the columns for the "pronoun" table.
	PronounColumns = append(siblingColumns(),
		refColumn("singular_flat_id"),
		refColumn("plural_flat_id"),
		refColumn("singular_gendered_id"),
		refColumn("plural_gendered_id"),
	)
	// PronounTableDesc holds the schema information for the "pronoun" table.
	PronounTableDesc = siblingTable(PronounTable, PronounColumns)

	// NumeralColumns holds the columns for the "numeral" table.
	NumeralColumns = append(siblingColumns(),
		refColumn("singular_id"),
		refColumn("plural_id"),
		refColumn("strong_id"),
		refColumn("weak_id"),
	)
	// NumeralTableDesc holds the schema information for the "numeral" table.
	NumeralTableDesc = siblingTable(NumeralTable, NumeralColumns)

	// VerbColumns holds the columns for the "verb" table.
	VerbColumns = append(append(append(siblingColumns(),
		voiceColumns("active")...),
		voiceColumns("middle")...),
		&schema.Column{Name: "participle_present", Type: field.TypeString, Nullable: true},
		refColumn("participle_past_strong_id"),
		refColumn("participle_past_weak_id"),
	)
	// VerbTableDesc holds the schema information for the "verb" table.
	VerbTableDesc = siblingTable(VerbTable, VerbColumns)

	// ParticleColumns holds the columns for the "particle" table.
	ParticleColumns = append(siblingColumns(),
		&schema.Column{Name: "comparative", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "superlative", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "governs_nominative", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "governs_accusative", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "governs_dative", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "governs_genitive", Type: field.TypeBool, Default: false},
	)
	// ParticleTableDesc holds the schema information for the "particle" table.
	ParticleTableDesc = siblingTable(ParticleTable, ParticleColumns)

	// ParticleMultiwordColumns holds the columns for the "particle_multiword" table.
	ParticleMultiwordColumns = append(ownedColumns(),
		&schema.Column{Name: "position", Type: field.TypeInt},
		&schema.Column{Name: "text", Type: field.TypeString},
		&schema.Column{Name: "hook", Type: field.TypeString},
	)
	// ParticleMultiwordTableDesc holds the schema information for the "particle_multiword" table.
	ParticleMultiwordTableDesc = ownedTable(ParticleMultiwordTable, ParticleMultiwordColumns)

	// CompoundPartColumns holds the columns for the "compound_part" table.
	CompoundPartColumns = append(ownedColumns(),
		&schema.Column{Name: "kind", Type: field.TypeString},
		&schema.Column{Name: "ref_identity", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "literal", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "joining_type", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "adjective_form", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "beygingar", Type: field.TypeString, Nullable: true, Size: 2147483647},
		&schema.Column{Name: "prefix", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "suffix", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "lowercase", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "titlecase", Type: field.TypeBool, Default: false},
		refColumn("next_part_id"),
	)
	// CompoundPartTableDesc holds the schema information for the "compound_part" table.
	CompoundPartTableDesc = ownedTable(CompoundPartTable, CompoundPartColumns)

	// CompoundEntryColumns holds the columns for the "compound_entry" table.
	CompoundEntryColumns = append(siblingColumns(),
		refColumn("first_part_id"),
	)
	// CompoundEntryTableDesc holds the schema information for the "compound_entry" table.
	CompoundEntryTableDesc = siblingTable(CompoundEntryTable, CompoundEntryColumns)

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		EntryTableDesc,
		CaseFormsTableDesc,
		GenderCasesTableDesc,
		NumberGenderCasesTableDesc,
		VerbFormsTableDesc,
		NounTableDesc,
		ProperNameTableDesc,
		AdjectiveTableDesc,
		ArticleTableDesc,
		PronounTableDesc,
		NumeralTableDesc,
		VerbTableDesc,
		ParticleTableDesc,
		ParticleMultiwordTableDesc,
		CompoundPartTableDesc,
		CompoundEntryTableDesc,
	}

	// OwnedTables lists the tables whose rows belong to one entry, in an
	// order that deletes referencing rows before the rows they reference.
	OwnedTables = []*schema.Table{
		CompoundEntryTableDesc,
		CompoundPartTableDesc,
		ParticleMultiwordTableDesc,
		NounTableDesc,
		ProperNameTableDesc,
		AdjectiveTableDesc,
		ArticleTableDesc,
		PronounTableDesc,
		NumeralTableDesc,
		VerbTableDesc,
		ParticleTableDesc,
		NumberGenderCasesTableDesc,
		GenderCasesTableDesc,
		VerbFormsTableDesc,
		CaseFormsTableDesc,
	}
)

func ownedColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "entry_id", Type: field.TypeInt64},
	}
}

func siblingColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "entry_id", Type: field.TypeInt64, Unique: true},
	}
}

func refColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeInt64, Nullable: true}
}

func stringColumns(names ...string) []*schema.Column {
	cols := make([]*schema.Column, 0, len(names))
	for _, name := range names {
		cols = append(cols, &schema.Column{Name: name, Type: field.TypeString, Nullable: true})
	}
	return cols
}

func voiceColumns(voice string) []*schema.Column {
	return []*schema.Column{
		{Name: voice + "_infinitive", Type: field.TypeString, Nullable: true},
		{Name: voice + "_subject_case", Type: field.TypeString, Nullable: true},
		refColumn(voice + "_indicative_id"),
		refColumn(voice + "_subjunctive_id"),
		{Name: voice + "_imperative_singular", Type: field.TypeString, Nullable: true},
		{Name: voice + "_imperative_plural", Type: field.TypeString, Nullable: true},
		{Name: voice + "_imperative_clipped", Type: field.TypeString, Nullable: true},
		{Name: voice + "_supine", Type: field.TypeString, Nullable: true},
	}
}

func ownedTable(name string, cols []*schema.Column) *schema.Table {
	return &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
		Indexes: []*schema.Index{
			{Name: name + "_entry_id", Unique: false, Columns: []*schema.Column{cols[1]}},
		},
	}
}

func siblingTable(name string, cols []*schema.Column) *schema.Table {
	return &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
	}
}

// Column returns the column of t with the given name.
func Column(t *schema.Table, name string) *schema.Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	panic("migrate: unknown column " + t.Name + "." + name)
}

func foreignKey(t *schema.Table, column string, ref *schema.Table, onDelete schema.ReferenceOption) *schema.ForeignKey {
	return &schema.ForeignKey{
		Symbol:     t.Name + "_" + column,
		Columns:    []*schema.Column{Column(t, column)},
		RefTable:   ref,
		RefColumns: []*schema.Column{ref.Columns[0]},
		OnDelete:   onDelete,
	}
}

func init() {
	for _, t := range Tables[1:] {
		t.ForeignKeys = append(t.ForeignKeys, foreignKey(t, "entry_id", EntryTableDesc, schema.Cascade))
	}
	refs := map[*schema.Table]map[string]*schema.Table{
		GenderCasesTableDesc: {
			"masculine_id": CaseFormsTableDesc, "feminine_id": CaseFormsTableDesc, "neuter_id": CaseFormsTableDesc,
		},
		NumberGenderCasesTableDesc: {
			"singular_id": GenderCasesTableDesc, "plural_id": GenderCasesTableDesc,
		},
		NounTableDesc: {
			"et_bare_id": CaseFormsTableDesc, "et_definite_id": CaseFormsTableDesc,
			"ft_bare_id": CaseFormsTableDesc, "ft_definite_id": CaseFormsTableDesc,
		},
		ProperNameTableDesc: {
			"et_bare_id": CaseFormsTableDesc, "et_definite_id": CaseFormsTableDesc,
			"ft_bare_id": CaseFormsTableDesc, "ft_definite_id": CaseFormsTableDesc,
		},
		AdjectiveTableDesc: {
			"positive_strong_id": NumberGenderCasesTableDesc, "positive_weak_id": NumberGenderCasesTableDesc,
			"comparative_weak_id":   NumberGenderCasesTableDesc,
			"superlative_strong_id": NumberGenderCasesTableDesc, "superlative_weak_id": NumberGenderCasesTableDesc,
		},
		ArticleTableDesc: {
			"singular_id": GenderCasesTableDesc, "plural_id": GenderCasesTableDesc,
		},
		PronounTableDesc: {
			"singular_flat_id": CaseFormsTableDesc, "plural_flat_id": CaseFormsTableDesc,
			"singular_gendered_id": GenderCasesTableDesc, "plural_gendered_id": GenderCasesTableDesc,
		},
		NumeralTableDesc: {
			"singular_id": GenderCasesTableDesc, "plural_id": GenderCasesTableDesc,
			"strong_id": NumberGenderCasesTableDesc, "weak_id": NumberGenderCasesTableDesc,
		},
		VerbTableDesc: {
			"active_indicative_id": VerbFormsTableDesc, "active_subjunctive_id": VerbFormsTableDesc,
			"middle_indicative_id": VerbFormsTableDesc, "middle_subjunctive_id": VerbFormsTableDesc,
			"participle_past_strong_id": NumberGenderCasesTableDesc, "participle_past_weak_id": NumberGenderCasesTableDesc,
		},
		CompoundPartTableDesc: {
			"next_part_id": CompoundPartTableDesc,
		},
		CompoundEntryTableDesc: {
			"first_part_id": CompoundPartTableDesc,
		},
	}
	for _, t := range Tables {
		cols, ok := refs[t]
		if !ok {
			continue
		}
		// Declaration order keeps the generated DDL stable.
		for _, c := range t.Columns {
			if ref, ok := cols[c.Name]; ok {
				t.ForeignKeys = append(t.ForeignKeys, foreignKey(t, c.Name, ref, schema.SetNull))
			}
		}
	}
}
