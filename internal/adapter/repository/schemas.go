package repository

import (
	"strings"

	"entgo.io/ent/dialect/sql"
	"github.com/samber/lo"

	"github.com/eslsoft/ordasafn/internal/entity"
	"github.com/eslsoft/ordasafn/internal/infrastructure/database/types"
	"github.com/eslsoft/ordasafn/internal/repository"
	"github.com/eslsoft/ordasafn/pkg/filterexpr"
)

// listEntriesSchema lists the entry columns an export filter may mention.
var listEntriesSchema = filterexpr.Schema{
	"category":    {Kind: filterexpr.Text, Ops: []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpIN}},
	"subcategory": {Kind: filterexpr.Text, Ops: []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpIN}},
	"identity":    {Kind: filterexpr.Text, Ops: []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpSW, filterexpr.OpIN}},
	"lemma":       {Kind: filterexpr.Text, Ops: []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpSW, filterexpr.OpIN}},
	"created":     {Kind: filterexpr.Time, Ops: []filterexpr.Op{filterexpr.OpGTE, filterexpr.OpLTE}},
	"edited":      {Kind: filterexpr.Time, Ops: []filterexpr.Op{filterexpr.OpGTE, filterexpr.OpLTE}},
}

// entryPredicates turns a list query into WHERE predicates on the entry table.
func entryPredicates(query *repository.ListEntryQuery) ([]*sql.Predicate, error) {
	if query == nil {
		return nil, nil
	}
	conds, err := filterexpr.Parse(query, listEntriesSchema)
	if err != nil {
		return nil, err
	}

	var preds []*sql.Predicate
	if query.Since != nil {
		preds = append(preds, sql.GTE("edited", types.NewTimestamp(*query.Since).String()))
	}
	for _, c := range conds {
		p, err := conditionPredicate(c)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}

func conditionPredicate(c filterexpr.Condition) (*sql.Predicate, error) {
	switch c.Field {
	case "created", "edited":
		stamp := types.NewTimestamp(c.At).String()
		if c.Op == filterexpr.OpGTE {
			return sql.GTE(c.Field, stamp), nil
		}
		return sql.LTE(c.Field, stamp), nil
	case "category", "subcategory":
		slugs, err := taxonomySlugs(c.Field, c.Texts())
		if err != nil {
			return nil, err
		}
		return sql.In(c.Field, slugs...), nil
	}

	switch c.Op {
	case filterexpr.OpSW:
		return sql.HasPrefix(c.Field, c.Text), nil
	case filterexpr.OpIN:
		return sql.In(c.Field, lo.ToAnySlice(lo.Uniq(c.List))...), nil
	default:
		return sql.EQ(c.Field, c.Text), nil
	}
}

// taxonomySlugs maps category or subcategory aliases to their stored slugs.
func taxonomySlugs(field string, names []string) ([]any, error) {
	names = lo.Uniq(lo.Map(names, func(s string, _ int) string { return strings.TrimSpace(s) }))
	slugs := make([]any, 0, len(names))
	for _, name := range names {
		var slug string
		if field == "category" {
			c, err := entity.ParseCategory(name)
			if err != nil {
				return nil, err
			}
			slug = c.Alias().Slug
		} else {
			s, err := entity.ParseSubcategory(name)
			if err != nil {
				return nil, err
			}
			slug = s.Alias().Slug
		}
		slugs = append(slugs, slug)
	}
	return slugs, nil
}
