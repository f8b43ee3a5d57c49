// Package classify derives semantic properties of catalog foods from their
// names and categories. Detection matches normalized (lowercase,
// accent-folded) text against a configurable keyword table; base-name
// extraction strips preparation suffixes and collapses synonyms of the same
// staple onto one canonical token.
//
// Classification is the sole gate for the one-staple-per-meal rule, so both
// entry points are total: they never fail, and foods that match nothing
// classify as non-staple.
package classify

import (
	"errors"

	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

var (
	errNoKeywordGroups = errors.New("staple table has no keyword groups")
	errEmptyCanonical  = errors.New("staple table group has an empty canonical token")
)

// Group collects the aliases of one staple under its canonical token.
// "basmati rice" and "rice, cooked" both belong to the rice group; sweet
// potato is its own group and never collapses into potato.
type Group struct {
	// Canonical is the token BaseName returns for every alias of the group.
	Canonical string `yaml:"canonical"`

	// Keywords are the name fragments that identify the group. Single-word
	// keywords match whole words of the normalized name; multi-word keywords
	// match as phrases.
	Keywords []string `yaml:"keywords"`
}

// Table is the configuration the classifier is built from. The zero value is
// unusable; DefaultTable returns the built-in ruleset.
type Table struct {
	// Groups lists the known staples and their aliases.
	Groups []Group `yaml:"groups"`

	// StapleCategories are food categories treated as staples regardless of
	// the food name (e.g. starch, cereal).
	StapleCategories []core.FoodCategory `yaml:"stapleCategories"`

	// PrepSuffixes are preparation qualifiers stripped from names before
	// base-name extraction ("cooked", "cuit", ...). Parenthesized qualifiers
	// are always stripped.
	PrepSuffixes []string `yaml:"prepSuffixes"`
}

// DefaultTable returns the built-in staple ruleset. Keywords cover English
// and French catalog names; matching is accent-insensitive so accented and
// plain spellings need no duplication.
func DefaultTable() Table {
	return Table{
		Groups: []Group{
			{Canonical: "rice", Keywords: []string{"rice", "riz", "basmati", "risotto"}},
			{Canonical: "pasta", Keywords: []string{"pasta", "pates", "pate", "spaghetti", "macaroni", "penne", "tagliatelle", "noodles", "nouilles"}},
			{Canonical: "bread", Keywords: []string{"bread", "pain", "baguette", "toast"}},
			{Canonical: "sweet-potato", Keywords: []string{"sweet potato", "patate douce"}},
			{Canonical: "potato", Keywords: []string{"potato", "potatoes", "pomme de terre", "pommes de terre", "patate"}},
			{Canonical: "quinoa", Keywords: []string{"quinoa"}},
			{Canonical: "bulgur", Keywords: []string{"bulgur", "boulgour"}},
			{Canonical: "semolina", Keywords: []string{"semolina", "semoule"}},
			{Canonical: "couscous", Keywords: []string{"couscous"}},
			{Canonical: "wheat", Keywords: []string{"wheat", "ble"}},
			{Canonical: "barley", Keywords: []string{"barley", "orge"}},
			{Canonical: "spelt", Keywords: []string{"spelt", "epeautre"}},
			{Canonical: "buckwheat", Keywords: []string{"buckwheat", "sarrasin"}},
			{Canonical: "millet", Keywords: []string{"millet"}},
			{Canonical: "oats", Keywords: []string{"oats", "oatmeal", "porridge", "avoine", "flocons d'avoine"}},
			{Canonical: "muesli", Keywords: []string{"muesli", "granola"}},
			{Canonical: "polenta", Keywords: []string{"polenta", "cornmeal"}},
			{Canonical: "yam", Keywords: []string{"yam", "igname"}},
			{Canonical: "cassava", Keywords: []string{"cassava", "manioc", "tapioca"}},
			{Canonical: "taro", Keywords: []string{"taro"}},
		},
		StapleCategories: []core.FoodCategory{
			core.CategoryStarch,
			core.CategoryCereal,
			// Free-form categories seen in French catalogs.
			"féculents",
			"céréales",
		},
		PrepSuffixes: []string{
			"cooked", "boiled", "steamed", "roasted", "baked", "raw", "wholegrain", "whole grain",
			"cuit", "cuite", "cuits", "cuites", "cru", "crue", "complet", "complete", "completes",
		},
	}
}
