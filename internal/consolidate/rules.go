package consolidate

import (
	"fmt"
	"os"

	"github.com/locvowork/orderdash/internal/domain"
	"gopkg.in/yaml.v3"
)

// Rule maps a noisy source label to a canonical field.
// A label matches when it contains every AllOf keyword and at least one AnyOf keyword.
// Matching is case- and accent-insensitive.
type Rule struct {
	Canonical string   `yaml:"canonical"`
	AllOf     []string `yaml:"all_of"`
	AnyOf     []string `yaml:"any_of"`
}

// Matches evaluates the rule against a label already passed through Fold.
func (r Rule) Matches(foldedLabel string) bool {
	for _, kw := range r.AllOf {
		if !containsFolded(foldedLabel, kw) {
			return false
		}
	}
	if len(r.AnyOf) == 0 {
		return len(r.AllOf) > 0
	}
	for _, kw := range r.AnyOf {
		if containsFolded(foldedLabel, kw) {
			return true
		}
	}
	return false
}

// DefaultRules is the built-in rename table, evaluated top to bottom.
func DefaultRules() []Rule {
	return []Rule{
		{Canonical: domain.FieldOrderNumber, AnyOf: []string{"NÚMERO DO PEDIDO", "ORDER NUMBER", "ORDER ID"}},
		{Canonical: domain.FieldResponsibleUser, AnyOf: []string{"USUÁRIO", "SALESPERSON", "RESPONSIBLE USER"}},
		{Canonical: domain.FieldOrderSource, AllOf: []string{"ORIGEM", "DO PEDIDO"}},
		{Canonical: domain.FieldOrderSource, AnyOf: []string{"ORDER SOURCE"}},
		{Canonical: domain.FieldOrderStatus, AllOf: []string{"STATUS", "PEDIDO"}},
		{Canonical: domain.FieldOrderStatus, AnyOf: []string{"ORDER STATUS"}},
		{Canonical: domain.FieldCustomerName, AnyOf: []string{"NOME DO CLIENTE", "NOME CLIENTE", "CUSTOMER NAME"}},
		{Canonical: domain.FieldCustomerCode, AnyOf: []string{"CÓDIGO DO CLIENTE", "CUSTOMER CODE"}},
		{Canonical: domain.FieldCommercialPolicy, AnyOf: []string{"POLÍTICA", "COMMERCIAL POLICY"}},
		{Canonical: domain.FieldPaymentTerms, AllOf: []string{"CONDIC", "PAGAMENTO"}},
		{Canonical: domain.FieldPaymentTerms, AnyOf: []string{"PAYMENT TERMS"}},
	}
}

// MatchRule returns the canonical name assigned by the first matching rule.
func MatchRule(rules []Rule, label string) (string, bool) {
	folded := Fold(label)
	for _, r := range rules {
		if r.Matches(folded) {
			return r.Canonical, true
		}
	}
	return "", false
}

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// ParseRules decodes a YAML rule list:
//
//	rules:
//	  - canonical: ORDER_STATUS
//	    all_of: [STATUS, PEDIDO]
func ParseRules(data []byte) ([]Rule, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("rules file defines no rules")
	}
	for i, r := range f.Rules {
		if r.Canonical == "" {
			return nil, fmt.Errorf("rule %d: canonical name is empty", i)
		}
		if len(r.AllOf) == 0 && len(r.AnyOf) == 0 {
			return nil, fmt.Errorf("rule %d (%s): no keywords", i, r.Canonical)
		}
	}
	return f.Rules, nil
}

// LoadRules reads a YAML rule file from disk.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return ParseRules(data)
}
