package conform

import (
	"dwh/internal/normalize"
	"dwh/internal/schema"
)

// Conformance rules: when the same semantic attribute arrives from more
// than one source, the primary source wins unless its value is the n/a
// sentinel, in which case the secondary's value substitutes. Keeping the
// rules as data makes the precedence auditable and leaves room for new
// sources without touching the join code.

type customerAttr string

const attrGender customerAttr = "gender"

type customerSource string

const (
	srcCRM     customerSource = "crm"
	srcERPDemo customerSource = "erp_demographic"
)

type precedenceRule struct {
	attr     customerAttr
	primary  customerSource
	fallback customerSource
}

var customerPrecedence = []precedenceRule{
	{attr: attrGender, primary: srcCRM, fallback: srcERPDemo},
}

// customerAttrValue extracts one shared attribute from one source's row.
func customerAttrValue(src customerSource, attr customerAttr, c schema.Customer, d schema.Demographic) string {
	switch {
	case src == srcCRM && attr == attrGender:
		return c.Gender
	case src == srcERPDemo && attr == attrGender:
		return orNA(d.Gender)
	}
	return normalize.NotApplicable
}

// resolveCustomerAttr applies the precedence rule for one attribute.
func resolveCustomerAttr(attr customerAttr, c schema.Customer, d schema.Demographic) string {
	for _, rule := range customerPrecedence {
		if rule.attr != attr {
			continue
		}
		if v := customerAttrValue(rule.primary, attr, c, d); v != normalize.NotApplicable {
			return v
		}
		return customerAttrValue(rule.fallback, attr, c, d)
	}
	return normalize.NotApplicable
}
