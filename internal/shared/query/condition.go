package query

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Operator is a comparison operator understood by Condition
type Operator string

const (
	OpEq        Operator = "="
	OpNe        Operator = "<>"
	OpGt        Operator = ">"
	OpGte       Operator = ">="
	OpLt        Operator = "<"
	OpLte       Operator = "<="
	OpLike      Operator = "LIKE"
	OpIn        Operator = "IN"
	OpBetween   Operator = "BETWEEN"
	OpIsNull    Operator = "IS NULL"
	OpIsNotNull Operator = "IS NOT NULL"

	opAnd Operator = "AND"
)

// fieldPattern accepts "column" or "table.column"
var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Condition is a single filter term (or an AND of terms) that renders itself as
// a GORM clause.Expression. The zero value is Absent.
//
// Constructors return Absent whenever the backing value is missing (nil, nil
// pointer, blank text, empty list), so call sites never need their own nil checks:
//
//	where := query.And(
//	    query.EqText("member.username", cond.Username),
//	    query.Gte("member.age", cond.AgeGoe), // *int, skipped when nil
//	)
type Condition struct {
	Field string
	Op    Operator
	Value any

	expr  *Field
	terms []Condition
}

// Absent is the identity element of And: it matches every row.
var Absent = Condition{}

// IsPresent reports whether the condition constrains anything.
func (c Condition) IsPresent() bool {
	return c.Op != ""
}

// Terms returns the AND-ed terms of a composite condition, or the condition itself.
func (c Condition) Terms() []Condition {
	switch {
	case !c.IsPresent():
		return nil
	case c.Op == opAnd:
		return append([]Condition(nil), c.terms...)
	default:
		return []Condition{c}
	}
}

// And combines c with others, skipping absent ones.
func (c Condition) And(others ...Condition) Condition {
	return And(append([]Condition{c}, others...)...)
}

// And folds conditions into one filter. Absent entries are ignored and nested
// ANDs are flattened; folding nothing (or only Absent) yields Absent.
func And(conds ...Condition) Condition {
	terms := make([]Condition, 0, len(conds))
	for _, c := range conds {
		switch {
		case !c.IsPresent():
		case c.Op == opAnd:
			terms = append(terms, c.terms...)
		default:
			terms = append(terms, c)
		}
	}

	switch len(terms) {
	case 0:
		return Absent
	case 1:
		return terms[0]
	}
	return Condition{Op: opAnd, terms: terms}
}

// Eq matches field = value. A nil value, nil pointer or blank text yields Absent.
func Eq(field string, value any) Condition {
	return compare(field, OpEq, value)
}

// EqText matches field = text, treating blank text as absent.
func EqText(field, text string) Condition {
	mustField(field)
	if strings.TrimSpace(text) == "" {
		return Absent
	}
	return Condition{Field: field, Op: OpEq, Value: text}
}

// Ne matches field <> value.
func Ne(field string, value any) Condition {
	return compare(field, OpNe, value)
}

// Gt matches field > value.
func Gt(field string, value any) Condition {
	return compare(field, OpGt, value)
}

// Gte matches field >= value.
func Gte(field string, value any) Condition {
	return compare(field, OpGte, value)
}

// Lt matches field < value.
func Lt(field string, value any) Condition {
	return compare(field, OpLt, value)
}

// Lte matches field <= value.
func Lte(field string, value any) Condition {
	return compare(field, OpLte, value)
}

// Like matches field LIKE pattern; a blank pattern yields Absent.
func Like(field, pattern string) Condition {
	mustField(field)
	if strings.TrimSpace(pattern) == "" {
		return Absent
	}
	return Condition{Field: field, Op: OpLike, Value: pattern}
}

// Between matches lo <= field <= hi. When only one bound is present it degrades
// to Gte or Lte; with no bounds it is Absent.
func Between(field string, lo, hi any) Condition {
	mustField(field)
	lo, hasLo := deref(lo)
	hi, hasHi := deref(hi)

	switch {
	case hasLo && hasHi:
		return Condition{Field: field, Op: OpBetween, Value: [2]any{lo, hi}}
	case hasLo:
		return Condition{Field: field, Op: OpGte, Value: lo}
	case hasHi:
		return Condition{Field: field, Op: OpLte, Value: hi}
	}
	return Absent
}

// In matches field IN (values...). An empty list yields Absent.
func In(field string, values ...any) Condition {
	mustField(field)
	list := make([]any, 0, len(values))
	for _, v := range values {
		if v, ok := deref(v); ok {
			list = append(list, v)
		}
	}
	if len(list) == 0 {
		return Absent
	}
	return Condition{Field: field, Op: OpIn, Value: list}
}

// InSub matches field IN (subquery).
func InSub(field string, sub *gorm.DB) Condition {
	return compare(field, OpIn, sub)
}

// IsNull matches rows whose field is NULL.
func IsNull(field string) Condition {
	mustField(field)
	return Condition{Field: field, Op: OpIsNull}
}

// IsNotNull matches rows whose field is not NULL.
func IsNotNull(field string) Condition {
	mustField(field)
	return Condition{Field: field, Op: OpIsNotNull}
}

// EqField compares two columns (join keys, theta joins).
func EqField(field, other string) Condition {
	mustField(other)
	return compare(field, OpEq, column(other))
}

// Compare matches an expression against value, e.g.
// Compare(Col("member.username"), OpEq, Func("LOWER", Col("member.username"))).
// value may itself be a Field; a missing value yields Absent.
func Compare(f Field, op Operator, value any) Condition {
	v, ok := deref(value)
	if !ok {
		return Absent
	}
	if other, isField := v.(Field); isField {
		other.alias = ""
		v = other
	}
	f.alias = ""
	return Condition{Field: f.String(), Op: op, Value: v, expr: &f}
}

func compare(field string, op Operator, value any) Condition {
	mustField(field)
	v, ok := deref(value)
	if !ok {
		return Absent
	}
	return Condition{Field: field, Op: op, Value: v}
}

// Build implements clause.Expression.
func (c Condition) Build(builder clause.Builder) {
	switch c.Op {
	case "":
		builder.WriteString("1 = 1")
		return
	case opAnd:
		builder.WriteByte('(')
		for idx, term := range c.terms {
			if idx > 0 {
				builder.WriteString(" AND ")
			}
			term.Build(builder)
		}
		builder.WriteByte(')')
		return
	}

	if c.expr != nil {
		c.expr.build(builder)
	} else {
		builder.WriteQuoted(column(c.Field))
	}
	builder.WriteByte(' ')
	builder.WriteString(string(c.Op))

	switch c.Op {
	case OpIsNull, OpIsNotNull:
	case OpBetween:
		bounds := c.Value.([2]any)
		builder.WriteByte(' ')
		builder.AddVar(builder, bounds[0])
		builder.WriteString(" AND ")
		builder.AddVar(builder, bounds[1])
	default:
		builder.WriteByte(' ')
		writeOperand(builder, c.Value)
	}
}

// String renders the condition for logs, e.g. "member.age >= 25 AND team.name = teamA".
func (c Condition) String() string {
	switch c.Op {
	case "":
		return "<absent>"
	case opAnd:
		parts := make([]string, len(c.terms))
		for i, term := range c.terms {
			parts[i] = term.String()
		}
		return strings.Join(parts, " AND ")
	case OpIsNull, OpIsNotNull:
		return fmt.Sprintf("%s %s", c.Field, c.Op)
	case OpBetween:
		bounds := c.Value.([2]any)
		return fmt.Sprintf("%s BETWEEN %v AND %v", c.Field, bounds[0], bounds[1])
	}

	switch v := c.Value.(type) {
	case clause.Column:
		return fmt.Sprintf("%s %s %s.%s", c.Field, c.Op, v.Table, v.Name)
	case Field:
		return fmt.Sprintf("%s %s %s", c.Field, c.Op, v)
	case *gorm.DB:
		return fmt.Sprintf("%s %s (subquery)", c.Field, c.Op)
	}
	return fmt.Sprintf("%s %s %v", c.Field, c.Op, c.Value)
}

func writeOperand(builder clause.Builder, value any) {
	if f, ok := value.(Field); ok {
		f.build(builder)
		return
	}
	if sub, ok := value.(*gorm.DB); ok {
		builder.WriteByte('(')
		builder.AddVar(builder, sub)
		builder.WriteByte(')')
		return
	}
	builder.AddVar(builder, value)
}

// deref unwraps pointers and reports whether a usable value is present.
// Blank text counts as missing, whatever constructor it reaches.
func deref(value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	if _, ok := value.(*gorm.DB); ok {
		return value, true
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.String && strings.TrimSpace(rv.String()) == "" {
		return nil, false
	}
	return rv.Interface(), true
}

func mustField(field string) {
	if !fieldPattern.MatchString(field) {
		panic(fmt.Sprintf("query: invalid field %q", field))
	}
}

func column(field string) clause.Column {
	mustField(field)
	if table, name, ok := strings.Cut(field, "."); ok {
		return clause.Column{Table: table, Name: name}
	}
	return clause.Column{Name: field}
}
