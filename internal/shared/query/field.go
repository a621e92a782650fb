package query

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var aliasPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Field is one projected expression of a select list. Results are scanned into
// named structs by column alias, so every non-column field should be aliased.
type Field struct {
	build func(clause.Builder)
	alias string
	label string
}

// As names the projected value; the alias must match the destination column.
func (f Field) As(alias string) Field {
	if !aliasPattern.MatchString(alias) {
		panic(fmt.Sprintf("query: invalid alias %q", alias))
	}
	f.alias = alias
	return f
}

// Build implements clause.Expression.
func (f Field) Build(builder clause.Builder) {
	f.build(builder)
	if f.alias != "" {
		builder.WriteString(" AS ")
		builder.WriteQuoted(f.alias)
	}
}

// Col projects a column, e.g. Col("team.name").
func Col(field string) Field {
	col := column(field)
	return Field{label: field, build: func(b clause.Builder) {
		b.WriteQuoted(col)
	}}
}

// AllOf projects every column of table ("member.*"), used to load entities
// from a joined query without column collisions.
func AllOf(table string) Field {
	if !aliasPattern.MatchString(table) {
		panic(fmt.Sprintf("query: invalid table %q", table))
	}
	return Field{build: func(b clause.Builder) {
		b.WriteQuoted(clause.Table{Name: table})
		b.WriteString(".*")
	}}
}

// CountAll projects COUNT(*).
func CountAll() Field {
	return Field{build: func(b clause.Builder) {
		b.WriteString("COUNT(*)")
	}}
}

// Sum projects SUM(field).
func Sum(field string) Field { return aggregate("SUM", field) }

// Avg projects AVG(field).
func Avg(field string) Field { return aggregate("AVG", field) }

// Min projects MIN(field).
func Min(field string) Field { return aggregate("MIN", field) }

// Max projects MAX(field).
func Max(field string) Field { return aggregate("MAX", field) }

func aggregate(fn, field string) Field {
	col := column(field)
	return Field{build: func(b clause.Builder) {
		b.WriteString(fn)
		b.WriteByte('(')
		b.WriteQuoted(col)
		b.WriteByte(')')
	}}
}

// Lit projects a bound constant.
func Lit(value any) Field {
	return Field{label: fmt.Sprint(value), build: func(b clause.Builder) {
		b.AddVar(b, value)
	}}
}

// Func projects a SQL function call, e.g. Func("REPLACE", Col("member.username"), "member", "m").
// Field arguments are rendered in place; any other argument is bound as a variable.
func Func(name string, args ...any) Field {
	if !aliasPattern.MatchString(name) {
		panic(fmt.Sprintf("query: invalid function %q", name))
	}
	name = strings.ToUpper(name)

	labels := make([]string, len(args))
	for idx, arg := range args {
		if f, ok := arg.(Field); ok {
			labels[idx] = f.String()
			continue
		}
		labels[idx] = fmt.Sprintf("'%v'", arg)
	}

	return Field{label: name + "(" + strings.Join(labels, ", ") + ")", build: func(b clause.Builder) {
		b.WriteString(name)
		b.WriteByte('(')
		for idx, arg := range args {
			if idx > 0 {
				b.WriteString(", ")
			}
			if f, ok := arg.(Field); ok {
				f.build(b)
				continue
			}
			b.AddVar(b, arg)
		}
		b.WriteByte(')')
	}}
}

// String renders the expression for logs.
func (f Field) String() string {
	if f.label == "" {
		return "<expr>"
	}
	return f.label
}

// Scalar projects a scalar subquery.
func Scalar(sub *gorm.DB) Field {
	return Field{build: func(b clause.Builder) {
		writeOperand(b, sub)
	}}
}

// Coalesce projects COALESCE(f, fallback); aggregates over no rows are NULL.
func Coalesce(f Field, fallback any) Field {
	return Field{build: func(b clause.Builder) {
		b.WriteString("COALESCE(")
		f.build(b)
		b.WriteString(", ")
		b.AddVar(b, fallback)
		b.WriteByte(')')
	}}
}

// Concat joins the given fields with the SQL || operator.
func Concat(parts ...Field) Field {
	return Field{build: func(b clause.Builder) {
		for idx, part := range parts {
			if idx > 0 {
				b.WriteString(" || ")
			}
			part.build(b)
		}
	}}
}

// CaseBuilder assembles a searched CASE expression.
type CaseBuilder struct {
	whens []Condition
	thens []any
}

// Case starts a CASE WHEN ... THEN ... ELSE ... END projection.
func Case() *CaseBuilder {
	return &CaseBuilder{}
}

// When adds a branch; absent conditions are ignored.
func (cb *CaseBuilder) When(cond Condition, then any) *CaseBuilder {
	if cond.IsPresent() {
		cb.whens = append(cb.whens, cond)
		cb.thens = append(cb.thens, then)
	}
	return cb
}

// Else closes the expression.
func (cb *CaseBuilder) Else(otherwise any) Field {
	whens := append([]Condition(nil), cb.whens...)
	thens := append([]any(nil), cb.thens...)

	return Field{build: func(b clause.Builder) {
		b.WriteString("CASE")
		for idx, when := range whens {
			b.WriteString(" WHEN ")
			when.Build(b)
			b.WriteString(" THEN ")
			b.AddVar(b, thens[idx])
		}
		b.WriteString(" ELSE ")
		b.AddVar(b, otherwise)
		b.WriteString(" END")
	}}
}

// selection renders a comma separated select list.
type selection []Field

func (s selection) Build(builder clause.Builder) {
	for idx, f := range s {
		if idx > 0 {
			builder.WriteString(", ")
		}
		f.Build(builder)
	}
}
