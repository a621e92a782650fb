package query

import "gorm.io/gorm/clause"

type nullOrder int

const (
	nullsDefault nullOrder = iota
	nullsFirst
	nullsLast
)

// Order is one sort key.
type Order struct {
	Field string
	Desc  bool
	nulls nullOrder
}

// Asc sorts by field ascending.
func Asc(field string) Order {
	mustField(field)
	return Order{Field: field}
}

// Desc sorts by field descending.
func Desc(field string) Order {
	mustField(field)
	return Order{Field: field, Desc: true}
}

// NullsFirst places NULL values before every non-NULL value.
func (o Order) NullsFirst() Order {
	o.nulls = nullsFirst
	return o
}

// NullsLast places NULL values after every non-NULL value.
func (o Order) NullsLast() Order {
	o.nulls = nullsLast
	return o
}

// ordering renders ORDER BY keys. NULL placement is expressed with a leading
// CASE key because Oracle and SQLite disagree on default NULL ordering.
type ordering []Order

func (o ordering) Build(builder clause.Builder) {
	for idx, order := range o {
		if idx > 0 {
			builder.WriteString(", ")
		}
		col := column(order.Field)

		if order.nulls != nullsDefault {
			first, rest := "1", "0"
			if order.nulls == nullsFirst {
				first, rest = "0", "1"
			}
			builder.WriteString("CASE WHEN ")
			builder.WriteQuoted(col)
			builder.WriteString(" IS NULL THEN " + first + " ELSE " + rest + " END, ")
		}

		builder.WriteQuoted(col)
		if order.Desc {
			builder.WriteString(" DESC")
		} else {
			builder.WriteString(" ASC")
		}
	}
}
