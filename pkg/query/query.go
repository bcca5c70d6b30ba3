// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

/*
Package query assembles parameterized list statements.

Repositories share one narrowing pattern: a base projection, a run of
optional AND conditions, a whitelisted ORDER BY, and a LIMIT/OFFSET pair.
Builder keeps the placeholder numbering and the argument slice in step so
callers never hand-count $n indexes.
*/
package query

import (
	"fmt"
	"strings"
)

// Builder accumulates conditions onto a base statement.
type Builder struct {
	sql  strings.Builder
	args []any
}

// NewBuilder starts a builder from the base statement. The base must end
// inside a WHERE clause so appended conditions chain with AND. Arguments
// already bound by the base are passed here so numbering continues after
// them.
func NewBuilder(base string, args ...any) *Builder {
	builder := &Builder{args: args}
	builder.sql.WriteString(base)
	return builder
}

// And appends an AND condition and binds value to it. Every "$?" token in
// the condition is rewritten to the same next placeholder index, so a
// condition may reference its argument more than once.
func (builder *Builder) And(condition string, value any) {
	builder.args = append(builder.args, value)
	placeholder := fmt.Sprintf("$%d", len(builder.args))
	builder.sql.WriteString(" AND ")
	builder.sql.WriteString(strings.ReplaceAll(condition, "$?", placeholder))
}

// OrderBy appends an ORDER BY clause. The column is interpolated, not
// bound, so it must come from a whitelist.
func (builder *Builder) OrderBy(column, direction string) {
	fmt.Fprintf(&builder.sql, " ORDER BY %s %s", column, direction)
}

// Paginate appends a LIMIT/OFFSET pair bound to the next two placeholders.
func (builder *Builder) Paginate(perPage, offset int) {
	builder.args = append(builder.args, perPage, offset)
	fmt.Fprintf(&builder.sql, " LIMIT $%d OFFSET $%d", len(builder.args)-1, len(builder.args))
}

// SQL returns the assembled statement.
func (builder *Builder) SQL() string {
	return builder.sql.String()
}

// Args returns the bound arguments in placeholder order.
func (builder *Builder) Args() []any {
	return builder.args
}
