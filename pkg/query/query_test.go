// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aksarapress/aksara/pkg/query"
)

/*
TestBuilder verifies placeholder numbering follows call order, repeated $?
tokens inside one condition share an index, and pagination binds the final
two arguments.
*/
func TestBuilder(t *testing.T) {
	builder := query.NewBuilder("SELECT id FROM things WHERE deletedat IS NULL")
	builder.And("(part ILIKE $? OR title ILIKE $?)", "%haiku%")
	builder.And("status = $?", "on_sale")
	builder.OrderBy("createdat", "DESC")
	builder.Paginate(25, 50)

	wantSQL := "SELECT id FROM things WHERE deletedat IS NULL" +
		" AND (part ILIKE $1 OR title ILIKE $1)" +
		" AND status = $2" +
		" ORDER BY createdat DESC" +
		" LIMIT $3 OFFSET $4"
	assert.Equal(t, wantSQL, builder.SQL())
	assert.Equal(t, []any{"%haiku%", "on_sale", 25, 50}, builder.Args())
}

/*
TestBuilder_SeededArgs verifies numbering continues after arguments already
bound by the base statement.
*/
func TestBuilder_SeededArgs(t *testing.T) {
	builder := query.NewBuilder("SELECT id FROM things WHERE title ILIKE $1", "%ink%")
	builder.And("status = $?", "close")
	builder.Paginate(10, 0)

	wantSQL := "SELECT id FROM things WHERE title ILIKE $1" +
		" AND status = $2" +
		" LIMIT $3 OFFSET $4"
	assert.Equal(t, wantSQL, builder.SQL())
	assert.Equal(t, []any{"%ink%", "close", 10, 0}, builder.Args())
}
