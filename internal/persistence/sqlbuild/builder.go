// Package sqlbuild generates the activity statements shared by the SQL-backed stores.
package sqlbuild

import (
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/erikadonato/to-do-list/internal/domain"
)

// Table is the name of the activities table on every SQL backend.
const Table = "activities"

// ErrEmptyPatch is returned when an update would set no columns.
var ErrEmptyPatch = errors.New("no columns specified for update")

var selectColumns = []string{"id", "title", "subtitle", "pending"}

// Builder wraps squirrel with the placeholder format of one backend.
type Builder struct {
	sq squirrel.StatementBuilderType
}

// New returns a Builder using the given placeholder format
// (squirrel.Question for sqlite and mysql, squirrel.Dollar for postgres).
func New(format squirrel.PlaceholderFormat) Builder {
	return Builder{sq: squirrel.StatementBuilder.PlaceholderFormat(format)}
}

// SelectByID builds the lookup statement. Columns are returned in Activity field order.
func (b Builder) SelectByID(id int64) (string, []interface{}, error) {
	return b.sq.Select(selectColumns...).From(Table).Where(squirrel.Eq{"id": id}).ToSql()
}

// Insert builds the create statement. suffix is appended verbatim, e.g. "RETURNING id".
func (b Builder) Insert(fields domain.NewActivity, suffix string) (string, []interface{}, error) {
	insert := b.sq.Insert(Table).
		Columns("title", "subtitle", "pending").
		Values(fields.Title, fields.Subtitle, fields.Pending)
	if suffix != "" {
		insert = insert.Suffix(suffix)
	}
	return insert.ToSql()
}

// Update builds an UPDATE that sets only the columns present in patch.
func (b Builder) Update(id int64, patch domain.ActivityPatch) (string, []interface{}, error) {
	if patch.Empty() {
		return "", nil, ErrEmptyPatch
	}
	return b.sq.Update(Table).SetMap(SetClauses(patch)).Where(squirrel.Eq{"id": id}).ToSql()
}

// Delete builds the delete statement for a single id.
func (b Builder) Delete(id int64) (string, []interface{}, error) {
	return b.sq.Delete(Table).Where(squirrel.Eq{"id": id}).ToSql()
}

// SetClauses maps the supplied patch fields to column values.
func SetClauses(patch domain.ActivityPatch) map[string]interface{} {
	set := make(map[string]interface{}, 3)
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Subtitle != nil {
		set["subtitle"] = *patch.Subtitle
	}
	if patch.Pending != nil {
		set["pending"] = *patch.Pending
	}
	return set
}
