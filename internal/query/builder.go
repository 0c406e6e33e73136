// Package query builds the parameterised WHERE clause shared by the catalog count
// and page queries.
package query

import (
	"fmt"
	"strconv"
	"strings"
)

// WhereBuilder collects SQL conditions written with "?" placeholders together with
// their arguments. Conditions reference the movies table through the alias "m".
//
//	wb := query.NewWhereBuilder()
//	wb.AddTextSearch("alien").AddGenres([]string{"Horror"})
//	where, args := wb.Build()
//	sql := query.Rebind("SELECT count(*) FROM movies m WHERE " + where)
type WhereBuilder struct {
	clauses []string
	args    []any
}

func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []any{},
	}
}

// AddClause adds a raw condition with its arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...any) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddTextSearch matches the term as a case-insensitive substring of the title or
// the overview. LIKE wildcards in the term are matched literally.
func (wb *WhereBuilder) AddTextSearch(term string) *WhereBuilder {
	if term == "" {
		return wb
	}

	pattern := "%" + EscapeLike(term) + "%"

	return wb.AddClause(`(m.title ILIKE ? ESCAPE '\' OR m.overview ILIKE ? ESCAPE '\')`, pattern, pattern)
}

// AddGenres keeps movies tagged with at least one of the genres. The check is an
// EXISTS subquery so a movie with several matching genres is still one row.
func (wb *WhereBuilder) AddGenres(genres []string) *WhereBuilder {
	if len(genres) == 0 {
		return wb
	}

	return wb.AddClause(fmt.Sprintf(`EXISTS (
			SELECT 1 FROM movie_genres mg
			JOIN genres g ON g.id = mg.genre_id
			WHERE mg.movie_id = m.id AND g.name IN (%s))`, placeholders(len(genres))),
		toArgs(genres)...)
}

// AddRatings keeps movies whose certification is exactly one of the codes.
func (wb *WhereBuilder) AddRatings(ratings []string) *WhereBuilder {
	if len(ratings) == 0 {
		return wb
	}

	return wb.AddClause(fmt.Sprintf("m.rating IN (%s)", placeholders(len(ratings))), toArgs(ratings)...)
}

// AddYearRange keeps movies released within [yearMin, yearMax]. Movies without a
// release date always pass.
func (wb *WhereBuilder) AddYearRange(yearMin, yearMax int) *WhereBuilder {
	return wb.AddClause("(m.release_date IS NULL OR EXTRACT(YEAR FROM m.release_date) BETWEEN ? AND ?)", yearMin, yearMax)
}

// Build joins the conditions with AND. It returns "1=1" when nothing was added.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.clauses) == 0 {
		return "1=1", wb.args
	}

	return strings.Join(wb.clauses, " AND "), wb.args
}

// Rebind rewrites "?" placeholders as PostgreSQL positional parameters ($1, $2, ...)
// in order of appearance. Question marks inside quoted literals or identifiers are
// left alone. It does not recognise "--" comments or $$ dollar-quoted bodies, so a "?"
// in either is rewritten too; none of the catalog queries put one there.
func Rebind(sql string) string {
	var (
		b     strings.Builder
		n     int
		quote rune
	)

	b.Grow(len(sql) + 8)

	for _, ch := range sql {
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}

		b.WriteRune(ch)
	}

	return b.String()
}

// EscapeLike escapes the LIKE metacharacters %, _ and the escape character itself.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func toArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}
