package postgres

import (
	"errors"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// Sustituciones para búsqueda sin acentos del lado SQL (translate).
const (
	accented = "áéíóúüÁÉÍÓÚÜñÑ"
	plain    = "aeiouuAEIOUUnN"
)

// searchable expresión SQL que normaliza una columna para comparar sin
// distinguir mayúsculas ni acentos.
func searchable(column string) string {
	return "lower(translate(" + column + ", '" + accented + "', '" + plain + "'))"
}

// normalizeSearch normaliza el término de búsqueda del lado Go: minúsculas y
// sin marcas diacríticas (NFD -> quitar Mn -> NFC), simétrico a searchable().
func normalizeSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, err := transform.String(t, s)
	if err != nil {
		normalized = s
	}
	return strings.ToLower(normalized)
}
