package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// listWhere construye la cláusula WHERE de un listado: búsqueda por subcadena
// case-insensitive (ILIKE, OR sobre searchCols) combinada con AND al filtro de
// propiedad. ownerExpr es una plantilla con un único verbo $%d, por ejemplo
// "user_id = $%d" o "(is_public = TRUE OR user_id = $%d)"; se ignora si ownerID
// está vacío. Devuelve la cláusula (con " WHERE " inicial o vacía) y los args.
func listWhere(search string, searchCols []string, ownerExpr, ownerID string) (string, []any) {
	var conds []string
	var args []any

	if search != "" && len(searchCols) > 0 {
		args = append(args, "%"+search+"%")
		ors := make([]string, 0, len(searchCols))
		for _, col := range searchCols {
			ors = append(ors, fmt.Sprintf("%s ILIKE $%d", col, len(args)))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if ownerID != "" && ownerExpr != "" {
		args = append(args, ownerID)
		conds = append(conds, fmt.Sprintf(ownerExpr, len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// windowSuffix añade ORDER BY + LIMIT/OFFSET numerando los args a continuación
// de los ya existentes.
func windowSuffix(orderBy string, argCount int) string {
	return fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", orderBy, argCount+1, argCount+2)
}
