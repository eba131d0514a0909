package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

// whereBuilder acumula condições e argumentos posicionais ($1, $2...).
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, v any) {
	w.args = append(w.args, v)
	w.conds = append(w.conds, fmt.Sprintf(cond, fmt.Sprintf("$%d", len(w.args))))
}

func (w *whereBuilder) eq(column, v string) {
	if v != "" {
		w.add(column+" = %s", v)
	}
}

func (w *whereBuilder) period(column string, p repository.DateRange) {
	if p.Start != nil {
		w.add(column+" >= %s", *p.Start)
	}
	if p.End != nil {
		w.add(column+" <= %s", *p.End)
	}
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
