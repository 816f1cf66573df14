package sales

import (
	"time"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// Límites de paginación para el listado de ventas.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DateRange es un intervalo semiabierto [Start, End): End queda excluido,
// de modo que un día completo se expresa como [día, día+1).
type DateRange struct {
	Start time.Time
	End   time.Time
}

// TodayWindow devuelve la ventana [hoy UTC, hoy UTC + 1 día).
func TodayWindow(now time.Time) DateRange {
	day := now.UTC().Truncate(24 * time.Hour)
	return DateRange{Start: day, End: day.Add(24 * time.Hour)}
}

// EffectiveRange resuelve el rango de fechas a aplicar en el listado de ventas.
// El rol staff queda siempre forzado a la ventana del día actual: cualquier
// rango solicitado se ignora (no se rechaza). Para los demás roles se usa el
// rango solicitado si viene completo; si falta algún extremo se aplica el
// default del día actual.
func EffectiveRange(requested *DateRange, role string, now time.Time) DateRange {
	if role == entity.RoleStaff {
		return TodayWindow(now)
	}
	if requested == nil || requested.Start.IsZero() || requested.End.IsZero() {
		return TodayWindow(now)
	}
	return DateRange{Start: requested.Start.UTC(), End: requested.End.UTC()}
}

// ClampPage normaliza página y tamaño: page >= 1, pageSize en [1, MaxPageSize]
// con DefaultPageSize cuando no se indica.
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// TotalPages calcula el número de páginas para un total de filas.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
