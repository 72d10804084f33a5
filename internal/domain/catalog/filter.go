package catalog

import "strings"

// GroupFilter criterios de filtrado de los listados agrupados.
// Los filtros vacíos no restringen.
type GroupFilter struct {
	Search      string
	Category    string
	Brand       string
	Supplier    string
	StorageRoom string
	Status      StockStatus
}

// ApplyFilters aplica los filtros en orden fijo: búsqueda → categoría →
// bodega → estado de stock. Cada paso estrecha el resultado del anterior
// sin reordenar.
func ApplyFilters(groups []ProductGroup, f GroupFilter) []ProductGroup {
	out := groups
	if f.Search != "" {
		out = filterGroups(out, func(g *ProductGroup) bool { return matchesSearch(g, f.Search) })
	}
	if f.Category != "" {
		out = filterGroups(out, func(g *ProductGroup) bool {
			return strings.EqualFold(g.Category, f.Category)
		})
	}
	if f.StorageRoom != "" {
		out = filterGroups(out, func(g *ProductGroup) bool { return matchesStorageRoom(g, f.StorageRoom) })
	}
	if f.Status != "" {
		out = filterGroups(out, func(g *ProductGroup) bool { return g.Status == f.Status })
	}
	// Predicados adicionales (marca, proveedor) después de los fijos
	if f.Brand != "" {
		out = filterGroups(out, func(g *ProductGroup) bool { return matchesBrand(g, f.Brand) })
	}
	if f.Supplier != "" {
		out = filterGroups(out, func(g *ProductGroup) bool { return matchesSupplier(g, f.Supplier) })
	}
	return out
}

func filterGroups(groups []ProductGroup, keep func(*ProductGroup) bool) []ProductGroup {
	out := make([]ProductGroup, 0, len(groups))
	for i := range groups {
		if keep(&groups[i]) {
			out = append(out, groups[i])
		}
	}
	return out
}

// matchesSearch busca el término (case-insensitive) en nombre, marca y
// nombres de variantes.
func matchesSearch(g *ProductGroup, term string) bool {
	t := strings.ToLower(term)
	if strings.Contains(strings.ToLower(g.Name), t) || strings.Contains(strings.ToLower(g.Brand), t) {
		return true
	}
	for i := range g.Variants {
		if strings.Contains(strings.ToLower(g.Variants[i].DisplayName()), t) {
			return true
		}
	}
	return false
}

func matchesStorageRoom(g *ProductGroup, room string) bool {
	for i := range g.Variants {
		if strings.EqualFold(g.Variants[i].StorageLocation, room) {
			return true
		}
	}
	return false
}

func matchesBrand(g *ProductGroup, brand string) bool {
	if strings.EqualFold(g.Brand, brand) {
		return true
	}
	for i := range g.Variants {
		if strings.EqualFold(g.Variants[i].Brand, brand) {
			return true
		}
	}
	return false
}

func matchesSupplier(g *ProductGroup, supplier string) bool {
	for _, s := range g.Suppliers {
		if strings.EqualFold(s.Name, supplier) || s.ID == supplier {
			return true
		}
	}
	return false
}
