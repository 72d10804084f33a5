package catalog

import "github.com/shopspring/decimal"

// resolveString devuelve el primer candidato no vacío, o def si todos lo son.
// Reemplaza las cadenas de fallback dinámicas (a || b || c) por una resolución
// explícita con default documentado.
func resolveString(def string, candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return def
}

// resolvePrice devuelve el primer candidato mayor que cero, o cero.
func resolvePrice(candidates ...decimal.Decimal) decimal.Decimal {
	for _, c := range candidates {
		if c.GreaterThan(decimal.Zero) {
			return c
		}
	}
	return decimal.Zero
}
