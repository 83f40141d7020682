package emissions

import (
	"fmt"
	"sort"
	"strings"
)

// Tables de référence inlinées dans les prompts IA : elles servent d'ancrage
// chiffré au modèle, pas de source de vérité pour les calculs locaux.

// gCO2e par portion usuelle.
var dietReferenceGrams = map[string]float64{
	"boeuf (100g)":          2700,
	"agneau (100g)":         2400,
	"fromage (50g)":         550,
	"poulet (100g)":         690,
	"poisson (100g)":        510,
	"riz (150g cuit)":       480,
	"oeuf (1 unité)":        200,
	"lait (250ml)":          400,
	"légumes (150g)":        110,
	"fruits (150g)":         90,
	"pain (2 tranches)":     80,
	"café (1 tasse)":        60,
}

// kgCO2e par article type.
var shoppingReferenceKg = map[string]float64{
	"t-shirt coton":        5.5,
	"jean":                 20.0,
	"chaussures":           13.5,
	"smartphone":           55.0,
	"ordinateur portable":  250.0,
	"livre":                1.1,
	"meuble bois (petit)":  25.0,
	"appareil électroménager": 45.0,
}

// TransportReferenceTable rend les facteurs par mode sous forme de texte pour prompt.
func TransportReferenceTable() string {
	modes := make([]string, 0, len(transportFactors))
	for m := range transportFactors {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	var b strings.Builder
	for _, m := range modes {
		fmt.Fprintf(&b, "- %s : %.3f kgCO2e/km\n", m, transportFactors[m])
	}
	return b.String()
}

// DietReferenceTable rend la table alimentaire sous forme de texte pour prompt.
func DietReferenceTable() string {
	return renderTable(dietReferenceGrams, "gCO2e")
}

// ShoppingReferenceTable rend la table achats sous forme de texte pour prompt.
func ShoppingReferenceTable() string {
	return renderTable(shoppingReferenceKg, "kgCO2e")
}

// WasteReferenceTable rend la grille (catégorie, élimination) pour prompt.
func WasteReferenceTable() string {
	cats := WasteCategories()
	sort.Strings(cats)
	var b strings.Builder
	for _, cat := range cats {
		row := wasteFactors[cat]
		disposals := make([]string, 0, len(row))
		for d := range row {
			disposals = append(disposals, d)
		}
		sort.Strings(disposals)
		parts := make([]string, 0, len(disposals))
		for _, d := range disposals {
			parts = append(parts, fmt.Sprintf("%s=%.2f", d, row[d]))
		}
		fmt.Fprintf(&b, "- %s : %s kgCO2e/kg\n", cat, strings.Join(parts, ", "))
	}
	return b.String()
}

func renderTable(table map[string]float64, unit string) string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s : %.0f %s\n", k, table[k], unit)
	}
	return b.String()
}
