package emissions

import "strings"

// Tables de facteurs d'émission pour le MVP.
// Les valeurs sont des constantes fixes, pas configurables au runtime :
// on préfère une table simple et auditables à un système de règles.

// Modes de transport connus.
const (
	ModeCar       = "car"
	ModeBus       = "bus"
	ModeMotorbike = "motorbike"
	ModeTrain     = "train"
	ModeBike      = "bike"
)

// kgCO2e par km. Ordre attendu : voiture > bus > moto > train > vélo (0).
var transportFactors = map[string]float64{
	ModeCar:       0.192,
	ModeBus:       0.105,
	ModeMotorbike: 0.094,
	ModeTrain:     0.041,
	ModeBike:      0.0,
}

// TransportFactor retourne le facteur kg/km d'un mode.
// Un mode inconnu retourne 0 plutôt qu'une erreur : les saisies
// extraites par l'IA peuvent contenir des modes inédits.
func TransportFactor(mode string) float64 {
	return transportFactors[normalize(mode)]
}

// Facteurs factures : kgCO2e par unité de consommation.
const (
	ElectricityFactorPerKWh = 0.47
	GasFactorPerLitre       = 1.51
	WaterFactorPerLitre     = 0.000344
	InternetFactorPerGB     = 0.055
)

// BillEmission détaille le CO2e d'une facture multi-énergies.
type BillEmission struct {
	ElectricityKg float64
	GasKg         float64
	WaterKg       float64
	InternetKg    float64
	TotalKg       float64
}

// CalculateBillEmission applique les quatre facteurs indépendants.
func CalculateBillEmission(electricityKWh, gasLitres, waterLitres, internetGB float64) BillEmission {
	b := BillEmission{
		ElectricityKg: electricityKWh * ElectricityFactorPerKWh,
		GasKg:         gasLitres * GasFactorPerLitre,
		WaterKg:       waterLitres * WaterFactorPerLitre,
		InternetKg:    internetGB * InternetFactorPerGB,
	}
	b.TotalKg = b.ElectricityKg + b.GasKg + b.WaterKg + b.InternetKg
	return b
}

// Méthodes d'élimination des déchets.
const (
	DisposalLandfill    = "landfill"
	DisposalIncinerated = "incinerated"
	DisposalRecycled    = "recycled"
	DisposalComposted   = "composted"
)

// kgCO2e par kg de déchet, par (catégorie, élimination).
// Invariant de la table : pour chaque catégorie,
// landfill > incinerated > recycled >= composted >= 0,
// composted n'étant défini que pour les catégories organiques.
var wasteFactors = map[string]map[string]float64{
	"plastic": {
		DisposalLandfill:    2.9,
		DisposalIncinerated: 2.1,
		DisposalRecycled:    0.4,
	},
	"paper": {
		DisposalLandfill:    1.4,
		DisposalIncinerated: 0.9,
		DisposalRecycled:    0.3,
		DisposalComposted:   0.1,
	},
	"glass": {
		DisposalLandfill:    0.6,
		DisposalIncinerated: 0.5,
		DisposalRecycled:    0.2,
	},
	"metal": {
		DisposalLandfill:    2.2,
		DisposalIncinerated: 1.6,
		DisposalRecycled:    0.5,
	},
	"organic": {
		DisposalLandfill:    1.9,
		DisposalIncinerated: 0.8,
		DisposalRecycled:    0.2,
		DisposalComposted:   0.1,
	},
	"food": {
		DisposalLandfill:    2.5,
		DisposalIncinerated: 1.1,
		DisposalRecycled:    0.3,
		DisposalComposted:   0.2,
	},
	"electronic": {
		DisposalLandfill:    4.8,
		DisposalIncinerated: 3.2,
		DisposalRecycled:    1.1,
	},
	"textile": {
		DisposalLandfill:    3.4,
		DisposalIncinerated: 2.4,
		DisposalRecycled:    0.6,
	},
}

// WasteCategories liste les catégories connues de la table.
func WasteCategories() []string {
	out := make([]string, 0, len(wasteFactors))
	for k := range wasteFactors {
		out = append(out, k)
	}
	return out
}

// WasteFactor retourne le facteur kg/kg d'un couple (catégorie, élimination).
// Tout couple inconnu retourne 0.0 : l'IA peut inventer des combinaisons.
func WasteFactor(category, disposal string) float64 {
	row, ok := wasteFactors[normalize(category)]
	if !ok {
		return 0
	}
	return row[normalize(disposal)]
}

// CalculateWasteEmission = facteur × quantité (kg). Linéaire en quantité.
func CalculateWasteEmission(category, disposal string, quantityKg float64) float64 {
	return WasteFactor(category, disposal) * quantityKg
}

// ReferenceMonthlyKg est la moyenne mensuelle de référence pour l'EcoScore
// (~5 tCO2e/an par personne, moyenne mondiale).
const ReferenceMonthlyKg = 420.0

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
