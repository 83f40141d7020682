package ai

import (
	"fmt"

	"ecotrack/emissions"
)

// Prompts d'extraction structurée. Chaque prompt embarque le rôle, le texte
// utilisateur, une table de référence chiffrée et la consigne stricte de ne
// répondre QUE par un objet JSON au schéma documenté.

func buildTransportPrompt(text string) string {
	return fmt.Sprintf(`Tu es un expert en empreinte carbone des transports.
Analyse la description de trajet suivante :
"%s"

Modes connus et leurs facteurs :
%s

Identifie le mode le plus proche (car, bus, motorbike, train ou bike) et la
distance en km. Si le texte ne décrit pas un trajet, mets isValid à false et
explique dans "error".

Réponds UNIQUEMENT avec un objet JSON, sans texte autour, au schéma exact :
{"isValid": true, "mode": "", "distanceKm": 0.0, "description": ""}`,
		text, emissions.TransportReferenceTable())
}

func buildDietPrompt(text string) string {
	return fmt.Sprintf(`Tu es un expert en empreinte carbone alimentaire.
Analyse la description de repas suivante :
"%s"

Table de référence (émissions par portion) :
%s

Estime l'émission de chaque aliment détecté, en GRAMMES de CO2e.
Si le texte ne décrit pas un repas, mets isValid à false et explique dans "error".

Réponds UNIQUEMENT avec un objet JSON, sans texte autour, au schéma exact :
{"isValid": true, "totalEmissionGrams": 0.0, "items": [{"name": "", "emissionGrams": 0.0, "icon": ""}], "suggestions": [""]}`,
		text, emissions.DietReferenceTable())
}

func buildShoppingPrompt(text string) string {
	return fmt.Sprintf(`Tu es un expert en empreinte carbone des biens de consommation.
Analyse le ticket ou la description d'achats suivante :
"%s"

Table de référence (émissions par article type) :
%s

Estime l'émission de chaque produit détecté, en KG de CO2e.
Si aucun produit n'est détecté, mets isValid à false et explique dans "error".

Réponds UNIQUEMENT avec un objet JSON, sans texte autour, au schéma exact :
{"isValid": true, "totalEmission": 0.0, "items": [{"name": "", "category": "", "co2Emission": 0.0, "icon": ""}], "ecoTips": [""]}`,
		text, emissions.ShoppingReferenceTable())
}

func buildWastePrompt(text string) string {
	return fmt.Sprintf(`Tu es un expert en gestion des déchets et empreinte carbone.
Analyse la description de déchets suivante :
"%s"

Grille de facteurs (kgCO2e par kg, par catégorie et méthode d'élimination) :
%s

Pour chaque déchet détecté : catégorie, quantité estimée en kg, méthode
d'élimination suggérée (landfill, incinerated, recycled ou composted) et
émission estimée en kg via la grille.
Si le texte ne décrit pas de déchets, mets isValid à false et explique dans "error".

Réponds UNIQUEMENT avec un objet JSON, sans texte autour, au schéma exact :
{"isValid": true, "totalCO2Impact": 0.0, "detectedItems": [{"wasteType": "", "category": "", "estimatedQuantity": 0.0, "unit": "kg", "suggestedDisposal": "", "estimatedCO2": 0.0, "description": ""}], "ecoTip": ""}`,
		text, emissions.WasteReferenceTable())
}

func buildBillPrompt(text string) string {
	return fmt.Sprintf(`Tu es un expert en factures d'énergie.
Voici le texte (saisi ou extrait par OCR) d'une facture :
"%s"

Extrais les consommations : électricité en kWh, gaz en litres, eau en litres,
internet en GB. Mets 0 pour toute utilité absente de la facture.
Si le texte n'est pas une facture, mets isValid à false et explique dans "error".

Réponds UNIQUEMENT avec un objet JSON, sans texte autour, au schéma exact :
{"isValid": true, "electricityKwh": 0.0, "gasLitres": 0.0, "waterLitres": 0.0, "internetGb": 0.0, "ecoTips": [""]}`,
		text)
}
