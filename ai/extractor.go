// Package ai transforme du texte libre en relevés typés via l'agent Mistral.
// L'extracteur est sans état entre deux appels : chaque requête est un cycle
// complet prompt -> réponse -> parsing. La prévention des appels concurrents
// sur une même surface est à la charge de l'appelant.
package ai

import (
	"context"
	"strings"

	"ecotrack/integrations/mistral"
)

type Extractor struct {
	client *mistral.Client
}

func NewExtractor(client *mistral.Client) *Extractor {
	return &Extractor{client: client}
}

// Ready indique si l'agent distant est configuré.
func (x *Extractor) Ready() bool {
	return x != nil && x.client.Enabled()
}

// TransportResult suit le schéma du prompt trajet (mode + distance).
type TransportResult struct {
	IsValid     bool    `json:"isValid"`
	Mode        string  `json:"mode"`
	DistanceKm  float64 `json:"distanceKm"`
	Description string  `json:"description"`
}

// DietResult suit le schéma JSON documenté du prompt alimentaire.
// Les émissions sont en grammes, comme dans le store.
type DietResult struct {
	IsValid            bool       `json:"isValid"`
	TotalEmissionGrams float64    `json:"totalEmissionGrams"`
	Items              []DietItem `json:"items"`
	Suggestions        []string   `json:"suggestions"`
}

type DietItem struct {
	Name          string  `json:"name"`
	EmissionGrams float64 `json:"emissionGrams"`
	Icon          string  `json:"icon"`
}

// ShoppingResult suit le schéma du prompt achats (kg).
type ShoppingResult struct {
	IsValid       bool           `json:"isValid"`
	TotalEmission float64        `json:"totalEmission"`
	Items         []ShoppingItem `json:"items"`
	EcoTips       []string       `json:"ecoTips"`
}

type ShoppingItem struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	CO2Emission float64 `json:"co2Emission"`
	Icon        string  `json:"icon"`
}

// WasteResult suit le schéma du prompt déchets.
type WasteResult struct {
	IsValid        bool        `json:"isValid"`
	TotalCO2Impact float64     `json:"totalCO2Impact"`
	DetectedItems  []WasteItem `json:"detectedItems"`
	EcoTip         string      `json:"ecoTip"`
}

type WasteItem struct {
	WasteType         string  `json:"wasteType"`
	Category          string  `json:"category"`
	EstimatedQuantity float64 `json:"estimatedQuantity"`
	Unit              string  `json:"unit"`
	SuggestedDisposal string  `json:"suggestedDisposal"`
	EstimatedCO2      float64 `json:"estimatedCO2"`
	Description       string  `json:"description"`
}

// BillResult suit le schéma plat du prompt factures.
type BillResult struct {
	IsValid        bool     `json:"isValid"`
	ElectricityKwh float64  `json:"electricityKwh"`
	GasLitres      float64  `json:"gasLitres"`
	WaterLitres    float64  `json:"waterLitres"`
	InternetGb     float64  `json:"internetGb"`
	EcoTips        []string `json:"ecoTips"`
}

func (x *Extractor) AnalyzeTransport(ctx context.Context, text string) (*TransportResult, error) {
	raw, err := x.invoke(ctx, buildTransportPrompt, text)
	if err != nil {
		return nil, err
	}
	return decodeReply[TransportResult](raw)
}

func (x *Extractor) AnalyzeDiet(ctx context.Context, text string) (*DietResult, error) {
	raw, err := x.invoke(ctx, buildDietPrompt, text)
	if err != nil {
		return nil, err
	}
	return decodeReply[DietResult](raw)
}

func (x *Extractor) AnalyzeShopping(ctx context.Context, text string) (*ShoppingResult, error) {
	raw, err := x.invoke(ctx, buildShoppingPrompt, text)
	if err != nil {
		return nil, err
	}
	return decodeReply[ShoppingResult](raw)
}

func (x *Extractor) AnalyzeWaste(ctx context.Context, text string) (*WasteResult, error) {
	raw, err := x.invoke(ctx, buildWastePrompt, text)
	if err != nil {
		return nil, err
	}
	return decodeReply[WasteResult](raw)
}

func (x *Extractor) AnalyzeBill(ctx context.Context, text string) (*BillResult, error) {
	raw, err := x.invoke(ctx, buildBillPrompt, text)
	if err != nil {
		return nil, err
	}
	return decodeReply[BillResult](raw)
}

// invoke vérifie la saisie, construit le prompt et soumet la conversation.
// Tout échec réseau/service devient une TransportError (retryable).
func (x *Extractor) invoke(ctx context.Context, build func(string) string, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}
	resp, err := x.client.SendConversation(ctx, build(text))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	return resp.FirstText(), nil
}
