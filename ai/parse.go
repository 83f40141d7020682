package ai

import (
	"encoding/json"
	"errors"
	"strings"
)

// Parsing défensif des réponses Mistral : le JSON renvoyé par le modèle est
// une entrée non fiable. Chaque champ absent retombe sur sa valeur zéro,
// rien n'est supposé présent.

// stripFences retire un éventuel habillage Markdown (```json ... ``` ou
// ``` ... ```) autour du JSON.
func stripFences(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```json")
	t = strings.TrimPrefix(t, "```")
	if i := strings.LastIndex(t, "```"); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

// validityProbe lit uniquement le verdict du service avant le décodage
// complet. reason/error sont les deux noms de champ observés.
type validityProbe struct {
	IsValid *bool  `json:"isValid"`
	Error   string `json:"error"`
	Reason  string `json:"reason"`
}

// decodeReply déshabille, vérifie le verdict du service puis décode le
// schéma attendu. Toute réponse malformée devient une ParseError portant
// le texte brut.
func decodeReply[T any](raw string) (*T, error) {
	body := stripFences(raw)
	if body == "" {
		return nil, &ParseError{Raw: raw, Err: errors.New("réponse vide")}
	}

	var probe validityProbe
	if err := json.Unmarshal([]byte(body), &probe); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	if probe.IsValid != nil && !*probe.IsValid {
		reason := probe.Error
		if reason == "" {
			reason = probe.Reason
		}
		if reason == "" {
			reason = "entrée rejetée par le service"
		}
		return nil, &ValidationError{Reason: reason}
	}

	var out T
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	return &out, nil
}
