package ai

import "errors"

// Taxonomie d'erreurs du pipeline d'extraction. Seule TransportError est
// retryable (en resoumettant le même prompt) ; les deux autres exigent un
// changement d'entrée.

// ErrEmptyInput : saisie vide, détectée avant tout appel distant.
var ErrEmptyInput = errors.New("texte d'entrée requis")

// TransportError couvre les échecs réseau/service, rate-limiting inclus.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "appel Mistral échoué: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError : le service a explicitement rejeté l'entrée
// (isValid: false), avec la raison qu'il a fournie.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ParseError : la réponse n'a pas pu être interprétée selon le schéma
// attendu. La réponse brute est conservée pour le diagnostic.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return "réponse Mistral inexploitable: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
