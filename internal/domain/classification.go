package domain

import "strings"

// Outcome is the classification shown for the current view
type Outcome string

const (
	OutcomeEmpty       Outcome = "empty"
	OutcomeNotFound    Outcome = "not-found"
	OutcomeContainsSoy Outcome = "contains-soy"
	OutcomeNoSoy       Outcome = "no-soy"
)

// Display messages per outcome
const (
	MessageNotFound    = "❌ Product not found."
	MessageContainsSoy = "🚫 DON'T EAT THIS."
	MessageNoSoy       = "✅ YOU'RE GOOD."
)

// Background colors per outcome
const (
	BackgroundEmpty       = "white"
	BackgroundNotFound    = "#ffe0e0"
	BackgroundContainsSoy = "pink"
	BackgroundNoSoy       = "lightgreen"
)

// ContainsSoy reports whether the allergen declaration lists soybeans or the
// ingredient text mentions soy anywhere. Matching is plain substring search,
// so "soy" inside a longer word counts as a match.
func ContainsSoy(p Product) bool {
	allergens := strings.ToLower(p.Allergens())
	ingredients := strings.ToLower(p.IngredientsText())
	return strings.Contains(allergens, "soybeans") || strings.Contains(ingredients, "soy")
}

// Message returns the fixed message for the outcome
func (o Outcome) Message() string {
	switch o {
	case OutcomeNotFound:
		return MessageNotFound
	case OutcomeContainsSoy:
		return MessageContainsSoy
	case OutcomeNoSoy:
		return MessageNoSoy
	default:
		return ""
	}
}

// Background returns the fixed page background for the outcome
func (o Outcome) Background() string {
	switch o {
	case OutcomeNotFound:
		return BackgroundNotFound
	case OutcomeContainsSoy:
		return BackgroundContainsSoy
	case OutcomeNoSoy:
		return BackgroundNoSoy
	default:
		return BackgroundEmpty
	}
}
