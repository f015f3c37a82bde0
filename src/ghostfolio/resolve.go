package ghostfolio

import (
	"context"
	"errors"
	"strings"
)

const maxSuggestions = 5

// Resolution is the outcome of resolving a symbol against the data source.
type Resolution struct {
	Found       bool
	Symbol      string
	Profile     *SymbolProfile
	Suggestions []LookupItem
}

// ResolveSymbol checks whether a symbol refers to a real security. It tries
// an exact profile lookup first, then falls back to a fuzzy search. When the
// symbol cannot be resolved, the result carries up to five suggested
// alternatives from the search.
func (c *Client) ResolveSymbol(ctx context.Context, dataSource, symbol string) (*Resolution, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return &Resolution{Found: false, Symbol: symbol}, nil
	}
	if dataSource == "" {
		dataSource = "YAHOO"
	}

	profile, err := c.SymbolProfile(ctx, dataSource, symbol)
	if err == nil && profile.Symbol != "" {
		return &Resolution{Found: true, Symbol: profile.Symbol, Profile: profile}, nil
	}
	if err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.IsNotFound() {
			return nil, err
		}
	}

	result, err := c.SymbolLookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	for _, item := range result.Items {
		if strings.EqualFold(item.Symbol, symbol) {
			return &Resolution{Found: true, Symbol: strings.ToUpper(item.Symbol)}, nil
		}
	}

	suggestions := result.Items
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return &Resolution{Found: false, Symbol: symbol, Suggestions: suggestions}, nil
}

// SuggestionText renders the suggestions as a human-readable list.
func (r *Resolution) SuggestionText() string {
	if len(r.Suggestions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(r.Suggestions))
	for _, s := range r.Suggestions {
		name := s.Name
		if name == "" {
			name = "?"
		}
		parts = append(parts, s.Symbol+" ("+name+")")
	}
	return strings.Join(parts, ", ")
}
