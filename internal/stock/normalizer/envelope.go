// Package normalizer turns the ERP's JSON responses into domain values.
//
// The OData services answer with different envelopes depending on the
// service generation: V4 wraps entities in a top-level "value" list, V2 nests
// them under "d.results" (or "d" for a single entity), and some gateways return
// the bare entity. Each shape is a Kind with its own parser; callers never need
// to know which one they got.
package normalizer

type Kind int

const (
	KindFlat Kind = iota + 1
	KindValueList
	KindLegacyResults
	KindLegacySingle
)

func (k Kind) String() string {
	switch k {
	case KindFlat:
		return "flat"
	case KindValueList:
		return "value-list"
	case KindLegacyResults:
		return "legacy-results"
	case KindLegacySingle:
		return "legacy-single"
	}
	return "unknown"
}

// Envelope is one successfully parsed view of a payload.
type Envelope struct {
	Kind    Kind
	Records []map[string]any
}

// First returns the leading record, which is the only one the lookups read.
func (e Envelope) First() (map[string]any, bool) {
	if len(e.Records) == 0 {
		return nil, false
	}
	return e.Records[0], true
}

type parser func(root map[string]any) (Envelope, bool)

// Priority order matters: a field on the root wins over the V4 list, which
// wins over the V2 wrappers.
var parsers = []parser{
	parseFlat,
	parseValueList,
	parseLegacyResults,
	parseLegacySingle,
}

// ParseEnvelopes returns every envelope variant the payload matches, in
// priority order. A nil or non-object payload matches none.
func ParseEnvelopes(payload any) []Envelope {
	root, ok := asObject(payload)
	if !ok {
		return nil
	}

	var envelopes []Envelope
	for _, parse := range parsers {
		if env, ok := parse(root); ok {
			envelopes = append(envelopes, env)
		}
	}
	return envelopes
}

// ParseEnvelope returns the highest-priority list-carrying envelope, falling
// back to the flat view.
func ParseEnvelope(payload any) (Envelope, bool) {
	envelopes := ParseEnvelopes(payload)
	if len(envelopes) == 0 {
		return Envelope{}, false
	}
	for _, env := range envelopes {
		if env.Kind != KindFlat {
			return env, true
		}
	}
	return envelopes[0], true
}

// IsEmptyResult reports whether the payload is a well-formed collection
// response whose list is present and empty.
func IsEmptyResult(payload any) bool {
	root, ok := asObject(payload)
	if !ok {
		return false
	}

	if list, ok := root["value"].([]any); ok && len(list) == 0 {
		return true
	}

	if d, ok := asObject(root["d"]); ok {
		if list, ok := d["results"].([]any); ok && len(list) == 0 {
			return true
		}
	}

	return false
}

func parseFlat(root map[string]any) (Envelope, bool) {
	return Envelope{Kind: KindFlat, Records: []map[string]any{root}}, true
}

func parseValueList(root map[string]any) (Envelope, bool) {
	list, ok := root["value"].([]any)
	if !ok {
		return Envelope{}, false
	}
	return Envelope{Kind: KindValueList, Records: objects(list)}, true
}

func parseLegacyResults(root map[string]any) (Envelope, bool) {
	d, ok := asObject(root["d"])
	if !ok {
		return Envelope{}, false
	}
	list, ok := d["results"].([]any)
	if !ok {
		return Envelope{}, false
	}
	return Envelope{Kind: KindLegacyResults, Records: objects(list)}, true
}

func parseLegacySingle(root map[string]any) (Envelope, bool) {
	d, ok := asObject(root["d"])
	if !ok {
		return Envelope{}, false
	}
	if _, hasResults := d["results"]; hasResults {
		return Envelope{}, false
	}
	return Envelope{Kind: KindLegacySingle, Records: []map[string]any{d}}, true
}

func asObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok && obj != nil
}

// objects keeps list order and replaces non-object elements with empty
// records so that "first element" keeps its meaning.
func objects(list []any) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		obj, ok := asObject(item)
		if !ok {
			obj = map[string]any{}
		}
		out = append(out, obj)
	}
	return out
}

// navRecords resolves an expanded navigation property, trying keys in order
// and stopping at the first one present. The property may be a list, a V2
// {"results": [...]} wrapper, or a single object.
func navRecords(record map[string]any, keys ...string) ([]map[string]any, bool) {
	for _, key := range keys {
		raw, present := record[key]
		if !present || raw == nil {
			continue
		}
		switch v := raw.(type) {
		case []any:
			return objects(v), true
		case map[string]any:
			if list, ok := v["results"].([]any); ok {
				return objects(list), true
			}
			return []map[string]any{v}, true
		}
	}
	return nil, false
}

// stringField returns the first alias holding a string value.
func stringField(record map[string]any, aliases ...string) (string, bool) {
	for _, alias := range aliases {
		if s, ok := record[alias].(string); ok {
			return s, true
		}
	}
	return "", false
}
