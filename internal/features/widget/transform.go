package widget

import (
	"fmt"

	"github.com/d5/tengo/v2"
)

// applyTransform runs an optional tengo script over the normalized entries.
// The script sees `entries` as an array of {label, value, profit} maps and
// may reassign it. A failing script leaves the entries untouched; callers
// log the error and render the original data.
func applyTransform(scriptContent string, entries []ChartEntry) ([]ChartEntry, error) {
	if scriptContent == "" {
		return entries, nil
	}

	arr := make([]interface{}, len(entries))
	for i, e := range entries {
		m := map[string]interface{}{
			"label": e.Label,
			"value": e.Value,
		}
		if e.Profit != nil {
			m["profit"] = *e.Profit
		}
		arr[i] = m
	}

	script := tengo.NewScript([]byte(scriptContent))
	if err := script.Add("entries", arr); err != nil {
		return entries, fmt.Errorf("failed to bind entries: %w", err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return entries, fmt.Errorf("failed to compile transform: %w", err)
	}
	if err := compiled.Run(); err != nil {
		return entries, fmt.Errorf("failed to run transform: %w", err)
	}

	raw, ok := compiled.Get("entries").Value().([]interface{})
	if !ok {
		return entries, fmt.Errorf("transform must leave entries as an array")
	}

	out := make([]ChartEntry, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		entry := ChartEntry{
			Label: fmt.Sprintf("%v", m["label"]),
			Value: toNumber(m["value"]),
		}
		if p, ok := m["profit"]; ok {
			profit := toNumber(p)
			entry.Profit = &profit
		}
		out = append(out, entry)
	}
	return out, nil
}
