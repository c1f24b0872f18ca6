package diff

import (
	"encoding/json"
	"sort"
)

// SettingChange is one changed key between two settings maps. A key missing
// on one side has a nil value there.
type SettingChange struct {
	Key      string      `json:"key"`
	OldValue interface{} `json:"old_value"`
	NewValue interface{} `json:"new_value"`
}

// SettingsDiff reports every key in the union of both maps whose serialized
// value differs. Keys are returned in sorted order so the output is stable.
func SettingsDiff(oldMap, newMap map[string]interface{}) []SettingChange {
	keys := make(map[string]struct{}, len(oldMap)+len(newMap))
	for k := range oldMap {
		keys[k] = struct{}{}
	}
	for k := range newMap {
		keys[k] = struct{}{}
	}

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	changes := make([]SettingChange, 0)
	for _, k := range sorted {
		oldVal, newVal := oldMap[k], newMap[k]
		if serialize(oldVal) != serialize(newVal) {
			changes = append(changes, SettingChange{Key: k, OldValue: oldVal, NewValue: newVal})
		}
	}
	return changes
}

// serialize gives a comparable form for JSON-like values; a missing key
// serializes as "null", so absent and explicit-null compare equal.
func serialize(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
