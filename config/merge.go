package config

// mergeMaps merges override into base and returns a new map. Nested maps are
// merged key by key; any other value in override replaces the base value.
// Neither input is modified.
func mergeMaps(base, override map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(base)+len(override))
	for k, v := range base {
		result[k] = v
	}

	for k, v := range override {
		overrideMap, overrideOk := v.(map[string]interface{})
		baseMap, baseOk := result[k].(map[string]interface{})
		if overrideOk && baseOk {
			result[k] = mergeMaps(baseMap, overrideMap)
			continue
		}
		result[k] = v
	}

	return result
}
