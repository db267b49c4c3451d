package config

import (
	"reflect"
	"testing"
)

func TestMergeMaps(t *testing.T) {
	base := map[string]interface{}{
		"theme": "dark",
		"search": map[string]interface{}{
			"regex": false,
		},
		"keys": map[string]interface{}{
			"toggle": []interface{}{"space"},
			"quit":   []interface{}{"q"},
		},
	}
	override := map[string]interface{}{
		"theme": "light",
		"search": map[string]interface{}{
			"regex": true,
		},
		"keys": map[string]interface{}{
			"toggle": []interface{}{"enter"},
		},
		"indent": 4,
	}

	got := mergeMaps(base, override)
	want := map[string]interface{}{
		"theme":  "light",
		"indent": 4,
		"search": map[string]interface{}{
			"regex": true,
		},
		"keys": map[string]interface{}{
			"toggle": []interface{}{"enter"},
			"quit":   []interface{}{"q"},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("mergeMaps() = %v, want %v", got, want)
	}

	if base["theme"] != "dark" {
		t.Error("base map was modified")
	}
}

func TestMergeMapsReplacesNonMaps(t *testing.T) {
	got := mergeMaps(
		map[string]interface{}{"logging": map[string]interface{}{"level": "info"}},
		map[string]interface{}{"logging": "off"},
	)
	if got["logging"] != "off" {
		t.Errorf("Expected scalar override to replace map, got %v", got["logging"])
	}
}
