package models

import "fmt"

func stringField(data map[string]interface{}, key string) (string, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("field %s: expected string, got %T", key, raw)
	}
	return value, nil
}
