package repository

// Helpers for decoding Odoo XML-RPC records. Odoo's read surface is loosely
// typed: many2one fields come back as [id, display_name] pairs, and any
// nullable field comes back as boolean false instead of its zero value.

func recString(rec map[string]interface{}, field string) string {
	if v, ok := rec[field].(string); ok {
		return v
	}
	return ""
}

func recInt64(rec map[string]interface{}, field string) int64 {
	switch v := rec[field].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func recFloat(rec map[string]interface{}, field string) float64 {
	switch v := rec[field].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func recBool(rec map[string]interface{}, field string) bool {
	if v, ok := rec[field].(bool); ok {
		return v
	}
	return false
}

// relID extracts the id of a many2one field ([id, name] pair, or false when
// unset).
func relID(rec map[string]interface{}, field string) int64 {
	pair, ok := rec[field].([]interface{})
	if !ok || len(pair) == 0 {
		return 0
	}
	switch v := pair[0].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// relName extracts the display name of a many2one field.
func relName(rec map[string]interface{}, field string) string {
	pair, ok := rec[field].([]interface{})
	if !ok || len(pair) < 2 {
		return ""
	}
	if name, ok := pair[1].(string); ok {
		return name
	}
	return ""
}

// cond builds one Odoo domain condition triple.
func cond(field, op string, value interface{}) []interface{} {
	return []interface{}{field, op, value}
}
