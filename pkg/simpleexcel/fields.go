package simpleexcel

import (
	"reflect"
	"sort"
)

// dataValue returns the bound data as a reflected slice; anything else renders no rows.
func dataValue(data interface{}) reflect.Value {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return reflect.ValueOf([]interface{}{})
	}
	return v
}

func extractValue(item reflect.Value, fieldName string) interface{} {
	for item.Kind() == reflect.Ptr || item.Kind() == reflect.Interface {
		if item.IsNil() {
			return nil
		}
		item = item.Elem()
	}
	switch item.Kind() {
	case reflect.Struct:
		if f := item.FieldByName(fieldName); f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
	case reflect.Map:
		if val := item.MapIndex(reflect.ValueOf(fieldName)); val.IsValid() {
			return val.Interface()
		}
	}
	return nil
}

// mergeColumns keeps the configured columns first, then appends fields detected in the data.
// A section with configured columns renders only those.
func mergeColumns(data interface{}, configured []ColumnConfig) []ColumnConfig {
	if len(configured) > 0 || data == nil {
		for i := range configured {
			if configured[i].Header == "" {
				configured[i].Header = configured[i].FieldName
			}
		}
		return configured
	}
	var cols []ColumnConfig
	for _, field := range getFields(data) {
		cols = append(cols, ColumnConfig{FieldName: field, Header: field, Width: 20})
	}
	return cols
}

// getFields lists struct fields in declaration order, or the sorted union of map keys
// over the first rows.
func getFields(data interface{}) []string {
	v := dataValue(data)
	if v.Len() == 0 {
		return nil
	}

	elem := v.Index(0)
	for elem.Kind() == reflect.Ptr || elem.Kind() == reflect.Interface {
		elem = elem.Elem()
	}
	if elem.Kind() == reflect.Struct {
		return getStructFields(elem.Type())
	}
	if elem.Kind() != reflect.Map {
		return nil
	}

	seen := make(map[string]bool)
	keys := []string{}
	limit := v.Len()
	if limit > 50 {
		limit = 50
	}
	for i := 0; i < limit; i++ {
		row := v.Index(i)
		for row.Kind() == reflect.Ptr || row.Kind() == reflect.Interface {
			row = row.Elem()
		}
		if row.Kind() != reflect.Map {
			continue
		}
		for _, key := range row.MapKeys() {
			if k := key.String(); !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

func getStructFields(t reflect.Type) []string {
	var fields []string
	for i := 0; i < t.NumField(); i++ {
		if field := t.Field(i); field.PkgPath == "" {
			fields = append(fields, field.Name)
		}
	}
	return fields
}
