package inspector

import (
	"fmt"
	"reflect"
	"strings"
)

// Widget types for rendering fields.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBool
	WidgetWeights
	WidgetSkip
)

// Field represents a struct field with rendering hints.
type Field struct {
	Name    string
	Value   any
	Widget  Widget
	Options map[string]string
}

// ParseTag parses an inspect struct tag.
// Format: `inspect:"widget[,option:value...]"`
// Examples:
//
//	`inspect:"label,fmt:%.1f"`
//	`inspect:"weights"`
//	`inspect:"skip"`
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)

	if tag == "" {
		return WidgetAuto, options
	}

	parts := strings.Split(tag, ",")

	var widget Widget
	switch strings.TrimSpace(parts[0]) {
	case "label":
		widget = WidgetLabel
	case "bool":
		widget = WidgetBool
	case "weights":
		widget = WidgetWeights
	case "skip":
		widget = WidgetSkip
	default:
		widget = WidgetAuto
	}

	for _, part := range parts[1:] {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) == 2 {
			options[kv[0]] = kv[1]
		}
	}

	return widget, options
}

// ExtractFields uses reflection to list the exported fields of a struct.
func ExtractFields(v any) []Field {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	t := rv.Type()
	var fields []Field
	for i := 0; i < rv.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}
		fv := rv.Field(i)
		if widget == WidgetAuto {
			widget = autoDetectWidget(fv)
		}

		fields = append(fields, Field{
			Name:    sf.Name,
			Value:   fv.Interface(),
			Widget:  widget,
			Options: options,
		})
	}
	return fields
}

// autoDetectWidget chooses a widget based on the field type.
func autoDetectWidget(v reflect.Value) Widget {
	switch v.Kind() {
	case reflect.Bool:
		return WidgetBool
	case reflect.Array, reflect.Slice:
		return WidgetWeights
	default:
		return WidgetLabel
	}
}

// FormatValue formats a field value as a string.
func FormatValue(value any, fmtStr string) string {
	if fmtStr != "" {
		return fmt.Sprintf(fmtStr, value)
	}
	switch v := value.(type) {
	case float32, float64:
		return fmt.Sprintf("%.2f", v)
	case bool:
		if v {
			return "yes"
		}
		return "no"
	default:
		return fmt.Sprintf("%v", value)
	}
}

// FloatSlice extracts the elements of a float array or slice.
func FloatSlice(value any) ([]float64, bool) {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Array && v.Kind() != reflect.Slice {
		return nil, false
	}

	out := make([]float64, v.Len())
	for i := range out {
		switch e := v.Index(i).Interface().(type) {
		case float32:
			out[i] = float64(e)
		case float64:
			out[i] = e
		default:
			return nil, false
		}
	}
	return out, true
}

// Lines renders every field as "Name: value". Weight fields list their
// elements with a fixed precision.
func Lines(v any) []string {
	fields := ExtractFields(v)
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Widget == WidgetWeights {
			if ws, ok := FloatSlice(f.Value); ok {
				parts := make([]string, len(ws))
				for i, w := range ws {
					parts[i] = fmt.Sprintf("%.1f", w)
				}
				lines = append(lines, f.Name+": ["+strings.Join(parts, " ")+"]")
				continue
			}
		}
		lines = append(lines, f.Name+": "+FormatValue(f.Value, f.Options["fmt"]))
	}
	return lines
}
