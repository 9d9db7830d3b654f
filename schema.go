package faqdex

import (
	"fmt"
	"reflect"
)

const tagKey = "faqdex"

// schemaMeta holds parsed struct tag metadata, cached per Corpus.
type schemaMeta struct {
	typ reflect.Type

	// Field index in the struct for each role, -1 when absent.
	idIdx       int
	questionIdx int
	answerIdx   int
	categoryIdx int
	keywordsIdx int
}

// parseSchema reflects on T and extracts faqdex struct tag metadata.
func parseSchema[T any]() (*schemaMeta, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return nil, fmt.Errorf("faqdex: type parameter is not a struct")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("faqdex: type %s is not a struct", t)
	}

	meta := &schemaMeta{
		typ: t, idIdx: -1, questionIdx: -1,
		answerIdx: -1, categoryIdx: -1, keywordsIdx: -1,
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get(tagKey)
		if tag == "" || tag == "-" {
			continue
		}
		if err := applyRole(meta, i, f, tag); err != nil {
			return nil, err
		}
	}

	return validateSchema(meta, t)
}

// applyRole processes a single struct field's faqdex tag.
func applyRole(meta *schemaMeta, idx int, f reflect.StructField, role string) error {
	switch role {
	case "id":
		if meta.idIdx != -1 {
			return fmt.Errorf("faqdex: duplicate id tag on field %s", f.Name)
		}
		meta.idIdx = idx
	case "question":
		if meta.questionIdx != -1 {
			return fmt.Errorf("faqdex: duplicate question tag on field %s", f.Name)
		}
		if f.Type.Kind() != reflect.String {
			return fmt.Errorf("faqdex: question field %s must be a string", f.Name)
		}
		meta.questionIdx = idx
	case "answer":
		if meta.answerIdx != -1 {
			return fmt.Errorf("faqdex: duplicate answer tag on field %s", f.Name)
		}
		if f.Type.Kind() != reflect.String {
			return fmt.Errorf("faqdex: answer field %s must be a string", f.Name)
		}
		meta.answerIdx = idx
	case "category":
		if meta.categoryIdx != -1 {
			return fmt.Errorf("faqdex: duplicate category tag on field %s", f.Name)
		}
		if f.Type.Kind() != reflect.String {
			return fmt.Errorf("faqdex: category field %s must be a string", f.Name)
		}
		meta.categoryIdx = idx
	case "keywords":
		if meta.keywordsIdx != -1 {
			return fmt.Errorf("faqdex: duplicate keywords tag on field %s", f.Name)
		}
		if f.Type.Kind() != reflect.Slice || f.Type.Elem().Kind() != reflect.String {
			return fmt.Errorf("faqdex: keywords field %s must be a string slice", f.Name)
		}
		meta.keywordsIdx = idx
	default:
		return fmt.Errorf("faqdex: unknown tag %q on field %s", role, f.Name)
	}
	return nil
}

func validateSchema(meta *schemaMeta, t reflect.Type) (*schemaMeta, error) {
	if meta.questionIdx == -1 {
		return nil, fmt.Errorf("faqdex: no field with `faqdex:\"question\"` tag in %s", t)
	}
	if meta.answerIdx == -1 {
		return nil, fmt.Errorf("faqdex: no field with `faqdex:\"answer\"` tag in %s", t)
	}
	return meta, nil
}

// toEntry converts a typed struct to an Entry using schema metadata.
func (m *schemaMeta) toEntry(item any) Entry {
	v := reflect.ValueOf(item)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	e := Entry{
		Question: v.Field(m.questionIdx).String(),
		Answer:   v.Field(m.answerIdx).String(),
	}
	if m.idIdx != -1 {
		e.ID = fmt.Sprint(v.Field(m.idIdx).Interface())
	}
	if m.categoryIdx != -1 {
		e.Category = v.Field(m.categoryIdx).String()
	}
	if m.keywordsIdx != -1 {
		f := v.Field(m.keywordsIdx)
		if n := f.Len(); n > 0 {
			kw := make([]string, n)
			for i := range kw {
				kw[i] = f.Index(i).String()
			}
			e.Keywords = kw
		}
	}
	return e
}
