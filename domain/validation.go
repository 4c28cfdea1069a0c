package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "template", func(fl validator.FieldLevel) bool {
		return Template(fl.Field().String()).IsValid()
	})
	mustRegister(v, "word", func(fl validator.FieldLevel) bool {
		return Word(fl.Field().String()).IsValid()
	})
	mustRegister(v, "conjunction", func(fl validator.FieldLevel) bool {
		return Conjunction(fl.Field().String()).IsValid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// decodeObject turns an untyped payload into its JSON object members.
// A nil, empty, JSON null or non object payload is an error.
func decodeObject(payload any) (map[string]json.RawMessage, error) {
	var raw []byte
	switch p := payload.(type) {
	case nil:
		return nil, fmt.Errorf("empty payload")
	case json.RawMessage:
		raw = p
	case []byte:
		raw = p
	case string:
		raw = []byte(p)
	default:
		b, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, err
	}
	if members == nil {
		return nil, fmt.Errorf("empty payload")
	}
	return members, nil
}

// member decodes the member named exactly key into target.
// It reports false when the key is absent or null; key matching is case sensitive.
func member(members map[string]json.RawMessage, key string, target any) (bool, error) {
	raw, ok := members[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return false, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return true, err
	}
	return true, nil
}
