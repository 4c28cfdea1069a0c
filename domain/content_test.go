package domain

import (
	"encoding/json"
	"testing"

	"soapstone/errors"

	"github.com/stretchr/testify/require"
)

func TestValidateContent(t *testing.T) {
	tests := []struct {
		description string
		payload     any
		wantErr     bool
	}{
		{
			"Should accept a single phrase",
			`{"phrase1":{"template":"BLANK_AHEAD","word":"HEAD"}}`,
			false,
		},
		{
			"Should accept a compound message",
			`{"phrase1":{"template":"TRY_BLANK","word":"HEAD"},"phrase2":{"template":"BLANK_EXCLAIM","word":"HEAD"},"conjunction":"BUT"}`,
			false,
		},
		{
			"Should accept a decoded map payload",
			map[string]any{"phrase1": map[string]any{"template": "AHH_BLANK", "word": "HEAD"}},
			false,
		},
		{
			"Should drop unknown fields",
			`{"phrase1":{"template":"BLANK","word":"HEAD","color":"red"},"mood":"happy"}`,
			false,
		},
		{
			"Should fail without phrase1",
			`{"phrase2":{"template":"BLANK","word":"HEAD"},"conjunction":"OR"}`,
			true,
		},
		{
			"Should fail with phrase2 but no conjunction",
			`{"phrase1":{"template":"BLANK","word":"HEAD"},"phrase2":{"template":"BLANK","word":"HEAD"}}`,
			true,
		},
		{
			"Should fail with a conjunction but no phrase2",
			`{"phrase1":{"template":"BLANK","word":"HEAD"},"conjunction":"OR"}`,
			true,
		},
		{
			"Should fail with an unknown template",
			`{"phrase1":{"template":"PRAISE_THE_SUN","word":"HEAD"}}`,
			true,
		},
		{
			"Should fail with an unknown word",
			`{"phrase1":{"template":"BLANK","word":"SWORD"}}`,
			true,
		},
		{
			"Should fail with an unknown conjunction",
			`{"phrase1":{"template":"BLANK","word":"HEAD"},"phrase2":{"template":"BLANK","word":"HEAD"},"conjunction":"AND"}`,
			true,
		},
		{
			"Should fail when a template is missing",
			`{"phrase1":{"word":"HEAD"}}`,
			true,
		},
		{
			"Should fail when the template is not a string",
			`{"phrase1":{"template":3,"word":"HEAD"}}`,
			true,
		},
		{
			"Should fail with a lowercase template",
			`{"phrase1":{"template":"blank","word":"HEAD"}}`,
			true,
		},
		{
			"Should fail with upper case field names",
			`{"PHRASE1":{"TEMPLATE":"BLANK","Word":"HEAD"}}`,
			true,
		},
		{
			"Should fail with upper case phrase fields",
			`{"phrase1":{"Template":"BLANK","word":"HEAD"}}`,
			true,
		},
		{
			"Should treat null phrase2 and conjunction as absent",
			`{"phrase1":{"template":"BLANK","word":"HEAD"},"phrase2":null,"conjunction":null}`,
			false,
		},
		{"Should fail on nil", nil, true},
		{"Should fail on JSON null", json.RawMessage("null"), true},
		{"Should fail on a non object", `"BLANK HEAD"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			content, err := ValidateContent(tt.payload)
			if tt.wantErr {
				req.ErrorIs(err, errors.ErrInvalidContent)
				req.Equal(MessageContent{}, content)
				return
			}
			req.NoError(err)
			req.NotEmpty(content.Phrase1.Template)
		})
	}
}

func TestValidateContent_Normalizes(t *testing.T) {
	req := require.New(t)
	content, err := ValidateContent(json.RawMessage(
		`{"phrase1":{"template":"TRY_BLANK","word":"HEAD","extra":1},"phrase2":{"template":"BLANK_QUESTION","word":"HEAD"},"conjunction":"THEREFORE","extra":true}`))
	req.NoError(err)

	conjunction := Therefore
	req.Equal(MessageContent{
		Phrase1:     Phrase{Template: TryBlank, Word: Head},
		Phrase2:     &Phrase{Template: BlankQuestion, Word: Head},
		Conjunction: &conjunction,
	}, content)
	req.True(content.IsCompound())

	raw, err := json.Marshal(content)
	req.NoError(err)
	req.JSONEq(`{"phrase1":{"template":"TRY_BLANK","word":"HEAD"},"phrase2":{"template":"BLANK_QUESTION","word":"HEAD"},"conjunction":"THEREFORE"}`, string(raw))
}

func TestValidateContent_FieldNamesAreCaseSensitive(t *testing.T) {
	req := require.New(t)

	// Mis-cased compound fields are unknown fields, so only phrase1 survives.
	content, err := ValidateContent(`{"phrase1":{"template":"BLANK","word":"HEAD"},"Phrase2":{"template":"BLANK","word":"HEAD"},"CONJUNCTION":"OR"}`)
	req.NoError(err)
	req.Equal(MessageContent{Phrase1: Phrase{Template: Blank, Word: Head}}, content)
	req.False(content.IsCompound())

	_, err = ValidateContent(`{"phrase1":{"template":"BLANK","word":"HEAD"},"phrase2":{"template":"BLANK","word":"HEAD"},"CONJUNCTION":"OR"}`)
	req.ErrorIs(err, errors.ErrInvalidContent)
}

func TestMessageContent_String(t *testing.T) {
	req := require.New(t)

	single := MessageContent{Phrase1: Phrase{Template: BlankAhead, Word: Head}}
	req.Equal("head ahead", single.String())
	req.False(single.IsCompound())

	but := But
	compound := MessageContent{
		Phrase1:     Phrase{Template: TryBlank, Word: Head},
		Phrase2:     &Phrase{Template: BlankExclaim, Word: Head},
		Conjunction: &but,
	}
	req.Equal("Try head but head!", compound.String())

	comma := Comma
	compound.Conjunction = &comma
	req.Equal("Try head, head!", compound.String())
}
