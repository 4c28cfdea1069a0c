package domain

import (
	"encoding/json"
	"fmt"

	"soapstone/errors"
)

// Phrase is a template with its blank filled by a word.
type Phrase struct {
	Template Template `json:"template" validate:"required,template"`
	Word     Word     `json:"word" validate:"required,word"`
}

func (p Phrase) String() string {
	return p.Template.Render(p.Word)
}

// MessageContent is either a single phrase or phrase, conjunction, phrase.
// Phrase2 and Conjunction are set together or not at all.
type MessageContent struct {
	Phrase1     Phrase       `json:"phrase1"`
	Phrase2     *Phrase      `json:"phrase2,omitempty"`
	Conjunction *Conjunction `json:"conjunction,omitempty"`
}

func (m MessageContent) IsCompound() bool {
	return m.Phrase2 != nil && m.Conjunction != nil
}

// String renders the message as a player would read it.
func (m MessageContent) String() string {
	if !m.IsCompound() {
		return m.Phrase1.String()
	}
	if *m.Conjunction == Comma {
		return fmt.Sprintf("%s, %s", m.Phrase1, m.Phrase2)
	}
	return fmt.Sprintf("%s %s %s", m.Phrase1, conjunctions[*m.Conjunction], m.Phrase2)
}

// ValidateContent checks an untyped payload against the message grammar and returns
// the normalized content. Field names match exactly and unknown fields are dropped.
// Every failure is ErrInvalidContent.
func ValidateContent(payload any) (MessageContent, error) {
	members, err := decodeObject(payload)
	if err != nil {
		return MessageContent{}, errors.ErrInvalidContent
	}

	var rawPhrase1, rawPhrase2 json.RawMessage
	var conjunction string
	hasPhrase1, err1 := member(members, "phrase1", &rawPhrase1)
	hasPhrase2, err2 := member(members, "phrase2", &rawPhrase2)
	hasConjunction, err3 := member(members, "conjunction", &conjunction)
	if err1 != nil || err2 != nil || err3 != nil {
		return MessageContent{}, errors.ErrInvalidContent
	}
	if !hasPhrase1 || hasPhrase2 != hasConjunction {
		return MessageContent{}, errors.ErrInvalidContent
	}

	phrase1, err := decodePhrase(rawPhrase1)
	if err != nil {
		return MessageContent{}, errors.ErrInvalidContent
	}
	content := MessageContent{Phrase1: phrase1}
	if !hasPhrase2 {
		return content, nil
	}

	phrase2, err := decodePhrase(rawPhrase2)
	if err != nil {
		return MessageContent{}, errors.ErrInvalidContent
	}
	if err = validate.Var(conjunction, "required,conjunction"); err != nil {
		return MessageContent{}, errors.ErrInvalidContent
	}
	c := Conjunction(conjunction)
	content.Phrase2 = &phrase2
	content.Conjunction = &c
	return content, nil
}

func decodePhrase(raw json.RawMessage) (Phrase, error) {
	members, err := decodeObject(raw)
	if err != nil {
		return Phrase{}, err
	}
	var p Phrase
	if _, err = member(members, "template", &p.Template); err != nil {
		return Phrase{}, err
	}
	if _, err = member(members, "word", &p.Word); err != nil {
		return Phrase{}, err
	}
	if err = validate.Struct(p); err != nil {
		return Phrase{}, err
	}
	return p, nil
}
