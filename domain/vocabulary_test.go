package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVocabulary(t *testing.T) {
	req := require.New(t)

	req.Len(Templates(), 17)
	req.Equal([]Word{Head}, Words())
	req.Len(Conjunctions(), 10)

	req.True(PraiseTheBlank.IsValid())
	req.False(Template("PRAISE_THE_SUN").IsValid())
	req.True(Head.IsValid())
	req.False(Word("head").IsValid())
	req.True(Comma.IsValid())
	req.False(Conjunction("").IsValid())
}

func TestTemplate_Render(t *testing.T) {
	req := require.New(t)
	req.Equal("Praise the head!", PraiseTheBlank.Render(Head))
	req.Equal("Could this be a head?", CouldThisBeABlank.Render(Head))
	req.Equal("Huh. It's a head...", HuhItsABlank.Render(Head))
}
