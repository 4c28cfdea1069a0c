package domain

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Template is one of the fixed sentence shapes a phrase can take.
type Template string

// Word fills the blank of a Template.
type Word string

// Conjunction joins the two phrases of a compound message.
type Conjunction string

const (
	BlankAhead         Template = "BLANK_AHEAD"
	NoBlankAhead       Template = "NO_BLANK_AHEAD"
	BlankRequiredAhead Template = "BLANK_REQUIRED_AHEAD"
	BeWaryOfBlank      Template = "BE_WARY_OF_BLANK"
	TryBlank           Template = "TRY_BLANK"
	CouldThisBeABlank  Template = "COULD_THIS_BE_A_BLANK"
	IfOnlyIHadABlank   Template = "IF_ONLY_I_HAD_A_BLANK"
	VisionsOfBlank     Template = "VISIONS_OF_BLANK"
	TimeForBlank       Template = "TIME_FOR_BLANK"
	Blank              Template = "BLANK"
	BlankExclaim       Template = "BLANK_EXCLAIM"
	BlankQuestion      Template = "BLANK_QUESTION"
	BlankElipsis       Template = "BLANK_ELIPSIS"
	HuhItsABlank       Template = "HUH_ITS_A_BLANK"
	PraiseTheBlank     Template = "PRAISE_THE_BLANK"
	LetThereBeBlank    Template = "LET_THERE_BE_BLANK"
	AhhBlank           Template = "AHH_BLANK"
)

const (
	Head Word = "HEAD"
)

const (
	AndThen    Conjunction = "AND_THEN"
	But        Conjunction = "BUT"
	Therefore  Conjunction = "THEREFORE"
	InShort    Conjunction = "IN_SHORT"
	Or         Conjunction = "OR"
	Only       Conjunction = "ONLY"
	ByTheWay   Conjunction = "BY_THE_WAY"
	SoToSpeak  Conjunction = "SO_TO_SPEAK"
	AllTheMore Conjunction = "ALL_THE_MORE"
	Comma      Conjunction = "COMMA"
)

// Each vocabulary maps a member to its rendered text. Membership in these maps is the
// only definition of a valid value.
var (
	templates = map[Template]string{
		BlankAhead:         "%s ahead",
		NoBlankAhead:       "No %s ahead",
		BlankRequiredAhead: "%s required ahead",
		BeWaryOfBlank:      "Be wary of %s",
		TryBlank:           "Try %s",
		CouldThisBeABlank:  "Could this be a %s?",
		IfOnlyIHadABlank:   "If only I had a %s...",
		VisionsOfBlank:     "Visions of %s...",
		TimeForBlank:       "Time for %s",
		Blank:              "%s",
		BlankExclaim:       "%s!",
		BlankQuestion:      "%s?",
		BlankElipsis:       "%s...",
		HuhItsABlank:       "Huh. It's a %s...",
		PraiseTheBlank:     "Praise the %s!",
		LetThereBeBlank:    "Let there be %s",
		AhhBlank:           "Ahh, %s...",
	}

	words = map[Word]string{
		Head: "head",
	}

	conjunctions = map[Conjunction]string{
		AndThen:    "and then",
		But:        "but",
		Therefore:  "therefore",
		InShort:    "in short",
		Or:         "or",
		Only:       "only",
		ByTheWay:   "by the way",
		SoToSpeak:  "so to speak",
		AllTheMore: "all the more",
		Comma:      ",",
	}
)

func (t Template) IsValid() bool {
	_, ok := templates[t]
	return ok
}

func (w Word) IsValid() bool {
	_, ok := words[w]
	return ok
}

func (c Conjunction) IsValid() bool {
	_, ok := conjunctions[c]
	return ok
}

// Render fills the template blank with the word text.
func (t Template) Render(w Word) string {
	return fmt.Sprintf(templates[t], words[w])
}

// Templates lists every template, sorted for stable output.
func Templates() []Template {
	return sorted(lo.Keys(templates))
}

func Words() []Word {
	return sorted(lo.Keys(words))
}

func Conjunctions() []Conjunction {
	return sorted(lo.Keys(conjunctions))
}

func sorted[T ~string](values []T) []T {
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}
