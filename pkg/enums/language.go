package enums

// Language selects a receipt display catalog.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageUrdu    Language = "ur"
)

// TextDirection is the rendering direction a display language requires.
type TextDirection string

const (
	DirectionLTR TextDirection = "ltr"
	DirectionRTL TextDirection = "rtl"
)

func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageUrdu
}

// Direction returns the text direction for the language. Urdu renders
// right-to-left; everything else defaults to left-to-right.
func (l Language) Direction() TextDirection {
	if l == LanguageUrdu {
		return DirectionRTL
	}
	return DirectionLTR
}
