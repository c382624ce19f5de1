package model

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// DefaultRelease is the UD release of the downloadable UDPipe models.
const DefaultRelease = "ud-2.5-191206"

// Model identifies the pretrained model of a language.
type Model struct {
	Lang string

	// Family is the UDPipe model name without the UD release suffix, e.g.
	// "english-ewt".
	Family string
}

// File returns the model file name for the given UD release.
func (m Model) File(release string) string {
	return fmt.Sprintf("%s-%s.udpipe", m.Family, release)
}

var catalog = map[string]string{
	"ar": "arabic-padt",
	"bg": "bulgarian-btb",
	"ca": "catalan-ancora",
	"cs": "czech-pdt",
	"da": "danish-ddt",
	"de": "german-gsd",
	"el": "greek-gdt",
	"en": "english-ewt",
	"es": "spanish-ancora",
	"et": "estonian-edt",
	"eu": "basque-bdt",
	"fa": "persian-seraji",
	"fi": "finnish-tdt",
	"fr": "french-gsd",
	"ga": "irish-idt",
	"gl": "galician-ctg",
	"he": "hebrew-htb",
	"hi": "hindi-hdtb",
	"hr": "croatian-set",
	"hu": "hungarian-szeged",
	"id": "indonesian-gsd",
	"it": "italian-isdt",
	"ja": "japanese-gsd",
	"ko": "korean-kaist",
	"la": "latin-ittb",
	"lt": "lithuanian-alksnis",
	"lv": "latvian-lvtb",
	"nb": "norwegian-bokmaal",
	"nl": "dutch-alpino",
	"pl": "polish-pdb",
	"pt": "portuguese-bosque",
	"ro": "romanian-rrt",
	"ru": "russian-syntagrus",
	"sk": "slovak-snk",
	"sl": "slovenian-ssj",
	"sr": "serbian-set",
	"sv": "swedish-talbanken",
	"tr": "turkish-imst",
	"uk": "ukrainian-iu",
	"vi": "vietnamese-vtb",
	"zh": "chinese-gsd",
}

// Lookup returns the model of a language code. Unknown codes return
// ErrUnsupportedLanguage.
func Lookup(lang string) (Model, error) {
	family, ok := catalog[lang]
	if !ok {
		return Model{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	return Model{Lang: lang, Family: family}, nil
}

// Languages returns the supported language codes, sorted.
func Languages() []string {
	langs := make([]string, 0, len(catalog))
	for l := range catalog {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}
