package llm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// category names returned by enrichment
const (
	CategoryTechnology = "Технологии"
	CategorySports     = "Спорт"
	CategoryPolitics   = "Политика"
	CategoryEconomy    = "Экономика"
	CategoryScience    = "Наука"
	CategoryCulture    = "Культура"
	CategorySociety    = "Общество"
	CategoryHealth     = "Здоровье"
	CategoryEducation  = "Образование"
	CategoryTravel     = "Путешествия"
)

// DefaultCategory is used when nothing matches
const DefaultCategory = CategorySociety

// Categories is the list offered to the model, in prompt order
var Categories = []string{
	CategoryTechnology, CategorySports, CategoryPolitics, CategoryEconomy, CategoryScience,
	CategoryCulture, CategorySociety, CategoryHealth, CategoryEducation, CategoryTravel,
}

type keywordGroup struct {
	category  string
	stems     []string // matched anywhere in text
	wordStart []string // matched only at the start of a word, "кредит" should not match inside other words
}

// keywordGroups are checked in order, the first group with a match wins
var keywordGroups = []keywordGroup{
	{category: CategoryEconomy,
		stems: []string{"экономик", "финанс", "банк", "рубль", "доллар", "бизнес", "торговл", "инвестиц",
			"биржа", "валют", "инфляц", "центробанк", "облигац", "выручк", "дивиденд", "ипотек"},
		wordStart: []string{"акционер", "котировк", "кредит", "капитал", "прибыль"}},
	{category: CategoryPolitics,
		stems: []string{"политик", "выбор", "правительств", "президент", "министр", "парламент",
			"депутат", "санкц", "дипломат", "госдеп", "кремл", "белый дом", "конгресс", "сенат"}},
	{category: CategoryTechnology,
		stems: []string{"технолог", "программ", "компьютер", "софт", "it", "api", "интернет", "цифров",
			"разработ", "github", "python", "javascript", "нейросет", "искусственн", "алгоритм", "сервер",
			"процессор", "смартфон", "гаджет"}},
	{category: CategorySports,
		stems: []string{"спорт", "футбол", "хоккей", "олимпиад", "чемпионат", "матч", "тренер", "турнир"}},
	{category: CategoryScience,
		stems: []string{"наук", "исследован", "открыт", "ученые", "эксперимент", "лаборатор", "научн"}},
	{category: CategoryHealth,
		stems: []string{"здоровь", "медицин", "врач", "лечен", "болезн", "клиник", "вакцин", "пациент",
			"больниц", "терапи", "диагност"}},
	{category: CategoryCulture, stems: []string{"культур", "искусств", "театр", "кино", "музык", "выставк"}},
	{category: CategoryEducation, stems: []string{"образован", "школ", "университет", "студент", "учител", "экзамен"}},
	{category: CategoryTravel, stems: []string{"путешеств", "туризм", "отдых", "курорт", "экскурси"}},
}

// matchKeywords returns the category of the first keyword group found in text, text must be lower-cased
func matchKeywords(text string) string {
	for _, g := range keywordGroups {
		for _, kw := range g.stems {
			if containsKeyword(text, kw, false) {
				return g.category
			}
		}
		for _, kw := range g.wordStart {
			if containsKeyword(text, kw, true) {
				return g.category
			}
		}
	}
	return DefaultCategory
}

// containsKeyword matches keywords as substrings (stems). With atWordStart the match must begin a word.
// Short latin keywords must be whole words, "it" should not match "with" or "city"
func containsKeyword(text, kw string, atWordStart bool) bool {
	whole := isShortLatin(kw)
	if !whole && !atWordStart {
		return strings.Contains(text, kw)
	}
	for start := 0; start < len(text); {
		idx := strings.Index(text[start:], kw)
		if idx < 0 {
			return false
		}
		pos := start + idx
		end := pos + len(kw)
		before, _ := utf8.DecodeLastRuneInString(text[:pos])
		after, _ := utf8.DecodeRuneInString(text[end:])
		startOK := pos == 0 || !isWordRune(before)
		endOK := !whole || end == len(text) || !isWordRune(after)
		if startOK && endOK {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[pos:])
		start = pos + size
	}
	return false
}

func isShortLatin(kw string) bool {
	if len(kw) > 3 {
		return false
	}
	for _, r := range kw {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// categoryFromResponse picks a known category out of a free-form model answer.
// Substring match first, then prefix match of the first word, DefaultCategory otherwise.
func categoryFromResponse(resp string) string {
	lower := strings.ToLower(strings.TrimSpace(resp))
	for _, c := range Categories {
		if strings.Contains(lower, strings.ToLower(c)) {
			return c
		}
	}

	words := strings.Fields(lower)
	if len(words) == 0 {
		return DefaultCategory
	}
	first := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, words[0])
	if first == "" {
		return DefaultCategory
	}
	for _, c := range Categories {
		if strings.HasPrefix(strings.ToLower(c), first) {
			return c
		}
	}
	return DefaultCategory
}
