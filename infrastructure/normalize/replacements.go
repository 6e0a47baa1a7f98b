package normalize

// DefaultReplacements returns the Spanish domain replacement table.
//
// The table serves two jobs: expanding abbreviations into their spoken form
// ("tb" -> "terabyte") and re-merging brand names that the letter/digit
// separation pass may have split. Order matters: the "1 tb".."4 tb" entries
// must precede the bare "tb" entry, and "f a" must precede "fa", because
// entries are applied sequentially and the first applicable key wins the
// rewrite of its span.
func DefaultReplacements() []Replacement {
	return []Replacement{
		// Storage capacities.
		{From: "1 tb", To: "un terabyte"},
		{From: "2 tb", To: "dos terabyte"},
		{From: "3 tb", To: "tres terabyte"},
		{From: "4 tb", To: "cuatro terabyte"},
		{From: "tb", To: "terabyte"},

		// Processor models.
		{From: "i 7", To: "i siete"},
		{From: "i 5", To: "i cinco"},
		{From: "i 3", To: "i tres"},

		// Paper formats.
		{From: "a 4", To: "a cuatro"},

		// Product models.
		{From: "xg", To: "equis ge"},

		// Invoice code prefixes.
		{From: "f a", To: "efe a"},
		{From: "fa", To: "efe a"},

		// Brand names the separation pass would otherwise leave fused.
		{From: "compufacil", To: "compu facil"},
		{From: "compufácil", To: "compu facil"},
		{From: "andinacorp", To: "andina corp"},
		{From: "duradisco", To: "dura disco"},
	}
}

// DefaultMasculineNouns returns the nouns that pull a preceding "uno" down
// to "un". The numeral pass spells digits without knowing the following
// noun, so the agreement fix runs afterwards.
func DefaultMasculineNouns() []string {
	return []string{"terabyte", "gigabyte", "megabyte"}
}
