package wikitext

// I18n sets are process-wide read-only tables, initialised once and
// never mutated, consumed by the scanner, the builder and the
// disambiguation check. Keeping them as plain package vars (rather
// than late-bound singletons) matches spec.md §9's design note and
// keeps them trivially testable.

// fileNamespaces holds the lowercased File-namespace prefixes that
// classify a [[Prefix:...]] construct as a FileLink.
var fileNamespaces = map[string]bool{
	"file": true, "image": true,
	"fichier": true, "archivo": true, "datei": true, "bestand": true,
	"bild": true, "plik": true, "файл": true, "ファイル": true,
	"文件": true, "檔案": true, "תמונה": true, "ملف": true, "تصویر": true,
}

// categoryNamespaces holds the lowercased Category-namespace prefixes.
var categoryNamespaces = map[string]bool{
	"category": true, "categoria": true, "categoría": true,
	"catégorie": true, "kategorie": true, "kategori": true,
	"категория": true, "تصنيف": true, "分类": true,
}

// redirectWords are the case-insensitive #REDIRECT synonyms recognised
// at the very start of input.
var redirectWords = []string{
	"redirect", "weiterleitung", "redirection", "redirección",
	"перенаправление", "تحويل", "重定向",
}

// abbreviations is the sentence-splitter's fixed abbreviation set.
var abbreviations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "prof": true,
	"sr": true, "jr": true, "vs": true, "etc": true, "esp": true,
	"eg": true, "ie": true, "inc": true, "ltd": true, "co": true,
	"corp": true, "st": true, "mt": true, "ft": true, "gen": true,
	"gov": true, "jan": true, "feb": true, "mar": true, "apr": true,
	"jun": true, "jul": true, "aug": true, "sep": true, "oct": true,
	"nov": true, "dec": true, "no": true, "vol": true, "pp": true,
	"ca": true,
}

// disambiguationTitleSuffixes are i18n title-suffix markers that flag a
// page as a disambiguation page regardless of template usage.
var disambiguationTitleSuffixes = []string{
	"(disambiguation)", "(Begriffsklärung)", "(homonymie)",
	"(desambiguación)", "(disambigua)",
}

var disambiguationTemplateNames = map[string]bool{
	"disambiguation": true, "disambig": true, "dab": true, "dp": true,
	"geodis": true, "hndis": true,
	"letter-number combination disambiguation": true,
	"bisongidila":                              true,
	"begriffsklärung":                          true,
	"homonymie":                                true,
	"desambiguación":                           true,
}

// monthNames renders a 1-based month number per spec.md §4.1.2's
// "MonthName D, YYYY" date templates.
var monthNames = [...]string{
	"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// currencySymbols maps a normalised currency template name to its
// rendered symbol/prefix, per spec.md §4.1.2's currency table.
var currencySymbols = map[string]string{
	"us$": "US$", "usd": "US$", "us dollar": "US$", "us dollars": "US$",
	"gbp": "£", "£": "£", "pound sterling": "£",
	"eur": "€", "€": "€", "euro": "€",
	"¥": "¥", "japanese yen": "¥", "yen": "¥",
	"inr": "₹", "rupee": "₹",
	"rub": "₽",
	"aud": "A$",
	"cad": "C$",
	"chf": "CHF",
	"hkd": "HK$",
	"sgd": "S$",
	"nzd": "NZ$",
	"krw": "₩",
	"mxn": "MX$",
	"brl": "R$",
	"zar": "R",
}
