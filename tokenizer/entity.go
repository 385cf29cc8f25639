package tokenizer

// Entities maps a character reference name, including the leading '&' and,
// where the grammar requires one, the trailing ';', to the one or two code
// points it expands to. Lookups are pure; the table is never mutated by
// the tokenizer.
type Entities map[string][]rune

// legacyEntities are the names that remain valid without a trailing
// semicolon for compatibility with pre-standard markup. Both the bare and
// the semicolon form are installed into DefaultEntities.
var legacyEntities = map[string]rune{
	"AElig":  'Æ',
	"AMP":    '&',
	"Aacute": 'Á',
	"Acirc":  'Â',
	"Agrave": 'À',
	"Aring":  'Å',
	"Atilde": 'Ã',
	"Auml":   'Ä',
	"COPY":   '©',
	"Ccedil": 'Ç',
	"ETH":    'Ð',
	"Eacute": 'É',
	"Ecirc":  'Ê',
	"Egrave": 'È',
	"Euml":   'Ë',
	"GT":     '>',
	"Iacute": 'Í',
	"Icirc":  'Î',
	"Igrave": 'Ì',
	"Iuml":   'Ï',
	"LT":     '<',
	"Ntilde": 'Ñ',
	"Oacute": 'Ó',
	"Ocirc":  'Ô',
	"Ograve": 'Ò',
	"Oslash": 'Ø',
	"Otilde": 'Õ',
	"Ouml":   'Ö',
	"QUOT":   '"',
	"REG":    '®',
	"THORN":  'Þ',
	"Uacute": 'Ú',
	"Ucirc":  'Û',
	"Ugrave": 'Ù',
	"Uuml":   'Ü',
	"Yacute": 'Ý',
	"aacute": 'á',
	"acirc":  'â',
	"acute":  '´',
	"aelig":  'æ',
	"agrave": 'à',
	"amp":    '&',
	"aring":  'å',
	"atilde": 'ã',
	"auml":   'ä',
	"brvbar": '¦',
	"ccedil": 'ç',
	"cedil":  '¸',
	"cent":   '¢',
	"copy":   '©',
	"curren": '¤',
	"deg":    '°',
	"divide": '÷',
	"eacute": 'é',
	"ecirc":  'ê',
	"egrave": 'è',
	"eth":    'ð',
	"euml":   'ë',
	"frac12": '½',
	"frac14": '¼',
	"frac34": '¾',
	"gt":     '>',
	"iacute": 'í',
	"icirc":  'î',
	"iexcl":  '¡',
	"igrave": 'ì',
	"iquest": '¿',
	"iuml":   'ï',
	"laquo":  '«',
	"lt":     '<',
	"macr":   '¯',
	"micro":  'µ',
	"middot": '·',
	"nbsp":   '\u00a0',
	"not":    '¬',
	"ntilde": 'ñ',
	"oacute": 'ó',
	"ocirc":  'ô',
	"ograve": 'ò',
	"ordf":   'ª',
	"ordm":   'º',
	"oslash": 'ø',
	"otilde": 'õ',
	"ouml":   'ö',
	"para":   '¶',
	"plusmn": '±',
	"pound":  '£',
	"quot":   '"',
	"raquo":  '»',
	"reg":    '®',
	"sect":   '§',
	"shy":    '\u00ad',
	"sup1":   '¹',
	"sup2":   '²',
	"sup3":   '³',
	"szlig":  'ß',
	"thorn":  'þ',
	"times":  '×',
	"uacute": 'ú',
	"ucirc":  'û',
	"ugrave": 'ù',
	"uml":    '¨',
	"uuml":   'ü',
	"yacute": 'ý',
	"yen":    '¥',
	"yuml":   'ÿ',
}

// DefaultEntities is the built-in reference table: the full legacy
// no-semicolon set plus the common standard names. Callers with markup
// leaning on the long tail of the named references can supply the complete
// table through WithEntities; the lookup semantics do not change.
var DefaultEntities = Entities{
	"&Dagger;":        {'‡'},
	"&NotEqualTilde;": {'≂', '\u0338'},
	"&OElig;":         {'Œ'},
	"&Scaron;":        {'Š'},
	"&Yuml;":          {'Ÿ'},
	"&alpha;":         {'α'},
	"&and;":           {'∧'},
	"&ang;":           {'∠'},
	"&apos;":          {'\''},
	"&asymp;":         {'≈'},
	"&beta;":          {'β'},
	"&bull;":          {'•'},
	"&cap;":           {'∩'},
	"&circ;":          {'ˆ'},
	"&cong;":          {'≅'},
	"&cup;":           {'∪'},
	"&dagger;":        {'†'},
	"&darr;":          {'↓'},
	"&empty;":         {'∅'},
	"&emsp;":          {'\u2003'},
	"&ensp;":          {'\u2002'},
	"&equiv;":         {'≡'},
	"&euro;":          {'€'},
	"&exist;":         {'∃'},
	"&forall;":        {'∀'},
	"&gamma;":         {'γ'},
	"&ge;":            {'≥'},
	"&harr;":          {'↔'},
	"&hellip;":        {'…'},
	"&infin;":         {'∞'},
	"&int;":           {'∫'},
	"&isin;":          {'∈'},
	"&lambda;":        {'λ'},
	"&larr;":          {'←'},
	"&ldquo;":         {'“'},
	"&le;":            {'≤'},
	"&lowast;":        {'∗'},
	"&lrm;":           {'\u200e'},
	"&lsaquo;":        {'‹'},
	"&lsquo;":         {'‘'},
	"&mdash;":         {'—'},
	"&minus;":         {'−'},
	"&nabla;":         {'∇'},
	"&ndash;":         {'–'},
	"&ne;":            {'≠'},
	"&ni;":            {'∋'},
	"&notin;":         {'∉'},
	"&nsub;":          {'⊄'},
	"&oelig;":         {'œ'},
	"&oplus;":         {'⊕'},
	"&or;":            {'∨'},
	"&otimes;":        {'⊗'},
	"&part;":          {'∂'},
	"&permil;":        {'‰'},
	"&perp;":          {'⊥'},
	"&pi;":            {'π'},
	"&prod;":          {'∏'},
	"&prop;":          {'∝'},
	"&radic;":         {'√'},
	"&rarr;":          {'→'},
	"&rdquo;":         {'”'},
	"&rlm;":           {'\u200f'},
	"&rsaquo;":        {'›'},
	"&rsquo;":         {'’'},
	"&scaron;":        {'š'},
	"&sdot;":          {'⋅'},
	"&sim;":           {'∼'},
	"&sub;":           {'⊂'},
	"&sube;":          {'⊆'},
	"&sum;":           {'∑'},
	"&sup;":           {'⊃'},
	"&supe;":          {'⊇'},
	"&there4;":        {'∴'},
	"&thinsp;":        {'\u2009'},
	"&tilde;":         {'˜'},
	"&trade;":         {'™'},
	"&uarr;":          {'↑'},
	"&zwj;":           {'\u200d'},
	"&zwnj;":          {'\u200c'},
}

func init() {
	for name, r := range legacyEntities {
		DefaultEntities["&"+name] = []rune{r}
		DefaultEntities["&"+name+";"] = []rune{r}
	}
}

// entitySet is a reference table prepared for longest-prefix matching.
type entitySet struct {
	table Entities
	// maxLen is the longest name in the table, excluding the leading '&'.
	// Reference names are ASCII, so byte length equals rune length.
	maxLen int
}

func newEntitySet(table Entities) *entitySet {
	s := &entitySet{table: table}
	for name := range table {
		if l := len(name) - 1; l > s.maxLen {
			s.maxLen = l
		}
	}
	return s
}

// longestMatch finds the longest table entry whose name is a prefix of
// window, where window holds the code points immediately after the '&'.
// The returned name includes the leading '&'. Probing runs from the
// longest plausible name down, so among all entries that are prefixes of
// the input the longest one wins; a semicolon form beats its bare form
// whenever the semicolon is present in the input.
func (s *entitySet) longestMatch(window []rune) (string, []rune, bool) {
	max := len(window)
	if max > s.maxLen {
		max = s.maxLen
	}
	for l := max; l >= 1; l-- {
		name := "&" + string(window[:l])
		if expansion, ok := s.table[name]; ok {
			return name, expansion, true
		}
	}
	return "", nil, false
}
