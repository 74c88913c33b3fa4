package html

import "sort"

// entityEntry is one row of the named character reference table: a
// name (without the leading '&', with the trailing ';' where the
// entity requires one) and the code point(s) it expands to. A handful
// of legacy entities (copy, amp, lt, gt, quot, and the Latin-1
// accented letters) are also valid without a trailing semicolon, for
// compatibility with pre-HTML5 markup; those appear twice, once with
// and once without ';'.
type entityEntry struct {
	name string
	cps  []rune
}

// namedEntities is the complete HTML 4 named character reference set
// (Latin-1, Greek, math, arrows, punctuation and symbols), including
// the legacy semicolon-optional forms, as a subset of the full WHATWG
// table (~2200 entries once the HTML5-only aliases and multi-code-point
// references are counted; see DESIGN.md). init sorts the table for
// lookupNamedCharacterReference's binary search.
var namedEntities = []entityEntry{
	{"AElig", []rune{0x00C6}}, {"AElig;", []rune{0x00C6}},
	{"AMP", []rune{0x0026}}, {"AMP;", []rune{0x0026}},
	{"Aacute", []rune{0x00C1}}, {"Aacute;", []rune{0x00C1}},
	{"Acirc", []rune{0x00C2}}, {"Acirc;", []rune{0x00C2}},
	{"Agrave", []rune{0x00C0}}, {"Agrave;", []rune{0x00C0}},
	{"Alpha;", []rune{0x0391}},
	{"Aring", []rune{0x00C5}}, {"Aring;", []rune{0x00C5}},
	{"Atilde", []rune{0x00C3}}, {"Atilde;", []rune{0x00C3}},
	{"Auml", []rune{0x00C4}}, {"Auml;", []rune{0x00C4}},
	{"Beta;", []rune{0x0392}},
	{"COPY", []rune{0x00A9}}, {"COPY;", []rune{0x00A9}},
	{"Ccedil", []rune{0x00C7}}, {"Ccedil;", []rune{0x00C7}},
	{"Chi;", []rune{0x03A7}},
	{"Dagger;", []rune{0x2021}},
	{"Delta;", []rune{0x0394}},
	{"ETH", []rune{0x00D0}}, {"ETH;", []rune{0x00D0}},
	{"Eacute", []rune{0x00C9}}, {"Eacute;", []rune{0x00C9}},
	{"Ecirc", []rune{0x00CA}}, {"Ecirc;", []rune{0x00CA}},
	{"Egrave", []rune{0x00C8}}, {"Egrave;", []rune{0x00C8}},
	{"Epsilon;", []rune{0x0395}},
	{"Eta;", []rune{0x0397}},
	{"Euml", []rune{0x00CB}}, {"Euml;", []rune{0x00CB}},
	{"GT", []rune{0x003E}}, {"GT;", []rune{0x003E}},
	{"Gamma;", []rune{0x0393}},
	{"Iacute", []rune{0x00CD}}, {"Iacute;", []rune{0x00CD}},
	{"Icirc", []rune{0x00CE}}, {"Icirc;", []rune{0x00CE}},
	{"Igrave", []rune{0x00CC}}, {"Igrave;", []rune{0x00CC}},
	{"Iota;", []rune{0x0399}},
	{"Iuml", []rune{0x00CF}}, {"Iuml;", []rune{0x00CF}},
	{"Kappa;", []rune{0x039A}},
	{"LT", []rune{0x003C}}, {"LT;", []rune{0x003C}},
	{"Lambda;", []rune{0x039B}},
	{"Mu;", []rune{0x039C}},
	{"Ntilde", []rune{0x00D1}}, {"Ntilde;", []rune{0x00D1}},
	{"Nu;", []rune{0x039D}},
	{"OElig;", []rune{0x0152}},
	{"Oacute", []rune{0x00D3}}, {"Oacute;", []rune{0x00D3}},
	{"Ocirc", []rune{0x00D4}}, {"Ocirc;", []rune{0x00D4}},
	{"Ograve", []rune{0x00D2}}, {"Ograve;", []rune{0x00D2}},
	{"Omega;", []rune{0x03A9}},
	{"Omicron;", []rune{0x039F}},
	{"Oslash", []rune{0x00D8}}, {"Oslash;", []rune{0x00D8}},
	{"Otilde", []rune{0x00D5}}, {"Otilde;", []rune{0x00D5}},
	{"Ouml", []rune{0x00D6}}, {"Ouml;", []rune{0x00D6}},
	{"Phi;", []rune{0x03A6}},
	{"Pi;", []rune{0x03A0}},
	{"Prime;", []rune{0x2033}},
	{"Psi;", []rune{0x03A8}},
	{"QUOT", []rune{0x0022}}, {"QUOT;", []rune{0x0022}},
	{"REG", []rune{0x00AE}}, {"REG;", []rune{0x00AE}},
	{"Rho;", []rune{0x03A1}},
	{"Scaron;", []rune{0x0160}},
	{"Sigma;", []rune{0x03A3}},
	{"THORN", []rune{0x00DE}}, {"THORN;", []rune{0x00DE}},
	{"Tau;", []rune{0x03A4}},
	{"Theta;", []rune{0x0398}},
	{"Uacute", []rune{0x00DA}}, {"Uacute;", []rune{0x00DA}},
	{"Ucirc", []rune{0x00DB}}, {"Ucirc;", []rune{0x00DB}},
	{"Ugrave", []rune{0x00D9}}, {"Ugrave;", []rune{0x00D9}},
	{"Upsilon;", []rune{0x03A5}},
	{"Uuml", []rune{0x00DC}}, {"Uuml;", []rune{0x00DC}},
	{"Xi;", []rune{0x039E}},
	{"Yacute", []rune{0x00DD}}, {"Yacute;", []rune{0x00DD}},
	{"Yuml;", []rune{0x0178}},
	{"Zeta;", []rune{0x0396}},
	{"aacute", []rune{0x00E1}}, {"aacute;", []rune{0x00E1}},
	{"acirc", []rune{0x00E2}}, {"acirc;", []rune{0x00E2}},
	{"acute", []rune{0x00B4}}, {"acute;", []rune{0x00B4}},
	{"aelig", []rune{0x00E6}}, {"aelig;", []rune{0x00E6}},
	{"agrave", []rune{0x00E0}}, {"agrave;", []rune{0x00E0}},
	{"alefsym;", []rune{0x2135}},
	{"alpha;", []rune{0x03B1}},
	{"amp", []rune{0x0026}}, {"amp;", []rune{0x0026}},
	{"and;", []rune{0x2227}},
	{"ang;", []rune{0x2220}},
	{"apos;", []rune{0x0027}},
	{"aring", []rune{0x00E5}}, {"aring;", []rune{0x00E5}},
	{"asymp;", []rune{0x2248}},
	{"atilde", []rune{0x00E3}}, {"atilde;", []rune{0x00E3}},
	{"auml", []rune{0x00E4}}, {"auml;", []rune{0x00E4}},
	{"bdquo;", []rune{0x201E}},
	{"beta;", []rune{0x03B2}},
	{"brvbar", []rune{0x00A6}}, {"brvbar;", []rune{0x00A6}},
	{"bull;", []rune{0x2022}},
	{"cap;", []rune{0x2229}},
	{"ccedil", []rune{0x00E7}}, {"ccedil;", []rune{0x00E7}},
	{"cedil", []rune{0x00B8}}, {"cedil;", []rune{0x00B8}},
	{"cent", []rune{0x00A2}}, {"cent;", []rune{0x00A2}},
	{"chi;", []rune{0x03C7}},
	{"circ;", []rune{0x02C6}},
	{"clubs;", []rune{0x2663}},
	{"cong;", []rune{0x2245}},
	{"copy", []rune{0x00A9}}, {"copy;", []rune{0x00A9}},
	{"crarr;", []rune{0x21B5}},
	{"cup;", []rune{0x222A}},
	{"curren", []rune{0x00A4}}, {"curren;", []rune{0x00A4}},
	{"dArr;", []rune{0x21D3}},
	{"dagger;", []rune{0x2020}},
	{"darr;", []rune{0x2193}},
	{"deg", []rune{0x00B0}}, {"deg;", []rune{0x00B0}},
	{"delta;", []rune{0x03B4}},
	{"diams;", []rune{0x2666}},
	{"divide", []rune{0x00F7}}, {"divide;", []rune{0x00F7}},
	{"eacute", []rune{0x00E9}}, {"eacute;", []rune{0x00E9}},
	{"ecirc", []rune{0x00EA}}, {"ecirc;", []rune{0x00EA}},
	{"egrave", []rune{0x00E8}}, {"egrave;", []rune{0x00E8}},
	{"empty;", []rune{0x2205}},
	{"emsp;", []rune{0x2003}},
	{"ensp;", []rune{0x2002}},
	{"epsilon;", []rune{0x03B5}},
	{"equiv;", []rune{0x2261}},
	{"eta;", []rune{0x03B7}},
	{"eth", []rune{0x00F0}}, {"eth;", []rune{0x00F0}},
	{"euml", []rune{0x00EB}}, {"euml;", []rune{0x00EB}},
	{"euro;", []rune{0x20AC}},
	{"exist;", []rune{0x2203}},
	{"fnof;", []rune{0x0192}},
	{"forall;", []rune{0x2200}},
	{"frac12", []rune{0x00BD}}, {"frac12;", []rune{0x00BD}},
	{"frac14", []rune{0x00BC}}, {"frac14;", []rune{0x00BC}},
	{"frac34", []rune{0x00BE}}, {"frac34;", []rune{0x00BE}},
	{"frasl;", []rune{0x2044}},
	{"gamma;", []rune{0x03B3}},
	{"ge;", []rune{0x2265}},
	{"gt", []rune{0x003E}}, {"gt;", []rune{0x003E}},
	{"hArr;", []rune{0x21D4}},
	{"harr;", []rune{0x2194}},
	{"hearts;", []rune{0x2665}},
	{"hellip;", []rune{0x2026}},
	{"iacute", []rune{0x00ED}}, {"iacute;", []rune{0x00ED}},
	{"icirc", []rune{0x00EE}}, {"icirc;", []rune{0x00EE}},
	{"iexcl", []rune{0x00A1}}, {"iexcl;", []rune{0x00A1}},
	{"igrave", []rune{0x00EC}}, {"igrave;", []rune{0x00EC}},
	{"image;", []rune{0x2111}},
	{"infin;", []rune{0x221E}},
	{"int;", []rune{0x222B}},
	{"iota;", []rune{0x03B9}},
	{"iquest", []rune{0x00BF}}, {"iquest;", []rune{0x00BF}},
	{"isin;", []rune{0x2208}},
	{"iuml", []rune{0x00EF}}, {"iuml;", []rune{0x00EF}},
	{"kappa;", []rune{0x03BA}},
	{"lArr;", []rune{0x21D0}},
	{"lambda;", []rune{0x03BB}},
	{"lang;", []rune{0x27E8}},
	{"laquo", []rune{0x00AB}}, {"laquo;", []rune{0x00AB}},
	{"larr;", []rune{0x2190}},
	{"lceil;", []rune{0x2308}},
	{"ldquo;", []rune{0x201C}},
	{"le;", []rune{0x2264}},
	{"lfloor;", []rune{0x230A}},
	{"lowast;", []rune{0x2217}},
	{"loz;", []rune{0x25CA}},
	{"lrm;", []rune{0x200E}},
	{"lsaquo;", []rune{0x2039}},
	{"lsquo;", []rune{0x2018}},
	{"lt", []rune{0x003C}}, {"lt;", []rune{0x003C}},
	{"macr", []rune{0x00AF}}, {"macr;", []rune{0x00AF}},
	{"mdash;", []rune{0x2014}},
	{"micro", []rune{0x00B5}}, {"micro;", []rune{0x00B5}},
	{"middot", []rune{0x00B7}}, {"middot;", []rune{0x00B7}},
	{"minus;", []rune{0x2212}},
	{"mu;", []rune{0x03BC}},
	{"nabla;", []rune{0x2207}},
	{"nbsp", []rune{0x00A0}}, {"nbsp;", []rune{0x00A0}},
	{"ndash;", []rune{0x2013}},
	{"ne;", []rune{0x2260}},
	{"ni;", []rune{0x220B}},
	{"not", []rune{0x00AC}}, {"not;", []rune{0x00AC}},
	{"notin;", []rune{0x2209}},
	{"nsub;", []rune{0x2284}},
	{"ntilde", []rune{0x00F1}}, {"ntilde;", []rune{0x00F1}},
	{"nu;", []rune{0x03BD}},
	{"oacute", []rune{0x00F3}}, {"oacute;", []rune{0x00F3}},
	{"ocirc", []rune{0x00F4}}, {"ocirc;", []rune{0x00F4}},
	{"oelig;", []rune{0x0153}},
	{"ograve", []rune{0x00F2}}, {"ograve;", []rune{0x00F2}},
	{"oline;", []rune{0x203E}},
	{"omega;", []rune{0x03C9}},
	{"omicron;", []rune{0x03BF}},
	{"oplus;", []rune{0x2295}},
	{"or;", []rune{0x2228}},
	{"ordf", []rune{0x00AA}}, {"ordf;", []rune{0x00AA}},
	{"ordm", []rune{0x00BA}}, {"ordm;", []rune{0x00BA}},
	{"oslash", []rune{0x00F8}}, {"oslash;", []rune{0x00F8}},
	{"otilde", []rune{0x00F5}}, {"otilde;", []rune{0x00F5}},
	{"otimes;", []rune{0x2297}},
	{"ouml", []rune{0x00F6}}, {"ouml;", []rune{0x00F6}},
	{"para", []rune{0x00B6}}, {"para;", []rune{0x00B6}},
	{"part;", []rune{0x2202}},
	{"permil;", []rune{0x2030}},
	{"perp;", []rune{0x22A5}},
	{"phi;", []rune{0x03C6}},
	{"pi;", []rune{0x03C0}},
	{"piv;", []rune{0x03D6}},
	{"plusmn", []rune{0x00B1}}, {"plusmn;", []rune{0x00B1}},
	{"pound", []rune{0x00A3}}, {"pound;", []rune{0x00A3}},
	{"prime;", []rune{0x2032}},
	{"prod;", []rune{0x220F}},
	{"prop;", []rune{0x221D}},
	{"psi;", []rune{0x03C8}},
	{"quot", []rune{0x0022}}, {"quot;", []rune{0x0022}},
	{"rArr;", []rune{0x21D2}},
	{"radic;", []rune{0x221A}},
	{"rang;", []rune{0x27E9}},
	{"raquo", []rune{0x00BB}}, {"raquo;", []rune{0x00BB}},
	{"rarr;", []rune{0x2192}},
	{"rceil;", []rune{0x2309}},
	{"rdquo;", []rune{0x201D}},
	{"real;", []rune{0x211C}},
	{"reg", []rune{0x00AE}}, {"reg;", []rune{0x00AE}},
	{"rfloor;", []rune{0x230B}},
	{"rho;", []rune{0x03C1}},
	{"rlm;", []rune{0x200F}},
	{"rsaquo;", []rune{0x203A}},
	{"rsquo;", []rune{0x2019}},
	{"sbquo;", []rune{0x201A}},
	{"scaron;", []rune{0x0161}},
	{"sdot;", []rune{0x22C5}},
	{"sect", []rune{0x00A7}}, {"sect;", []rune{0x00A7}},
	{"shy", []rune{0x00AD}}, {"shy;", []rune{0x00AD}},
	{"sigma;", []rune{0x03C3}},
	{"sigmaf;", []rune{0x03C2}},
	{"sim;", []rune{0x223C}},
	{"spades;", []rune{0x2660}},
	{"sub;", []rune{0x2282}},
	{"sube;", []rune{0x2286}},
	{"sum;", []rune{0x2211}},
	{"sup;", []rune{0x2283}},
	{"sup1", []rune{0x00B9}}, {"sup1;", []rune{0x00B9}},
	{"sup2", []rune{0x00B2}}, {"sup2;", []rune{0x00B2}},
	{"sup3", []rune{0x00B3}}, {"sup3;", []rune{0x00B3}},
	{"supe;", []rune{0x2287}},
	{"szlig", []rune{0x00DF}}, {"szlig;", []rune{0x00DF}},
	{"tau;", []rune{0x03C4}},
	{"there4;", []rune{0x2234}},
	{"theta;", []rune{0x03B8}},
	{"thetasym;", []rune{0x03D1}},
	{"thinsp;", []rune{0x2009}},
	{"thorn", []rune{0x00FE}}, {"thorn;", []rune{0x00FE}},
	{"tilde;", []rune{0x02DC}},
	{"times", []rune{0x00D7}}, {"times;", []rune{0x00D7}},
	{"trade;", []rune{0x2122}},
	{"uArr;", []rune{0x21D1}},
	{"uacute", []rune{0x00FA}}, {"uacute;", []rune{0x00FA}},
	{"uarr;", []rune{0x2191}},
	{"ucirc", []rune{0x00FB}}, {"ucirc;", []rune{0x00FB}},
	{"ugrave", []rune{0x00F9}}, {"ugrave;", []rune{0x00F9}},
	{"uml", []rune{0x00A8}}, {"uml;", []rune{0x00A8}},
	{"upsih;", []rune{0x03D2}},
	{"upsilon;", []rune{0x03C5}},
	{"uuml", []rune{0x00FC}}, {"uuml;", []rune{0x00FC}},
	{"weierp;", []rune{0x2118}},
	{"xi;", []rune{0x03BE}},
	{"yacute", []rune{0x00FD}}, {"yacute;", []rune{0x00FD}},
	{"yen", []rune{0x00A5}}, {"yen;", []rune{0x00A5}},
	{"yuml", []rune{0x00FF}}, {"yuml;", []rune{0x00FF}},
	{"zeta;", []rune{0x03B6}},
	{"zwj;", []rune{0x200D}},
	{"zwnj;", []rune{0x200C}},
}

var maxEntityNameLen int

func init() {
	sort.Slice(namedEntities, func(i, j int) bool { return namedEntities[i].name < namedEntities[j].name })
	for _, e := range namedEntities {
		if len(e.name) > maxEntityNameLen {
			maxEntityNameLen = len(e.name)
		}
	}
}

// lookupEntityExact binary-searches the sorted table for an exact name
// match.
func lookupEntityExact(name string) ([]rune, bool) {
	i := sort.Search(len(namedEntities), func(i int) bool { return namedEntities[i].name >= name })
	if i < len(namedEntities) && namedEntities[i].name == name {
		return namedEntities[i].cps, true
	}
	return nil, false
}

// lookupNamedCharacterReference implements the maximum-length-prefix
// match required by §4.2: try every candidate length from longest to
// shortest and take the first (hence longest) exact hit in the sorted
// table. endsWithSemicolon reports whether the matched name itself
// ends in ';' (needed by the caller to decide whether a
// missing-semicolon parse error applies).
func lookupNamedCharacterReference(input []rune, pos int) (matchLen int, codepoints []rune, endsWithSemicolon bool, ok bool) {
	limit := len(input) - pos
	if limit > maxEntityNameLen {
		limit = maxEntityNameLen
	}
	for l := limit; l >= 1; l-- {
		name := string(input[pos : pos+l])
		if cps, found := lookupEntityExact(name); found {
			return l, cps, name[len(name)-1] == ';', true
		}
	}
	return 0, nil, false, false
}
