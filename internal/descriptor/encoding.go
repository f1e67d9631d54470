package descriptor

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultEncoding is used when a descriptor declares none.
const DefaultEncoding = "UTF-8"

// maxDeclScan limits how far into the text the XML declaration is searched.
const maxDeclScan = 1024

var xmlDeclEncoding = regexp.MustCompile(`<\?xml .*encoding\s*=\s*["']([^"']+)["'].*\?>`)

// DetectEncoding returns the encoding named by an XML declaration near the
// start of text, or DefaultEncoding when there is none.
func DetectEncoding(text string) string {
	head := text
	if len(head) > maxDeclScan {
		head = head[:maxDeclScan]
	}
	if m := xmlDeclEncoding.FindStringSubmatch(head); m != nil {
		return m[1]
	}
	return DefaultEncoding
}

// SameEncoding compares charset names the way the descriptor step does:
// case-insensitively.
func SameEncoding(a, b string) bool {
	return strings.EqualFold(a, b)
}

// javaCharsets maps Java charset names that are not IANA aliases to their
// IANA equivalents. Keys are lower case.
var javaCharsets = map[string]string{
	"ascii":                 "US-ASCII",
	"utf_8":                 "UTF-8",
	"utf_16":                "UTF-16",
	"utf_16be":              "UTF-16BE",
	"utf_16le":              "UTF-16LE",
	"unicodebig":            "UTF-16",
	"unicodebigunmarked":    "UTF-16BE",
	"unicodelittleunmarked": "UTF-16LE",
	"iso8859_1":             "ISO-8859-1",
	"iso8859_2":             "ISO-8859-2",
	"iso8859_3":             "ISO-8859-3",
	"iso8859_4":             "ISO-8859-4",
	"iso8859_5":             "ISO-8859-5",
	"iso8859_6":             "ISO-8859-6",
	"iso8859_7":             "ISO-8859-7",
	"iso8859_8":             "ISO-8859-8",
	"iso8859_9":             "ISO-8859-9",
	"iso8859_13":            "ISO-8859-13",
	"iso8859_15":            "ISO-8859-15",
	"cp1250":                "windows-1250",
	"cp1251":                "windows-1251",
	"cp1252":                "windows-1252",
	"cp1253":                "windows-1253",
	"cp1254":                "windows-1254",
	"cp1255":                "windows-1255",
	"cp1256":                "windows-1256",
	"cp1257":                "windows-1257",
	"cp1258":                "windows-1258",
	"cp437":                 "IBM437",
	"cp850":                 "IBM850",
	"cp852":                 "IBM852",
	"cp866":                 "IBM866",
	"koi8_r":                "KOI8-R",
	"koi8_u":                "KOI8-U",
	"sjis":                  "Shift_JIS",
	"euc_jp":                "EUC-JP",
	"euc_kr":                "EUC-KR",
	"iso2022jp":             "ISO-2022-JP",
}

// canonicalCharset returns the IANA name for a Java charset alias, or name
// unchanged.
func canonicalCharset(name string) string {
	name = strings.TrimSpace(name)
	if iana, ok := javaCharsets[strings.ToLower(name)]; ok {
		return iana
	}
	return name
}

// lookup resolves a charset name: Java aliases first, then the IANA
// registry, then WHATWG labels. UTF-8 resolves to nil, meaning the bytes
// are used as-is.
func lookup(name string) (encoding.Encoding, error) {
	name = canonicalCharset(name)
	if isUTF8(name) {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		if html, htmlErr := htmlindex.Get(name); htmlErr == nil {
			return html, nil
		}
		return nil, err
	}
	if enc == nil {
		return nil, errors.New("no decoder available")
	}
	return enc, nil
}

// decode converts raw bytes in the named charset to a string.
func decode(raw []byte, name string) (string, error) {
	enc, err := lookup(name)
	if err != nil {
		return "", err
	}
	if enc == nil {
		return string(raw), nil
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// encode converts text to the named charset. Characters the charset cannot
// represent are replaced rather than failing the write.
func encode(text, name string) ([]byte, error) {
	enc, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return []byte(text), nil
	}
	return encoding.ReplaceUnsupported(enc.NewEncoder()).Bytes([]byte(text))
}
