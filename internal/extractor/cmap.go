package extractor

import (
	"encoding/hex"
	"regexp"
	"strings"
	"unicode/utf16"
)

// toUnicode maps font character codes, as uppercase hex, to text. It is
// built from every ToUnicode CMap in the file and lets the raw scan read
// hex strings shown with composite fonts.
type toUnicode struct {
	codes    map[string]string
	codeSize int // bytes per character code
}

var (
	bfCharBlockRe  = regexp.MustCompile(`(?s)beginbfchar\s*(.*?)\s*endbfchar`)
	bfRangeBlockRe = regexp.MustCompile(`(?s)beginbfrange\s*(.*?)\s*endbfrange`)
	hexTokenRe     = regexp.MustCompile(`<([0-9A-Fa-f]+)>`)
)

// findToUnicode merges the ToUnicode CMaps found in the raw file. It
// returns nil when there are none.
func findToUnicode(data []byte) *toUnicode {
	m := &toUnicode{codes: make(map[string]string)}
	for _, stream := range extractStreams(data) {
		content := string(tryDecompress(stream))
		if strings.Contains(content, "beginbfchar") || strings.Contains(content, "beginbfrange") {
			m.parse(content)
		}
	}
	if len(m.codes) == 0 {
		return nil
	}
	return m
}

func (m *toUnicode) add(code, text string) {
	if text == "" {
		return
	}
	code = strings.ToUpper(code)
	m.codes[code] = text
	if m.codeSize == 0 {
		m.codeSize = len(code) / 2
	}
}

func (m *toUnicode) parse(content string) {
	for _, block := range bfCharBlockRe.FindAllStringSubmatch(content, -1) {
		tokens := hexTokenRe.FindAllStringSubmatch(block[1], -1)
		for i := 0; i+1 < len(tokens); i += 2 {
			m.add(tokens[i][1], utf16Hex(tokens[i+1][1]))
		}
	}

	for _, block := range bfRangeBlockRe.FindAllStringSubmatch(content, -1) {
		for _, line := range strings.Split(block[1], "\n") {
			bracket := strings.Index(line, "[")
			head := line
			if bracket >= 0 {
				head = line[:bracket]
			}
			bounds := hexTokenRe.FindAllStringSubmatch(head, -1)
			if len(bounds) < 2 {
				continue
			}
			width := len(bounds[0][1])
			start, end := hexValue(bounds[0][1]), hexValue(bounds[1][1])
			if start < 0 || end < start {
				continue
			}

			if bracket >= 0 {
				// <start> <end> [<u1> <u2> ...]
				for i, u := range hexTokenRe.FindAllStringSubmatch(line[bracket:], -1) {
					m.add(hexCode(start+i, width), utf16Hex(u[1]))
				}
				continue
			}

			if len(bounds) < 3 {
				continue
			}
			dst := hexValue(bounds[2][1])
			if dst < 0 {
				continue
			}
			dstWidth := len(bounds[2][1])
			for code := start; code <= end; code++ {
				m.add(hexCode(code, width), utf16Hex(hexCode(dst+code-start, dstWidth)))
			}
		}
	}
}

// decode maps raw string bytes through the CMap. Codes without a mapping
// are dropped.
func (m *toUnicode) decode(raw string) string {
	size := m.codeSize
	if size < 1 {
		size = 1
	}
	var b strings.Builder
	for i := 0; i+size <= len(raw); i += size {
		if text, ok := m.codes[strings.ToUpper(hex.EncodeToString([]byte(raw[i:i+size])))]; ok {
			b.WriteString(text)
		}
	}
	return b.String()
}

func hexValue(h string) int {
	val := 0
	for _, c := range strings.ToUpper(h) {
		val <<= 4
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'A' && c <= 'F':
			val += int(c-'A') + 10
		default:
			return -1
		}
	}
	return val
}

func hexCode(val, width int) string {
	h := strings.ToUpper(hex.EncodeToString([]byte{byte(val >> 24), byte(val >> 16), byte(val >> 8), byte(val)}))
	if len(h) > width {
		return h[len(h)-width:]
	}
	return strings.Repeat("0", width-len(h)) + h
}

// utf16Hex decodes a UTF-16BE value written in hex.
func utf16Hex(h string) string {
	if len(h)%2 != 0 {
		h = "0" + h
	}
	data, err := hex.DecodeString(h)
	if err != nil {
		return ""
	}
	if len(data) == 1 {
		return string(rune(data[0]))
	}
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
	}
	return string(utf16.Decode(units))
}
