package extractor

import (
	"bytes"
	"compress/zlib"
	"encoding/hex"
	"io"
	"strconv"
	"strings"
	"unicode/utf16"
)

// extractRaw is the fallback for files the structured reader rejects, such
// as those with a damaged cross-reference table. It finds every
// stream...endstream block, inflates it when it is compressed and runs the
// text operators it contains through the same cursor.
func extractRaw(data []byte) []Token {
	var tokens []Token
	c := &cursor{emit: func(t Token) { tokens = append(tokens, t) }}
	cmap := findToUnicode(data)

	for _, stream := range extractStreams(data) {
		content := tryDecompress(stream)
		if !bytes.Contains(content, []byte("BT")) || !bytes.Contains(content, []byte("Tj")) {
			continue
		}
		c.reset()
		scanContent(content, cmap, c)
	}
	return tokens
}

// extractStreams finds all stream...endstream blocks in the PDF.
func extractStreams(data []byte) [][]byte {
	var streams [][]byte
	streamMarker := []byte("stream")
	endMarker := []byte("endstream")

	offset := 0
	for offset < len(data) {
		idx := bytes.Index(data[offset:], streamMarker)
		if idx < 0 {
			break
		}
		start := offset + idx + len(streamMarker)

		// Skip \r\n or \n after "stream"
		if start < len(data) && data[start] == '\r' {
			start++
		}
		if start < len(data) && data[start] == '\n' {
			start++
		}

		endIdx := bytes.Index(data[start:], endMarker)
		if endIdx < 0 {
			break
		}

		if streamData := data[start : start+endIdx]; len(streamData) > 0 {
			streams = append(streams, streamData)
		}
		offset = start + endIdx + len(endMarker)
	}
	return streams
}

// tryDecompress attempts zlib decompression; returns original data if it fails.
func tryDecompress(data []byte) []byte {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return data
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return data
	}
	return out
}

// scanContent lexes a content stream and feeds each operator with its
// operands to the cursor.
func scanContent(content []byte, cmap *toUnicode, c *cursor) {
	lx := &lexer{src: content, cmap: cmap}
	var args []operand
	for {
		tok, ok := lx.next()
		if !ok {
			return
		}
		if tok.isOperator {
			c.apply(tok.op, args)
			args = args[:0]
			continue
		}
		args = append(args, tok.operand)
	}
}

type lexToken struct {
	isOperator bool
	op         string
	operand    operand
}

// lexer covers the content stream syntax needed to find operators and
// their operands. Arrays and dictionaries are consumed as single opaque
// operands.
type lexer struct {
	src  []byte
	pos  int
	cmap *toUnicode
}

func isWhite(b byte) bool {
	return b == ' ' || b == '\n' || b == '\r' || b == '\t' || b == '\f' || b == 0
}

func isDelim(b byte) bool {
	return strings.IndexByte("()<>[]{}/%", b) >= 0
}

func (l *lexer) next() (lexToken, bool) {
	for {
		for l.pos < len(l.src) && isWhite(l.src[l.pos]) {
			l.pos++
		}
		if l.pos >= len(l.src) {
			return lexToken{}, false
		}
		if l.src[l.pos] != '%' {
			break
		}
		for l.pos < len(l.src) && l.src[l.pos] != '\n' && l.src[l.pos] != '\r' {
			l.pos++
		}
	}

	switch b := l.src[l.pos]; {
	case b == '(':
		l.pos++
		return lexToken{operand: operand{kind: operandString, text: decodeText(l.literal())}}, true
	case b == '<' && l.peek(1) == '<':
		l.skipBalanced("<<", ">>")
		return lexToken{operand: operand{}}, true
	case b == '<':
		l.pos++
		end := bytes.IndexByte(l.src[l.pos:], '>')
		if end < 0 {
			l.pos = len(l.src)
			return lexToken{}, false
		}
		raw := decodeHex(l.src[l.pos : l.pos+end])
		l.pos += end + 1
		text := ""
		if l.cmap != nil {
			text = l.cmap.decode(raw)
		}
		if text == "" {
			text = decodeText(raw)
		}
		return lexToken{operand: operand{kind: operandString, text: text}}, true
	case b == '[':
		l.skipBalanced("[", "]")
		return lexToken{operand: operand{}}, true
	case b == '/':
		l.pos++
		l.word()
		return lexToken{operand: operand{}}, true
	case b == ']' || b == '>' || b == ')' || b == '{' || b == '}':
		l.pos++
		return lexToken{operand: operand{}}, true
	}

	w := l.word()
	if isNumber(w) {
		v, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return lexToken{operand: operand{}}, true
		}
		kind := operandInteger
		if strings.Contains(w, ".") {
			kind = operandReal
		}
		return lexToken{operand: operand{kind: kind, num: v}}, true
	}
	switch w {
	case "true", "false", "null":
		return lexToken{operand: operand{}}, true
	}
	return lexToken{isOperator: true, op: w}, true
}

func (l *lexer) peek(n int) byte {
	if l.pos+n < len(l.src) {
		return l.src[l.pos+n]
	}
	return 0
}

// word reads up to the next whitespace or delimiter.
func (l *lexer) word() string {
	start := l.pos
	for l.pos < len(l.src) && !isWhite(l.src[l.pos]) && !isDelim(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == start {
		// lone delimiter that starts nothing we know
		l.pos++
	}
	return string(l.src[start:l.pos])
}

// literal reads a parenthesised string body, with the opening parenthesis
// already consumed, honouring nesting and escapes.
func (l *lexer) literal() string {
	start := l.pos
	depth := 1
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				s := string(l.src[start:l.pos])
				l.pos++
				return decodePDFEscapes(s)
			}
		}
		l.pos++
	}
	return decodePDFEscapes(string(l.src[start:]))
}

// skipBalanced consumes an array or dictionary including nested ones.
func (l *lexer) skipBalanced(open, close string) {
	depth := 0
	for l.pos < len(l.src) {
		switch {
		case l.src[l.pos] == '(':
			l.pos++
			l.literal()
			continue
		case bytes.HasPrefix(l.src[l.pos:], []byte(open)):
			depth++
			l.pos += len(open)
			continue
		case bytes.HasPrefix(l.src[l.pos:], []byte(close)):
			depth--
			l.pos += len(close)
			if depth == 0 {
				return
			}
			continue
		}
		l.pos++
	}
}

func isNumber(w string) bool {
	if w == "" || w == "." || w == "-" || w == "+" {
		return false
	}
	for i, r := range w {
		switch {
		case r >= '0' && r <= '9', r == '.':
		case (r == '-' || r == '+') && i == 0:
		default:
			return false
		}
	}
	return true
}

func decodeHex(raw []byte) string {
	clean := bytes.Map(func(r rune) rune {
		if isWhite(byte(r)) {
			return -1
		}
		return r
	}, raw)
	if len(clean)%2 == 1 {
		clean = append(clean, '0')
	}
	out, err := hex.DecodeString(string(clean))
	if err != nil {
		return ""
	}
	return string(out)
}

// decodePDFEscapes handles basic PDF string escape sequences.
func decodePDFEscapes(s string) string {
	var buf strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case 'b':
				buf.WriteByte('\b')
			case 'f':
				buf.WriteByte('\f')
			case '(', ')', '\\':
				buf.WriteByte(s[i])
			case '\r', '\n':
				// line continuation
				if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
					i++
				}
			default:
				if s[i] >= '0' && s[i] <= '7' {
					val := int(s[i] - '0')
					for j := 1; j < 3 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '7'; j++ {
						val = val*8 + int(s[i+1]-'0')
						i++
					}
					buf.WriteByte(byte(val))
				} else {
					buf.WriteByte(s[i])
				}
			}
		} else {
			buf.WriteByte(s[i])
		}
		i++
	}
	return buf.String()
}

// decodeText turns string bytes into text: UTF-16BE when the byte order
// mark is present, otherwise one byte per character.
func decodeText(raw string) string {
	if len(raw) >= 2 && raw[0] == 0xfe && raw[1] == 0xff {
		units := make([]uint16, 0, (len(raw)-2)/2)
		for i := 2; i+1 < len(raw); i += 2 {
			units = append(units, uint16(raw[i])<<8|uint16(raw[i+1]))
		}
		return string(utf16.Decode(units))
	}
	runes := make([]rune, len(raw))
	for i := 0; i < len(raw); i++ {
		runes[i] = rune(raw[i])
	}
	return string(runes)
}
