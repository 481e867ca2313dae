package simresults

import (
	"bytes"
	"io/ioutil"
	"strings"
	"unicode/utf8"

	"github.com/dimchansky/utfbom"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// normalizeText decodes a raw log to UTF-8 and normalises its line endings to "\n".
//
// A byte order mark selects the encoding. Without one, valid UTF-8 lines are kept
// byte for byte and any other line is assumed to be Windows-1252, which is what
// servers running on Windows with a western locale write.
func normalizeText(data []byte) (string, error) {
	body, enc := utfbom.Skip(bytes.NewReader(data))

	raw, err := ioutil.ReadAll(body)

	if err != nil {
		return "", errors.Wrap(err, "simresults: could not read data")
	}

	var decoder encoding.Encoding

	switch enc {
	case utfbom.UTF16LittleEndian:
		decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case utfbom.UTF16BigEndian:
		decoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case utfbom.UTF32LittleEndian:
		decoder = utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	case utfbom.UTF32BigEndian:
		decoder = utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	default:
		if !utf8.Valid(raw) {
			raw, err = decodeInvalidLines(raw)

			if err != nil {
				return "", err
			}
		}
	}

	if decoder != nil {
		raw, err = decoder.NewDecoder().Bytes(raw)

		if err != nil {
			return "", errors.Wrapf(err, "simresults: could not decode %s data", enc)
		}
	}

	text := string(raw)

	if ending := detectLineEnding(text); ending != lineEndingUnix {
		logrus.Debugf("simresults: normalising %q line endings", string(ending))
	}

	return normalizeLineEndings(text), nil
}

// decodeInvalidLines decodes each line of raw that is not valid UTF-8 as
// Windows-1252. Valid lines are left untouched, so a single chat message from a
// client with another code page does not garble driver names elsewhere in the log.
func decodeInvalidLines(raw []byte) ([]byte, error) {
	lines := bytes.SplitAfter(raw, []byte("\n"))
	out := make([]byte, 0, len(raw))

	for i, line := range lines {
		if utf8.Valid(line) {
			out = append(out, line...)
			continue
		}

		logrus.Debugf("simresults: line %d is not valid utf-8, decoding as windows-1252", i+1)

		decoded, err := charmap.Windows1252.NewDecoder().Bytes(line)

		if err != nil {
			return nil, errors.Wrapf(err, "simresults: could not decode line %d", i+1)
		}

		out = append(out, decoded...)
	}

	return out, nil
}

type lineEnding string

const (
	lineEndingUnix    lineEnding = "\n"
	lineEndingWindows lineEnding = "\r\n"
	lineEndingMac     lineEnding = "\r"
)

// detectLineEnding reports the line ending style of the first line break in text.
func detectLineEnding(text string) lineEnding {
	i := strings.IndexAny(text, "\r\n")

	switch {
	case i < 0 || text[i] == '\n':
		return lineEndingUnix
	case i+1 < len(text) && text[i+1] == '\n':
		return lineEndingWindows
	default:
		return lineEndingMac
	}
}

var lineEndingReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// normalizeLineEndings converts every "\r\n" and lone "\r" in text to "\n". Mixed
// styles are converted too.
func normalizeLineEndings(text string) string {
	return lineEndingReplacer.Replace(text)
}
