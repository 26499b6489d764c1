package emitter

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"
)

type mapping struct {
	genLine, genCol int
	srcLine, srcCol int
}

// rawSourceMap is the version 3 source map document.
type rawSourceMap struct {
	Version        int      `json:"version"`
	File           string   `json:"file"`
	SourceRoot     string   `json:"sourceRoot"`
	Sources        []string `json:"sources"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
}

const vlqChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// appendVLQ writes v as a base64 VLQ: sign in the lowest bit, 5 bits per digit.
func appendVLQ(sb *strings.Builder, v int) {
	u := v << 1
	if v < 0 {
		u = (-v << 1) | 1
	}
	for {
		digit := u & 0x1f
		u >>= 5
		if u > 0 {
			digit |= 0x20
		}
		sb.WriteByte(vlqChars[digit])
		if u == 0 {
			return
		}
	}
}

// encodeMappings renders segments [genCol, source, srcLine, srcCol] with
// fields relative to the previous segment; genCol resets on each line.
func encodeMappings(ms []mapping) string {
	var sb strings.Builder
	line, prevGenCol, prevSrcLine, prevSrcCol := 0, 0, 0, 0
	first := true
	for _, m := range ms {
		for line < m.genLine {
			sb.WriteByte(';')
			line++
			prevGenCol = 0
			first = true
		}
		if !first {
			sb.WriteByte(',')
		}
		first = false
		appendVLQ(&sb, m.genCol-prevGenCol)
		appendVLQ(&sb, 0)
		appendVLQ(&sb, m.srcLine-prevSrcLine)
		appendVLQ(&sb, m.srcCol-prevSrcCol)
		prevGenCol, prevSrcLine, prevSrcCol = m.genCol, m.srcLine, m.srcCol
	}
	return sb.String()
}

func buildSourceMap(ref MapRef, ms []mapping, content string, withContent bool) (string, error) {
	raw := rawSourceMap{
		Version:  3,
		File:     ref.File,
		Sources:  []string{ref.Source},
		Names:    []string{},
		Mappings: encodeMappings(ms),
	}
	if withContent {
		raw.SourcesContent = []string{content}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(raw); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func inlineMapURL(doc string) string {
	return "data:application/json;base64," + base64.StdEncoding.EncodeToString([]byte(doc))
}
