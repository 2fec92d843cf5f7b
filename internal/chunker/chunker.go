// ABOUTME: Splits raw document text into bounded-size, sentence-respecting segments
// ABOUTME: Sentences are detected on ./!/? followed by whitespace and greedily packed
package chunker

import (
	"strings"
	"unicode"
)

// Split segments text into sentence units and greedily accumulates them
// into chunks of at most maxChunkSize characters. A single sentence longer
// than maxChunkSize is emitted as its own oversized chunk rather than being
// split mid-sentence; this is a known limitation, not an error. Empty input
// yields a nil slice.
func Split(text string, maxChunkSize int) []string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var buf strings.Builder

	for _, sentence := range sentences {
		if buf.Len() == 0 {
			buf.WriteString(sentence)
			continue
		}
		// +1 accounts for the joining space
		if buf.Len()+1+len(sentence) > maxChunkSize {
			chunks = append(chunks, buf.String())
			buf.Reset()
			buf.WriteString(sentence)
			continue
		}
		buf.WriteByte(' ')
		buf.WriteString(sentence)
	}

	if buf.Len() > 0 {
		chunks = append(chunks, buf.String())
	}
	return chunks
}

// splitSentences cuts text at end-of-sentence punctuation followed by
// whitespace (or end of input). Whitespace around sentences is trimmed;
// blank segments are dropped.
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isSentenceEnd(runes[i]) {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}

	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
