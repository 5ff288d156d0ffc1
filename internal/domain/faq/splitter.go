package faq

// SplitChunks cuts a document into fixed-size chunks with overlap, so a
// passage that straddles a boundary is still retrievable whole from one
// side. Sizes are in bytes of the UTF-8 text; the split is aligned to rune
// boundaries to never cut a character in half.
func SplitChunks(text string, size, overlap int) []string {
	if size <= 0 {
		return nil
	}
	if overlap >= size {
		overlap = size - 1
	}
	if overlap < 0 {
		overlap = 0
	}

	runes := []rune(text)
	var chunks []string
	step := size - overlap

	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
