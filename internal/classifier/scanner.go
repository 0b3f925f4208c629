package classifier

import "strings"

// Delimiter opens a tag block at the start of a line and closes its tag line.
const Delimiter = ':'

// Block is the raw text of one tagged block.
type Block struct {
	Text string
	Line int // 0-based index of the block's first line in the scanned text
}

// ScanBlocks splits text into tagged blocks. A block starts at every line
// whose first byte is Delimiter and runs until the next such line or the end
// of text. Delimiters elsewhere in a line never start a block. Lines before
// the first block are ignored.
func ScanBlocks(text string) []Block {
	var (
		blocks []Block
		lines  []string
		start  = -1
	)

	flush := func() {
		if start >= 0 {
			blocks = append(blocks, Block{Text: strings.Join(lines, "\n"), Line: start})
		}
	}

	for i, line := range strings.Split(text, "\n") {
		if len(line) > 0 && line[0] == Delimiter {
			flush()
			lines = lines[:0]
			start = i
		}
		if start >= 0 {
			lines = append(lines, line)
		}
	}
	flush()

	return blocks
}

// splitTag separates the tag line tokens from the body of a block. The
// leading delimiters are dropped and the text is cut at the first delimiter
// not escaped by a backslash. ok is false when there is none.
func splitTag(block string) (tag, body string, ok bool) {
	rest := strings.TrimLeft(block, string(Delimiter))
	for i := 0; i < len(rest); i++ {
		if rest[i] == Delimiter && (i == 0 || rest[i-1] != '\\') {
			return rest[:i], rest[i+1:], true
		}
	}
	return "", "", false
}
