package document

import (
	"strings"
)

// CodeBlock is a single fenced code region extracted from a buffer.
// The last block of a parse may be open, meaning its closing fence
// has not been observed yet.
type CodeBlock struct {
	// Language is the info-string token following the opening fence,
	// e.g. "python" in "```python". Empty when the fence carries none.
	Language string
	// Code is the block body. Lines are newline-terminated as they
	// appear in the source; a trailing partial line is included as-is.
	Code string
	// Open reports that no closing fence has been seen for this block.
	Open bool
}

type CodeBlocks []CodeBlock

// ParseBlocks extracts all fenced code blocks from source, in order of
// appearance. It is a pure function over the whole buffer: callers
// re-invoke it on every change and rely on identical output for
// identical input.
//
// A fence is a line-initial run of three or more backticks. The block
// is closed by the next line-initial run at least as long as the
// opening run, which lets bodies contain shorter fences verbatim.
// Anything outside a fence contributes nothing.
func ParseBlocks(source string) CodeBlocks {
	var (
		blocks   CodeBlocks
		current  *CodeBlock
		fenceLen int
		body     strings.Builder
	)

	rest := source
	for rest != "" {
		line, remainder, terminated := cutLine(rest)
		rest = remainder

		run := leadingBackticks(line)

		if current == nil {
			if run < 3 {
				// Prose between blocks is discarded.
				continue
			}
			current = &CodeBlock{Language: infoLanguage(line[run:])}
			fenceLen = run
			body.Reset()
			continue
		}

		if run >= fenceLen {
			current.Code = body.String()
			blocks = append(blocks, *current)
			current = nil
			continue
		}

		body.WriteString(line)
		if terminated {
			body.WriteByte('\n')
		}
	}

	if current != nil {
		current.Code = body.String()
		current.Open = true
		blocks = append(blocks, *current)
	}

	return blocks
}

// cutLine splits off the first line of s. terminated is false only for
// a trailing line with no newline, i.e. input still arriving.
func cutLine(s string) (line, rest string, terminated bool) {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}

func leadingBackticks(line string) int {
	n := 0
	for n < len(line) && line[n] == '`' {
		n++
	}
	return n
}

// infoLanguage extracts the language tag from an opening fence's info
// string: the first whitespace-delimited token, if any.
func infoLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
