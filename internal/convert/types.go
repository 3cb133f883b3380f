// Package convert turns GitLab-flavored markdown (merge request
// descriptions) into Atlassian Document Format trees. Conversion is a pure
// function of the input text and Config; it performs no I/O and is safe to
// call concurrently.
package convert

import "errors"

// ImageMode selects how image references are represented in the output.
type ImageMode string

const (
	// ImageLinks replaces images with plain links (alt text as link text).
	ImageLinks ImageMode = "links"
	// ImageNative requests the target schema's native media node. ADF media
	// nodes require uploaded attachment ids, so this mode currently
	// downgrades to links and reports a Warning.
	ImageNative ImageMode = "native-syntax"
	// ImageStrip drops images, keeping non-empty alt text as plain text.
	ImageStrip ImageMode = "strip"
)

// ParseImageMode validates a mode string from a CLI flag or config file.
func ParseImageMode(s string) (ImageMode, error) {
	switch ImageMode(s) {
	case ImageLinks, ImageNative, ImageStrip:
		return ImageMode(s), nil
	}
	return "", errors.New("image mode must be one of: links, native-syntax, strip")
}

// Config carries the conversion options. The zero value is usable and
// behaves as ImageLinks.
type Config struct {
	ImageMode ImageMode
}

// maxNestingDepth bounds list/blockquote/emphasis recursion. Exceeding it
// fails the whole conversion rather than recursing unbounded.
const maxNestingDepth = 32

// ErrNestingTooDeep is returned when input nests lists, blockquotes, or
// emphasis beyond maxNestingDepth levels. No partial output is produced.
var ErrNestingTooDeep = errors.New("markdown nesting exceeds maximum depth")

// WarningType categorizes non-fatal conversion notices.
type WarningType string

const (
	// WarningImageDowngraded: native-syntax images fell back to links.
	WarningImageDowngraded WarningType = "image_downgraded"
	// WarningUnknownBlock: an unrepresentable block degraded to a paragraph.
	WarningUnknownBlock WarningType = "unknown_block"
)

// Warning is a non-fatal issue encountered during conversion.
type Warning struct {
	Type    WarningType
	Message string
}

type blockKind int

const (
	blockHeading blockKind = iota
	blockParagraph
	blockCode
	blockList
	blockQuote
	blockRule
)

// block is a segmented block-level unit. Exactly the fields for its kind
// are populated; the rest stay zero.
type block struct {
	kind     blockKind
	level    int      // heading level 1-6
	text     string   // heading text
	lines    []string // paragraph logical lines
	language string   // code fence info tag
	code     string   // code block literal text
	ordered  bool     // list kind
	items    [][]block
	children []block // blockquote content
}

type spanKind int

const (
	spanText spanKind = iota
	spanBold
	spanItalic
	spanStrike
	spanCode
	spanLink
	spanImage
)

// span is an inline unit. Code spans are always leaves; text holds the
// literal for text/code spans and the alt text for images.
type span struct {
	kind     spanKind
	text     string
	href     string
	children []span
}
