package locator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/civiltrace/plancheck/internal/document"
)

var tocHeadingPatterns = []string{
	"SHEET INDEX",
	"DRAWING INDEX",
	"INDEX OF SHEETS",
	"INDEX OF DRAWINGS",
	"TABLE OF CONTENTS",
	"LIST OF DRAWINGS",
}

var (
	// A dash before the digits means the number is the tail of a page
	// range, which the range extractor handles.
	trailingNumberPattern   = regexp.MustCompile(`(?:^|[^-–\d])(\d+)\s*$`)
	pageRangePattern        = regexp.MustCompile(`\b(\d+)\s*[-–]\s*\d+\b`)
	parenthesizedPattern    = regexp.MustCompile(`\((\d+)\)`)
	explicitPageRefPattern  = regexp.MustCompile(`\b(?:PAGE|PG|P\.)\s*(\d+)\b`)
	standaloneNumberPattern = regexp.MustCompile(`^\s*(\d+)\s*$`)
)

// pageNumberExtractor pulls a 1-based page number out of a TOC line. The
// following line is passed too, for indexes that put the number on its own
// row under the title.
type pageNumberExtractor func(line, nextLine string) (int, bool)

// tocExtractors is the fixed extraction order: trailing integer, page range,
// parenthesized number, explicit PAGE marker, standalone number on the next
// line. First hit wins.
var tocExtractors = []pageNumberExtractor{
	func(line, _ string) (int, bool) { return firstGroupInt(trailingNumberPattern, line) },
	func(line, _ string) (int, bool) { return firstGroupInt(pageRangePattern, line) },
	func(line, _ string) (int, bool) { return firstGroupInt(parenthesizedPattern, line) },
	func(line, _ string) (int, bool) { return firstGroupInt(explicitPageRefPattern, strings.ToUpper(line)) },
	func(_, nextLine string) (int, bool) { return firstGroupInt(standaloneNumberPattern, nextLine) },
}

// byTableOfContents looks for a sheet index in the first cfg.TOCDepth pages
// and parses it for the target sheet's page number.
func byTableOfContents(doc document.Document, cfg Config) (*Location, error) {
	depth := cfg.TOCDepth
	if doc.PageCount() < depth {
		depth = doc.PageCount()
	}

	for page := 0; page < depth; page++ {
		text, err := doc.PageText(page)
		if err != nil {
			// A single unreadable page must not abort the scan.
			continue
		}
		if !isTOCPage(text) {
			continue
		}

		if pageNum, ok := parseTOC(text, cfg.Keyword); ok {
			return &Location{PageIndex: pageNum - 1, Method: MethodTOC}, nil
		}
	}
	return nil, nil
}

func isTOCPage(text string) bool {
	upper := strings.ToUpper(text)
	for _, heading := range tocHeadingPatterns {
		if strings.Contains(upper, heading) {
			return true
		}
	}
	return false
}

// parseTOC scans the index lines for the target sheet and extracts its
// 1-based page number.
func parseTOC(text, keyword string) (int, bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !lineMatchesTarget(line, keyword) {
			continue
		}

		nextLine := ""
		if i+1 < len(lines) {
			nextLine = lines[i+1]
		}

		for _, extract := range tocExtractors {
			if pageNum, ok := extract(line, nextLine); ok && pageNum > 0 {
				return pageNum, true
			}
		}
	}
	return 0, false
}

// lineMatchesTarget reports whether a TOC line refers to the target sheet,
// either by the configured abbreviation or by the spelled-out title.
func lineMatchesTarget(line, keyword string) bool {
	upper := strings.ToUpper(line)
	if strings.Contains(upper, strings.ToUpper(keyword)) {
		return true
	}
	return strings.Contains(upper, "EROSION") && strings.Contains(upper, "CONTROL")
}

func firstGroupInt(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
