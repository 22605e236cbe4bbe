package arxivtex

import (
	"path/filepath"
	"regexp"
	"strings"
)

// arXiv ID patterns as they appear in corpus file names:
// - New format: YYMM.NNNNN (e.g., 2301.00001.tex, 2301.12345v2.tex)
// - Old format: archive/YYMMNNN with the slash replaced (e.g., hep-th_9901001.tex)
var fileIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{4}\.\d{4,5}(?:v\d+)?)`),
	regexp.MustCompile(`^([a-z]+(?:-[a-z]+)?(?:\.[A-Z]{2})?)[_/](\d{7}(?:v\d+)?)`),
}

// PaperIDFromFilename derives the versionless arXiv identifier from a
// corpus file name, or "" if the name does not start with one.
func PaperIDFromFilename(name string) string {
	base := filepath.Base(name)

	if m := fileIDPatterns[0].FindStringSubmatch(base); m != nil {
		return normalizeArxivID(m[1])
	}
	if m := fileIDPatterns[1].FindStringSubmatch(base); m != nil {
		return normalizeArxivID(m[1] + "/" + m[2])
	}
	return ""
}

// normalizeArxivID strips version suffixes (e.g., "2301.00001v2" -> "2301.00001").
func normalizeArxivID(id string) string {
	if idx := strings.LastIndex(id, "v"); idx > 0 {
		suffix := id[idx+1:]
		allDigits := len(suffix) > 0
		for _, c := range suffix {
			if c < '0' || c > '9' {
				allDigits = false
				break
			}
		}
		if allDigits {
			return id[:idx]
		}
	}
	return id
}
