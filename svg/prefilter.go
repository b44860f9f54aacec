package svg

import "regexp"

// Server side template fragments. Go regexp has no backtracking, so nested or
// overlapping constructs are handled by repeating removal until nothing changes.
var serverTags = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<\?(?:=|php)(.+?)\?>`),
	regexp.MustCompile(`(?s)<%(.*?)%>`),
}

// Prefilter removes server side processing instruction like sequences
// (`<?php ... ?>`, `<?= ... ?>`, `<% ... %>`) from text. Removal is repeated
// until fixed point so fragments can not be reassembled from malformed
// nesting like "<?p<?php ?>hp ... ?>".
func Prefilter(s string) string {
	for {
		prev := s
		for _, re := range serverTags {
			s = re.ReplaceAllString(s, "")
		}
		if s == prev {
			return s
		}
	}
}
