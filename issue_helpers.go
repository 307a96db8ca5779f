package datacls

import "github.com/reoring/datacls/i18n"

// IssueAt creates an Issue at path with the translated message for code and
// the given hint. It keeps call sites with many issues readable.
func IssueAt(path, code, hint string) Issue {
	return Issue{Path: path, Code: code, Message: i18n.T(code, nil), Hint: hint}
}
