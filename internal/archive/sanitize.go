package archive

import "strings"

// SanitizeName rewrites an externally supplied name component so it can be
// safely embedded in a filesystem path or object-storage key. Path
// traversal sequences, separators, control characters, and characters S3
// treats as problematic are replaced with underscores. The result never
// contains ".." or a path separator.
func SanitizeName(name string) string {
	if name == "" {
		return ""
	}

	s := strings.ReplaceAll(name, "..", "_")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x20 || r == 0x7f:
			b.WriteByte('_')
		case r == '/' || r == '\\':
			b.WriteByte('_')
		case strings.ContainsRune(`<>:"|?*`, r):
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
