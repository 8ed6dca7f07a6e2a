// Package input reads URL lists.
//
// A list holds one URL per line. Blank lines and lines starting with "#"
// are skipped and surrounding whitespace is trimmed. Lists in a legacy
// encoding (Shift_JIS, GBK, windows-1252, ...) are decoded to UTF-8 with
// any WHATWG encoding label.
package input
