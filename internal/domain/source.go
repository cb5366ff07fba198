package domain

// Source names a table file and, for delimited text, its field delimiter.
type Source struct {
	Path      string
	Delimiter rune
}
