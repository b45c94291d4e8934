package repository

import "strings"

// likeEscape is the ESCAPE character for user-supplied LIKE patterns. '!'
// reads the same in MySQL and SQLite string literals, unlike a backslash.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike makes s match literally inside a LIKE pattern built with likeEscape
func escapeLike(s string) string {
	return likeReplacer.Replace(s)
}

// containsPattern returns a LIKE pattern matching s anywhere in the column
func containsPattern(s string) string {
	return "%" + escapeLike(s) + "%"
}
