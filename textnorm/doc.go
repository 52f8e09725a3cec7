// Package textnorm rewrites transcript labels into speakable text.
//
// Normalize runs three stages in a fixed order: special characters
// ("%" to " pourcents", interval separators to commas), anglicisms
// ("B2B" to "B to B"), then numerals spelled out in French. Validators then
// decide whether the cleaned label can be used at all: ValidateLabel for the
// plain [a-z'] alphabet, ValidateFR for French text with diacritics.
//
// All rules live in a Table. The French one is embedded; LoadTable reads a
// replacement for other locales or corpora.
package textnorm
