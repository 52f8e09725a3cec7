// Package numwords spells out numerals as French words.
//
// The rules follow written French: "vingt et un", "soixante et onze",
// "quatre-vingts" but "quatre-vingt-un", "deux cents" but "deux cent un",
// invariable "mille" and plural "millions". Integers are handled as digit
// strings, so there is no overflow short of MaxIntegerDigits.
package numwords
