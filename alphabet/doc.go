// Package alphabet maps transcript characters to the integer labels a
// speech model is trained on.
//
// Alphabet is loaded from a text file with one symbol per line; ByteAlphabet
// labels raw UTF-8 bytes and needs no file. Both serialize to the same
// little-endian table layout.
package alphabet
