// Package plists reads and writes property lists in the legacy NeXT/OpenStep
// text syntax and bridges them to and from Apple's XML property list format.
//
// A text property list is parsed into a raw value tree whose leaves are
// Tokens, so that the lexical identity of every value and key (a bare word or
// a quoted string) survives a round trip. Sequences are []interface{} and
// mappings are *Dict, whose lookups accept either a string or a Token. The
// XML reader produces the same tree, with plain strings and bools as leaves.
//
// Wrap (or AsView) presents a raw tree with its Tokens unwrapped, lazily and
// without copying it. Decode and Unmarshal convert a tree into Go values;
// Encode and Marshal go the other way, to either format.
package plists
