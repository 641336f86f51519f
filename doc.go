// Package huffman implements byte-oriented Huffman coding.  A code table is
// derived from the symbol frequencies of an input, the input is packed into a
// bit stream terminated by a single sentinel bit, and the table is persisted
// in a small textual format so that decoding never needs the original tree.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
//     D. A. Huffman, "A Method for the Construction of Minimum-Redundancy
//     Codes", Proceedings of the IRE, 1952
//
package huffman
