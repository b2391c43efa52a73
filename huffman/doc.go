// Package huffman implements Huffman coding of byte streams with a code
// table that travels alongside the compressed payload.
//
// Trees are built deterministically: nodes with equal frequency are merged
// in insertion order (leaves by ascending symbol, then internal nodes in the
// order they were created), so the same input always yields the same table
// and the same compressed bytes.
//
// References:
//
//	<https://en.wikipedia.org/wiki/Huffman_coding>
package huffman
