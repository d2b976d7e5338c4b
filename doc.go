// Package numfmt emulates custom binary number formats bit for bit.
//
// The formats live in sub packages:
//
//   - [github.com/shogo82148/numfmt/blockbinary] is the fixed-width, word-packed
//     integer engine every other format is built from.
//   - [github.com/shogo82148/numfmt/hfloat] implements IBM style hexadecimal
//     floating point numbers.
//   - [github.com/shogo82148/numfmt/cfloat] implements compact floating point
//     numbers with a hidden bit, such as the 8-bit E4M3 and E5M2 formats,
//     IEEE 754 half precision and bfloat16.
//
// This package holds the errors shared by all of them.
package numfmt
