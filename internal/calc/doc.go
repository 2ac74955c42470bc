// Package calc evaluates arithmetic requests on arbitrary-precision integers
// at a fixed digit width.
//
// A Calculator wraps the magnitude package for one digit type. The default
// factory registers w8, w16, w32 and w64; all four must agree on every
// operation except not, whose result is defined within the operand's digit
// count and therefore depends on the width.
package calc
