// Package fuzztests houses Go fuzz harnesses for the integer codec, the
// arithmetic kernels and the expression evaluator. They guard against
// panics and check results against math/big on arbitrary inputs.
package fuzztests
