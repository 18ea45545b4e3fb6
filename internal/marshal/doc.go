// Package marshal implements the elementwise kernels that move data
// between fields, external buffers and packed images, and the reset
// kernels for derivative and sparsity state.
//
// Every kernel validates its handles first and returns a *BindError
// before touching any element. The validated call then runs one pass over
// the active set of a single field; component counts, layout mode and
// element conversions are resolved before the pass starts.
package marshal
