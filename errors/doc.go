/*
Package errors implements the error kinds shared by all tokenswap packages.

Reuse as many errors from this package as possible and define custom package
errors only when a client must be able to tell them apart. Extensions register
their own kinds with Register(code, description) during package
initialization; x/htlc does that for the escrow specific failures.

Code stands for the ABCI error code, which allows to distinguish types of
errors on the client side and act accordingly.

Create errors using ErrXyz.New("...") or errors.Wrap(err, "...") at the point
of creation to attach a stacktrace. If you wrap multiple times, only the first
wrap records the stacktrace.

	%s is just the error message
	%+v is the full stack trace
*/
package errors
