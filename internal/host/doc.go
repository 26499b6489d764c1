// Package host runs the toolchain against a virtual file set.
//
// A System serves reads from two tiers: the in-memory output sink first,
// then the caller's vfs.Provider. Every rooted, non-library path it is asked
// to read goes into the dependency ledger. Capabilities the toolchain must
// never use against a virtual file set (deleting, timestamps, realpath,
// environment, exit, directory listing) fail with *UnsupportedOperationError.
//
// CompilerHost adapts a System to toolchain.CompilerHost. One System and one
// CompilerHost belong to exactly one compilation request.
package host
