// Package ptr provides Ptr, a raw address handle that can reference arbitrary memory.
//
// A Ptr may be null, dangling, misaligned or point at memory that was never allocated. It carries no
// lifetime or ownership information and performs no checks: every method that touches the memory
// behind a Ptr documents the preconditions the caller must uphold, and violating them is undefined
// behavior in the same way misusing unsafe.Pointer is.
//
// Ptr distinguishes an address's numeric value from its provenance, the permission to access memory
// at that address. Provenance comes only from a live Go pointer (From, FromSlice, FromUnsafe) and is
// carried through every derived handle (Add, ByteAdd, WithAddress, Mask, Cast). A Ptr built from a
// bare integer with Invalid has no provenance and must never be dereferenced, even if its address
// happens to coincide with live memory. Arithmetic never forms an intermediate unsafe.Pointer, so a
// Ptr may be moved outside its object (or wrap around the address space) and back without upsetting
// the garbage collector; a pointer is only formed when the memory is accessed.
//
// Ptr values are inert data and may be copied and shared between goroutines freely. Nothing about
// that makes concurrent access to the memory they address safe; synchronizing such access is the
// caller's responsibility.
//
// Building with the debug_rawptr tag turns some of the documented preconditions into panics.
package ptr
