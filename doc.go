/*
Package easynft defines the common interfaces that tie the extensions of
this repository together: the key-value storage abstraction, addresses and
conditions used for authorization, messages and their handlers, and the
result types handlers produce.

The actual functionality lives in the extensions under x/. The nft
extension maintains the token catalog and the per-account ownership
ledger, the market extension runs the bundle marketplace on top of it and
the cash extension provides the fungible wallet used to settle payments.

Signature verification, block production and anything consensus related is
the job of the host environment. This code only assumes that every call is
executed serialized, start to finish, against a single authoritative
store.
*/
package easynft
