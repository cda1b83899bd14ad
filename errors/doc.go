/*
Package errors implements custom error interfaces for easynft.

Error declarations should be brief but descriptive. All errors are
registered with a unique numeric code so that the host environment and
event consumers can act on the class of a failure without parsing its
message. Extension packages register their own codes next to the handlers
that produce them.
*/
package errors
