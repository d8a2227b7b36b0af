// Package kernel holds the primitives shared by every folio aggregate:
// identifiers, the trusted actor context, phone numbers and the business
// calendar used to decide which day a sale belongs to.
//
// Values here are immutable and safe for concurrent use.
package kernel
