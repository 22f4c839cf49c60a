// Package qianbao provides the types and functions to keep track of personal
// assets. It is designed to be local-first: the whole collection lives in a
// single key-value slot that the user owns.
//
// The core functionalities include:
//   - Asset records: a named amount of money with an icon, either one of a
//     small set of preset symbols or a user-uploaded image stored as a data URI.
//   - Asset Store: an insertion-ordered collection kept in sync with its
//     storage slot after every mutation, and the running total.
//   - Form validation: turning a pending user submission into a validated
//     draft, reporting failures per field.
//   - Data persistence: encoding the collection into a versioned JSON
//     document, and migrating the legacy bare-array format.
//
// This package serves as the foundational logic for the `qb` command-line
// tool and its web interface.
package qianbao
