// Package audit contains the append-only audit Entry and its Category value
// object. Entries record accepted mutations, rejected mutations, security
// access, and background-job events; timestamps come from the store.
package audit
