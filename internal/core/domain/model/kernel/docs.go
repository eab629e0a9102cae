// Package kernel contains shared value objects used across the domain model:
// UUID identity and Money amounts. Value objects here are immutable,
// comparable via IsEqual, and validated at construction.
package kernel
