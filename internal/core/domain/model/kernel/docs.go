// Package kernel contains the shared value objects of the domain model:
// UUID identifiers and Money amounts. Both follow the value-object rules
// used across the domain: constructed through factory functions, validated
// explicitly, immutable, and compared by value.
package kernel
