/*
Package ports defines the driven ports (interfaces) for the Espalier
editor host.

These interfaces decouple the editing surface from external
implementations, allowing condition documents to live in any backend
(memory, Redis, SQLite) the authoring tool's project store prefers.
*/
package ports
