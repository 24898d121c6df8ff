// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RecordParser: Turns record bytes into a navigable XML tree
//   - RecordWriter: Receives whole extracted records (stdout, SQLite, Solr)
//
// # Optional Interfaces
//
//   - RecordStore: Read access to previously written records
//   - RecordSource: Reads record files, directories and stdin
//   - RecordWatcher: Reports record files as they are written
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
