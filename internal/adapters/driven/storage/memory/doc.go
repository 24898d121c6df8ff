// Package memory provides in-memory adapters for records and configuration.
// They are used in tests and as the default sink for one-shot commands.
package memory
