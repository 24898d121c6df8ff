// Package file provides the TOML-file ConfigStore.
//
// Tables in the file are flattened to dot-notation keys on load
// ("[solr] url = ..." is read as "solr.url") and nested again on save.
package file
