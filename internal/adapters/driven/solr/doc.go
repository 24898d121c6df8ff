// Package solr sends extracted records to an Apache Solr collection
// through its JSON update handler.
//
// Records are buffered and posted in batches. Requests are rate limited
// with a token bucket, and a 429 response pauses all requests for the
// duration the server asks for.
package solr
