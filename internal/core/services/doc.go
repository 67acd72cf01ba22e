// Package services implements the application core: the ingestion
// pipeline, query-time retrieval and answer synthesis. Services depend
// only on the driven ports, so every provider can be faked in tests.
package services
