// Package domain contains the core types of the MedMind retrieval
// pipeline: documents, chunks, indexed vectors, retrieved passages and
// chat sessions. It has no dependencies on adapters or services.
package domain
