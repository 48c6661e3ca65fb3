// Package db - document store persistence layer
package db

import (
	"context"
	"encoding/json"
	"time"
)

// DefaultDatabaseName default document collection holding the herb records
const DefaultDatabaseName = "herbs"

// DefaultCallTimeout bound on a single document store call
const DefaultCallTimeout = 10 * time.Second

// Document one raw JSON document as held by the document store
type Document struct {
	// ID document ID
	ID string
	// Revision the store's current revision token for the document
	Revision string
	// Body the document JSON body
	Body json.RawMessage
}

/*
Client manages documents within one database of a document store.

The operations mirror the CouchDB document API. Every write of an existing document must
carry the revision token last read for it; the store rejects stale tokens with
models.ErrConflict.
*/
type Client interface {
	/*
		DatabaseName the database this client operates on

			@return database name
	*/
	DatabaseName() string

	/*
		CreateDatabase create the database. Creating an existing database is not an error.

			@param ctx context.Context - execution context
	*/
	CreateDatabase(ctx context.Context) error

	/*
		DeleteDatabase delete the database along with all of its documents

			@param ctx context.Context - execution context
	*/
	DeleteDatabase(ctx context.Context) error

	/*
		PutDocument create a new document at the given ID

			@param ctx context.Context - execution context
			@param id string - document ID
			@param body []byte - document JSON body
			@return the new revision token
	*/
	PutDocument(ctx context.Context, id string, body []byte) (string, error)

	/*
		GetDocument fetch a document by ID

			@param ctx context.Context - execution context
			@param id string - document ID
			@return the document along with its current revision
	*/
	GetDocument(ctx context.Context, id string) (Document, error)

	/*
		UpdateDocument overwrite a document, guarded by its current revision

			@param ctx context.Context - execution context
			@param id string - document ID
			@param revision string - the revision the update is based on
			@param body []byte - new document JSON body
			@return the new revision token
	*/
	UpdateDocument(ctx context.Context, id, revision string, body []byte) (string, error)

	/*
		DeleteDocumentRevision delete a document, guarded by its current revision

			@param ctx context.Context - execution context
			@param id string - document ID
			@param revision string - the revision being deleted
	*/
	DeleteDocumentRevision(ctx context.Context, id, revision string) error

	/*
		ListDocuments fetch every document in the database, including bodies

			@param ctx context.Context - execution context
			@return list of documents
	*/
	ListDocuments(ctx context.Context) ([]Document, error)
}

// callContext bound a single store call with the client timeout
func callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
