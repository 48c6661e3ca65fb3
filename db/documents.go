package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alwitt/herbtrace/models"
	"github.com/apex/log"
)

/*
DropDatabase delete the database, ignoring the case where it does not exist

	@param ctx context.Context - execution context
	@param client Client - document store client
*/
func DropDatabase(ctx context.Context, client Client) error {
	err := client.DeleteDatabase(ctx)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to delete database '%s' [%w]", client.DatabaseName(), err)
	}
	return nil
}

/*
ResetDatabase delete then re-create the database. A failed delete is logged and tolerated.

	@param ctx context.Context - execution context
	@param client Client - document store client
*/
func ResetDatabase(ctx context.Context, client Client) error {
	if err := DropDatabase(ctx, client); err != nil {
		log.WithError(err).
			WithField("database", client.DatabaseName()).
			Warn("Database delete failed during reset")
	}
	if err := client.CreateDatabase(ctx); err != nil {
		return fmt.Errorf("failed to create database '%s' [%w]", client.DatabaseName(), err)
	}
	return nil
}

/*
Put encode and store a new document

	@param ctx context.Context - execution context
	@param client Client - document store client
	@param id string - document ID
	@param doc T - document content
	@return the new revision
*/
func Put[T any](ctx context.Context, client Client, id string, doc T) (string, error) {
	body, err := encodeDocument(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document '%s' [%w]", id, err)
	}
	return client.PutDocument(ctx, id, body)
}

/*
Get fetch and decode a document

	@param ctx context.Context - execution context
	@param client Client - document store client
	@param id string - document ID
	@return the decoded document
*/
func Get[T any](ctx context.Context, client Client, id string) (T, error) {
	doc, _, err := GetWithRevision[T](ctx, client, id)
	return doc, err
}

/*
GetWithRevision fetch and decode a document, along with its current revision

	@param ctx context.Context - execution context
	@param client Client - document store client
	@param id string - document ID
	@return the decoded document and its revision
*/
func GetWithRevision[T any](ctx context.Context, client Client, id string) (T, string, error) {
	var result T
	raw, err := client.GetDocument(ctx, id)
	if err != nil {
		return result, "", err
	}
	if err := json.Unmarshal(raw.Body, &result); err != nil {
		return result, "", fmt.Errorf(
			"failed to decode document '%s' [%w]", id, errors.Join(models.ErrStore, err),
		)
	}
	return result, raw.Revision, nil
}

/*
Update encode and overwrite a document at a specific revision

	@param ctx context.Context - execution context
	@param client Client - document store client
	@param id string - document ID
	@param revision string - the revision being replaced
	@param doc T - new document content
	@return the new revision
*/
func Update[T any](
	ctx context.Context, client Client, id, revision string, doc T,
) (string, error) {
	body, err := encodeDocument(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document '%s' [%w]", id, err)
	}
	return client.UpdateDocument(ctx, id, revision, body)
}

/*
Delete delete a document at its current revision.

The revision is read first and then used for the delete. The two calls are not atomic: a
concurrent writer changing the document in between causes the delete to fail with
models.ErrConflict rather than removing the newer revision.

	@param ctx context.Context - execution context
	@param client Client - document store client
	@param id string - document ID
*/
func Delete(ctx context.Context, client Client, id string) error {
	current, err := client.GetDocument(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return err
		}
		return fmt.Errorf(
			"unable to read revision of '%s' [%w]", id, errors.Join(models.ErrNotFound, err),
		)
	}
	return client.DeleteDocumentRevision(ctx, id, current.Revision)
}

/*
ListAll fetch and decode every document in the database. A document which fails to decode
fails the whole call.

	@param ctx context.Context - execution context
	@param client Client - document store client
	@return the decoded documents
*/
func ListAll[T any](ctx context.Context, client Client) ([]T, error) {
	raw, err := client.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]T, 0, len(raw))
	for _, oneDoc := range raw {
		var decoded T
		if err := json.Unmarshal(oneDoc.Body, &decoded); err != nil {
			return nil, fmt.Errorf(
				"failed to decode document '%s' [%w]", oneDoc.ID, errors.Join(models.ErrStore, err),
			)
		}
		result = append(result, decoded)
	}
	return result, nil
}

func encodeDocument(doc any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
