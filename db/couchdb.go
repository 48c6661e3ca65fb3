package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alwitt/goutils"
	"github.com/alwitt/herbtrace/models"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
)

// CouchDBParams CouchDB connection parameters
type CouchDBParams struct {
	// BaseURL CouchDB server base URL
	BaseURL string `validate:"required,url"`
	// Username basic auth user
	Username string
	// Password basic auth password
	Password string
	// Database the database holding the documents
	Database string `validate:"required"`
	// Timeout bound on each call. Defaults to DefaultCallTimeout.
	Timeout time.Duration
	// HTTPClient optional HTTP client to issue requests with
	HTTPClient *http.Client `validate:"-"`
}

// couchDBClient implements Client against the CouchDB HTTP document API
type couchDBClient struct {
	goutils.Component
	client   *resty.Client
	database string
	timeout  time.Duration
}

// couchDBWriteResponse CouchDB response to a document write
type couchDBWriteResponse struct {
	OK  bool   `json:"ok"`
	ID  string `json:"id"`
	Rev string `json:"rev"`
}

// couchDBAllDocsResponse CouchDB `_all_docs` response
type couchDBAllDocsResponse struct {
	Rows []struct {
		ID  string          `json:"id"`
		Doc json.RawMessage `json:"doc"`
	} `json:"rows"`
}

/*
NewCouchDBClient define a new CouchDB document store client

	@param params CouchDBParams - connection parameters
	@return new client
*/
func NewCouchDBClient(params CouchDBParams) (Client, error) {
	validate := validator.New()
	if err := validate.Struct(&params); err != nil {
		return nil, fmt.Errorf("invalid CouchDB connection parameters [%w]", err)
	}

	logTags := log.Fields{
		"module": "db", "component": "couchdb-client", "database": params.Database,
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}

	var restClient *resty.Client
	if params.HTTPClient != nil {
		restClient = resty.NewWithClient(params.HTTPClient)
	} else {
		restClient = resty.New()
	}
	restClient.
		SetBaseURL(strings.TrimRight(params.BaseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if params.Username != "" {
		restClient.SetBasicAuth(params.Username, params.Password)
	}

	return &couchDBClient{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		client:   restClient,
		database: params.Database,
		timeout:  timeout,
	}, nil
}

// DatabaseName the database this client operates on
func (c *couchDBClient) DatabaseName() string {
	return c.database
}

func (c *couchDBClient) request(ctx context.Context) *resty.Request {
	return c.client.R().SetContext(ctx).SetPathParam("db", c.database)
}

/*
CreateDatabase create the database. Creating an existing database is not an error.

	@param ctx context.Context - execution context
*/
func (c *couchDBClient) CreateDatabase(ctx context.Context) error {
	callCtx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	resp, err := c.request(callCtx).Put("/{db}")
	if err != nil {
		return storeFailure("create database", err)
	}
	if resp.StatusCode() == http.StatusPreconditionFailed {
		log.WithFields(c.GetLogTagsForContext(ctx)).Debug("Database already exists")
		return nil
	}
	return c.checkStatus("create database", resp)
}

/*
DeleteDatabase delete the database along with all of its documents

	@param ctx context.Context - execution context
*/
func (c *couchDBClient) DeleteDatabase(ctx context.Context) error {
	callCtx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	resp, err := c.request(callCtx).Delete("/{db}")
	if err != nil {
		return storeFailure("delete database", err)
	}
	return c.checkStatus("delete database", resp)
}

/*
PutDocument create a new document at the given ID

	@param ctx context.Context - execution context
	@param id string - document ID
	@param body []byte - document JSON body
	@return the new revision token
*/
func (c *couchDBClient) PutDocument(ctx context.Context, id string, body []byte) (string, error) {
	return c.writeDocument(ctx, id, "", body)
}

/*
UpdateDocument overwrite a document, guarded by its current revision

	@param ctx context.Context - execution context
	@param id string - document ID
	@param revision string - the revision the update is based on
	@param body []byte - new document JSON body
	@return the new revision token
*/
func (c *couchDBClient) UpdateDocument(
	ctx context.Context, id, revision string, body []byte,
) (string, error) {
	if revision == "" {
		return "", fmt.Errorf("update of '%s' requires a revision [%w]", id, models.ErrConflict)
	}
	return c.writeDocument(ctx, id, revision, body)
}

func (c *couchDBClient) writeDocument(
	ctx context.Context, id, revision string, body []byte,
) (string, error) {
	callCtx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	var written couchDBWriteResponse
	req := c.request(callCtx).
		SetPathParam("id", id).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&written)
	if revision != "" {
		req = req.SetQueryParam("rev", revision)
	}

	op := fmt.Sprintf("write document '%s'", id)
	resp, err := req.Put("/{db}/{id}")
	if err != nil {
		return "", storeFailure(op, err)
	}
	if err := c.checkStatus(op, resp); err != nil {
		return "", err
	}
	return written.Rev, nil
}

/*
GetDocument fetch a document by ID

	@param ctx context.Context - execution context
	@param id string - document ID
	@return the document along with its current revision
*/
func (c *couchDBClient) GetDocument(ctx context.Context, id string) (Document, error) {
	callCtx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	op := fmt.Sprintf("get document '%s'", id)
	resp, err := c.request(callCtx).SetPathParam("id", id).Get("/{db}/{id}")
	if err != nil {
		return Document{}, storeFailure(op, err)
	}
	if err := c.checkStatus(op, resp); err != nil {
		return Document{}, err
	}

	var meta struct {
		Rev string `json:"_rev"`
	}
	body := resp.Body()
	if err := json.Unmarshal(body, &meta); err != nil {
		return Document{}, storeFailure(op, err)
	}
	return Document{ID: id, Revision: meta.Rev, Body: json.RawMessage(body)}, nil
}

/*
DeleteDocumentRevision delete a document, guarded by its current revision

	@param ctx context.Context - execution context
	@param id string - document ID
	@param revision string - the revision being deleted
*/
func (c *couchDBClient) DeleteDocumentRevision(ctx context.Context, id, revision string) error {
	callCtx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	op := fmt.Sprintf("delete document '%s'", id)
	resp, err := c.request(callCtx).
		SetPathParam("id", id).
		SetQueryParam("rev", revision).
		Delete("/{db}/{id}")
	if err != nil {
		return storeFailure(op, err)
	}
	return c.checkStatus(op, resp)
}

/*
ListDocuments fetch every document in the database, including bodies. Design documents
are skipped.

	@param ctx context.Context - execution context
	@return list of documents
*/
func (c *couchDBClient) ListDocuments(ctx context.Context) ([]Document, error) {
	callCtx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	var listing couchDBAllDocsResponse
	resp, err := c.request(callCtx).
		SetQueryParam("include_docs", "true").
		SetResult(&listing).
		Get("/{db}/_all_docs")
	if err != nil {
		return nil, storeFailure("list documents", err)
	}
	if err := c.checkStatus("list documents", resp); err != nil {
		return nil, err
	}

	result := make([]Document, 0, len(listing.Rows))
	for _, row := range listing.Rows {
		if strings.HasPrefix(row.ID, "_design/") {
			continue
		}
		if len(row.Doc) == 0 || string(row.Doc) == "null" {
			continue
		}
		var meta struct {
			Rev string `json:"_rev"`
		}
		if err := json.Unmarshal(row.Doc, &meta); err != nil {
			return nil, storeFailure(fmt.Sprintf("decode listed document '%s'", row.ID), err)
		}
		result = append(result, Document{ID: row.ID, Revision: meta.Rev, Body: row.Doc})
	}
	return result, nil
}

// checkStatus map a non-success CouchDB response onto the error taxonomy
func (c *couchDBClient) checkStatus(op string, resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	var class error
	switch resp.StatusCode() {
	case http.StatusNotFound:
		class = models.ErrNotFound
	case http.StatusConflict, http.StatusPreconditionFailed:
		class = models.ErrConflict
	default:
		class = models.ErrStore
	}
	return fmt.Errorf(
		"couchdb %s returned %d: %s [%w]",
		op,
		resp.StatusCode(),
		strings.TrimSpace(resp.String()),
		class,
	)
}

// storeFailure wrap a transport level failure
func storeFailure(op string, err error) error {
	return fmt.Errorf("couchdb %s failed [%w]", op, errors.Join(models.ErrStore, err))
}
