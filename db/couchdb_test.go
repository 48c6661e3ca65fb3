package db_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alwitt/herbtrace/db"
	"github.com/alwitt/herbtrace/models"
	"github.com/apex/log"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
)

const testCouchURL = "http://couchdb.unit-test:5984"

func defineMockedCouchDB(t *testing.T) db.Client {
	httpClient := &http.Client{}
	httpmock.ActivateNonDefault(httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	uut, err := db.NewCouchDBClient(db.CouchDBParams{
		BaseURL:    testCouchURL,
		Username:   "admin",
		Password:   "secret",
		Database:   "herbs_ut",
		Timeout:    time.Second,
		HTTPClient: httpClient,
	})
	assert.Nil(t, err)
	return uut
}

func TestCouchDBClientParams(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	_, err := db.NewCouchDBClient(db.CouchDBParams{BaseURL: "not a url", Database: "herbs"})
	assert.NotNil(err)

	_, err = db.NewCouchDBClient(db.CouchDBParams{BaseURL: testCouchURL})
	assert.NotNil(err)

	uut, err := db.NewCouchDBClient(db.CouchDBParams{BaseURL: testCouchURL + "/", Database: "herbs"})
	assert.Nil(err)
	assert.Equal("herbs", uut.DatabaseName())
}

func TestCouchDBClientDatabaseLifecycle(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	uut := defineMockedCouchDB(t)

	// Case 0: fresh create
	httpmock.RegisterResponder(
		"PUT", testCouchURL+"/herbs_ut",
		func(req *http.Request) (*http.Response, error) {
			user, pass, ok := req.BasicAuth()
			assert.True(ok)
			assert.Equal("admin", user)
			assert.Equal("secret", pass)
			return httpmock.NewStringResponse(http.StatusCreated, `{"ok":true}`), nil
		},
	)
	assert.Nil(uut.CreateDatabase(utCtx))

	// Case 1: create of an existing database is not an error
	httpmock.RegisterResponder(
		"PUT", testCouchURL+"/herbs_ut",
		httpmock.NewStringResponder(
			http.StatusPreconditionFailed,
			`{"error":"file_exists","reason":"The database could not be created, the file already exists."}`,
		),
	)
	assert.Nil(uut.CreateDatabase(utCtx))

	// Case 2: delete a missing database
	httpmock.RegisterResponder(
		"DELETE", testCouchURL+"/herbs_ut",
		httpmock.NewStringResponder(
			http.StatusNotFound, `{"error":"not_found","reason":"Database does not exist."}`,
		),
	)
	err := uut.DeleteDatabase(utCtx)
	assert.ErrorIs(err, models.ErrNotFound)
	// Dropping tolerates the missing database
	assert.Nil(db.DropDatabase(utCtx, uut))

	// Case 3: reset survives the failed delete
	assert.Nil(db.ResetDatabase(utCtx, uut))

	// Case 4: server failure on create
	httpmock.RegisterResponder(
		"PUT", testCouchURL+"/herbs_ut",
		httpmock.NewStringResponder(http.StatusInternalServerError, `{"error":"unknown"}`),
	)
	err = db.ResetDatabase(utCtx, uut)
	assert.ErrorIs(err, models.ErrStore)
	assert.NotErrorIs(err, models.ErrNotFound)
}

func TestCouchDBClientDocumentOperations(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	uut := defineMockedCouchDB(t)

	type testDoc struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	}

	docURL := testCouchURL + "/herbs_ut/doc_1"

	// Case 0: create a new document
	httpmock.RegisterResponder(
		"PUT", docURL,
		func(req *http.Request) (*http.Response, error) {
			assert.Empty(req.URL.Query().Get("rev"))
			assert.Equal("application/json", req.Header.Get("Content-Type"))
			return httpmock.NewJsonResponse(
				http.StatusCreated, map[string]any{"ok": true, "id": "doc_1", "rev": "1-aaa"},
			)
		},
	)
	rev, err := db.Put(utCtx, uut, "doc_1", testDoc{ID: "doc_1", Value: "<a&b>"})
	assert.Nil(err)
	assert.Equal("1-aaa", rev)

	// Case 1: create collides with an existing document
	httpmock.RegisterResponder(
		"PUT", docURL,
		httpmock.NewStringResponder(
			http.StatusConflict, `{"error":"conflict","reason":"Document update conflict."}`,
		),
	)
	_, err = db.Put(utCtx, uut, "doc_1", testDoc{ID: "doc_1"})
	assert.ErrorIs(err, models.ErrConflict)
	assert.ErrorIs(err, models.ErrStore)

	// Case 2: read back the document
	httpmock.RegisterResponder(
		"GET", docURL,
		httpmock.NewStringResponder(
			http.StatusOK, `{"_id":"doc_1","_rev":"1-aaa","id":"doc_1","value":"<a&b>"}`,
		),
	)
	doc, rev, err := db.GetWithRevision[testDoc](utCtx, uut, "doc_1")
	assert.Nil(err)
	assert.Equal("1-aaa", rev)
	assert.Equal(testDoc{ID: "doc_1", Value: "<a&b>"}, doc)

	// Case 3: update at the current revision
	httpmock.RegisterResponder(
		"PUT", docURL,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal("1-aaa", req.URL.Query().Get("rev"))
			return httpmock.NewJsonResponse(
				http.StatusCreated, map[string]any{"ok": true, "id": "doc_1", "rev": "2-bbb"},
			)
		},
	)
	rev, err = db.Update(utCtx, uut, "doc_1", "1-aaa", testDoc{ID: "doc_1", Value: "new"})
	assert.Nil(err)
	assert.Equal("2-bbb", rev)

	// Case 4: update without a revision is refused locally
	_, err = uut.UpdateDocument(utCtx, "doc_1", "", []byte(`{}`))
	assert.ErrorIs(err, models.ErrConflict)

	// Case 5: delete reads the revision first
	httpmock.RegisterResponder(
		"DELETE", docURL,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal("1-aaa", req.URL.Query().Get("rev"))
			return httpmock.NewJsonResponse(
				http.StatusOK, map[string]any{"ok": true, "id": "doc_1", "rev": "2-ccc"},
			)
		},
	)
	assert.Nil(db.Delete(utCtx, uut, "doc_1"))

	// Case 6: missing document
	httpmock.RegisterResponder(
		"GET", testCouchURL+"/herbs_ut/doc_2",
		httpmock.NewStringResponder(
			http.StatusNotFound, `{"error":"not_found","reason":"missing"}`,
		),
	)
	_, err = db.Get[testDoc](utCtx, uut, "doc_2")
	assert.ErrorIs(err, models.ErrNotFound)
	assert.ErrorIs(db.Delete(utCtx, uut, "doc_2"), models.ErrNotFound)

	// Case 7: failure to read the revision is reported as not found
	httpmock.RegisterResponder(
		"GET", testCouchURL+"/herbs_ut/doc_3",
		httpmock.NewStringResponder(http.StatusInternalServerError, `{"error":"unknown"}`),
	)
	assert.ErrorIs(db.Delete(utCtx, uut, "doc_3"), models.ErrNotFound)
}

func TestCouchDBClientListDocuments(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	uut := defineMockedCouchDB(t)

	type testDoc struct {
		ID string `json:"id"`
	}

	// Case 0: empty database
	httpmock.RegisterResponder(
		"GET", testCouchURL+"/herbs_ut/_all_docs",
		httpmock.NewStringResponder(http.StatusOK, `{"total_rows":0,"offset":0,"rows":[]}`),
	)
	docs, err := db.ListAll[testDoc](utCtx, uut)
	assert.Nil(err)
	assert.NotNil(docs)
	assert.Empty(docs)

	// Case 1: design documents are skipped
	httpmock.RegisterResponder(
		"GET", testCouchURL+"/herbs_ut/_all_docs",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal("true", req.URL.Query().Get("include_docs"))
			return httpmock.NewStringResponse(http.StatusOK, `{"total_rows":3,"offset":0,"rows":[
{"id":"_design/views","key":"_design/views","value":{"rev":"1-d"},"doc":{"_id":"_design/views","_rev":"1-d"}},
{"id":"a","key":"a","value":{"rev":"1-a"},"doc":{"_id":"a","_rev":"1-a","id":"a"}},
{"id":"b","key":"b","value":{"rev":"3-b"},"doc":{"_id":"b","_rev":"3-b","id":"b"}}
]}`), nil
		},
	)
	raw, err := uut.ListDocuments(utCtx)
	assert.Nil(err)
	assert.Len(raw, 2)
	assert.Equal("1-a", raw[0].Revision)
	assert.Equal("3-b", raw[1].Revision)
	docs, err = db.ListAll[testDoc](utCtx, uut)
	assert.Nil(err)
	assert.Equal([]testDoc{{ID: "a"}, {ID: "b"}}, docs)

	// Case 2: one undecodable document fails the listing
	httpmock.RegisterResponder(
		"GET", testCouchURL+"/herbs_ut/_all_docs",
		httpmock.NewStringResponder(http.StatusOK, `{"rows":[
{"id":"a","doc":{"_id":"a","_rev":"1-a","id":"a"}},
{"id":"c","doc":{"_id":"c","_rev":"1-c","id":42}}
]}`),
	)
	_, err = db.ListAll[testDoc](utCtx, uut)
	assert.ErrorIs(err, models.ErrStore)

	// Case 3: server failure
	httpmock.RegisterResponder(
		"GET", testCouchURL+"/herbs_ut/_all_docs",
		httpmock.NewStringResponder(http.StatusUnauthorized, `{"error":"unauthorized"}`),
	)
	_, err = db.ListAll[testDoc](utCtx, uut)
	assert.ErrorIs(err, models.ErrStore)
	assert.Equal(5, httpmock.GetTotalCallCount())
}

func TestCouchDBClientTimeout(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	defer close(release)

	uut, err := db.NewCouchDBClient(db.CouchDBParams{
		BaseURL: server.URL, Database: "herbs_ut", Timeout: time.Millisecond * 100,
	})
	assert.Nil(err)

	start := time.Now()
	_, err = uut.GetDocument(context.Background(), "slow")
	assert.ErrorIs(err, models.ErrStore)
	assert.NotErrorIs(err, models.ErrNotFound)
	assert.Less(time.Since(start), time.Second*5)
	log.WithError(err).Debugf("Timed out after %s", time.Since(start))
}
