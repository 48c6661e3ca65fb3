package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alwitt/goutils"
	"github.com/alwitt/herbtrace/models"
	"github.com/apex/log"
	"github.com/oklog/ulid/v2"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
GetSqliteDialector define Sqlite GORM dialector

	@param dbFile string - Sqlite DB file
	@return GORM sqlite dialector
*/
func GetSqliteDialector(dbFile string) gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("%s?_foreign_keys=on", dbFile))
}

// embeddedClient implements Client on top of a SQL database through GORM.
//
// It follows the CouchDB revision rules so it can stand in for CouchDB during local
// development and testing.
type embeddedClient struct {
	goutils.Component
	db       *gorm.DB
	database string
	timeout  time.Duration
}

/*
NewEmbeddedClient define a new embedded document store client

	@param dbDialector gorm.Dialector - GORM dialector
	@param dbLogLevel logger.LogLevel - SQL log level
	@param database string - database name; one table per database
	@param timeout time.Duration - bound on each call
	@return new client
*/
func NewEmbeddedClient(
	dbDialector gorm.Dialector, dbLogLevel logger.LogLevel, database string, timeout time.Duration,
) (Client, error) {
	if strings.TrimSpace(database) == "" {
		return nil, fmt.Errorf("embedded document store requires a database name")
	}

	logTags := log.Fields{"module": "db", "component": "embedded-client", "database": database}

	db, err := gorm.Open(dbDialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(dbLogLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect with DB [%w]", err)
	}

	return &embeddedClient{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		db:       db,
		database: database,
		timeout:  timeout,
	}, nil
}

// DatabaseName the database this client operates on
func (c *embeddedClient) DatabaseName() string {
	return c.database
}

// table scope a query to this client's database table
func (c *embeddedClient) table(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx).Table(c.database)
}

/*
CreateDatabase create the database. Creating an existing database is not an error.

	@param ctx context.Context - execution context
*/
func (c *embeddedClient) CreateDatabase(ctx context.Context) error {
	callCtx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	if err := c.table(callCtx).AutoMigrate(&DocumentEntry{}); err != nil {
		return sqlFailure("create database", err)
	}
	return nil
}

/*
DeleteDatabase delete the database along with all of its documents

	@param ctx context.Context - execution context
*/
func (c *embeddedClient) DeleteDatabase(ctx context.Context) error {
	callCtx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	migrator := c.db.WithContext(callCtx).Migrator()
	if !migrator.HasTable(c.database) {
		return fmt.Errorf("database '%s' does not exist [%w]", c.database, models.ErrNotFound)
	}
	if err := migrator.DropTable(c.database); err != nil {
		return sqlFailure("delete database", err)
	}
	return nil
}

/*
PutDocument create a new document at the given ID

	@param ctx context.Context - execution context
	@param id string - document ID
	@param body []byte - document JSON body
	@return the new revision token
*/
func (c *embeddedClient) PutDocument(ctx context.Context, id string, body []byte) (string, error) {
	callCtx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	newEntry := DocumentEntry{ID: id, Revision: nextRevision(""), Body: datatypes.JSON(body)}
	err := c.db.WithContext(callCtx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if tmp := tx.Table(c.database).Where("id = ?", id).Count(&count); tmp.Error != nil {
			return sqlFailure(fmt.Sprintf("check document '%s'", id), tmp.Error)
		}
		if count > 0 {
			return fmt.Errorf("document '%s' already exists [%w]", id, models.ErrConflict)
		}
		if tmp := tx.Table(c.database).Create(&newEntry); tmp.Error != nil {
			return sqlFailure(fmt.Sprintf("insert document '%s'", id), tmp.Error)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return newEntry.Revision, nil
}

/*
GetDocument fetch a document by ID

	@param ctx context.Context - execution context
	@param id string - document ID
	@return the document along with its current revision
*/
func (c *embeddedClient) GetDocument(ctx context.Context, id string) (Document, error) {
	callCtx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	entry, err := c.getEntry(callCtx, id)
	if err != nil {
		return Document{}, err
	}
	return Document{ID: entry.ID, Revision: entry.Revision, Body: []byte(entry.Body)}, nil
}

// getEntry find a document entry by ID
func (c *embeddedClient) getEntry(ctx context.Context, id string) (DocumentEntry, error) {
	var entry DocumentEntry
	err := c.table(ctx).Where("id = ?", id).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entry, fmt.Errorf("document '%s' does not exist [%w]", id, models.ErrNotFound)
	} else if err != nil {
		return entry, sqlFailure(fmt.Sprintf("get document '%s'", id), err)
	}
	return entry, nil
}

/*
UpdateDocument overwrite a document, guarded by its current revision

	@param ctx context.Context - execution context
	@param id string - document ID
	@param revision string - the revision the update is based on
	@param body []byte - new document JSON body
	@return the new revision token
*/
func (c *embeddedClient) UpdateDocument(
	ctx context.Context, id, revision string, body []byte,
) (string, error) {
	callCtx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	newRevision := nextRevision(revision)
	tmp := c.table(callCtx).
		Where("id = ? AND rev = ?", id, revision).
		Updates(map[string]interface{}{
			"rev":        newRevision,
			"body":       datatypes.JSON(body),
			"updated_at": time.Now().UTC(),
		})
	if tmp.Error != nil {
		return "", sqlFailure(fmt.Sprintf("update document '%s'", id), tmp.Error)
	}
	if tmp.RowsAffected == 0 {
		return "", c.explainMiss(callCtx, id, revision)
	}
	return newRevision, nil
}

/*
DeleteDocumentRevision delete a document, guarded by its current revision

	@param ctx context.Context - execution context
	@param id string - document ID
	@param revision string - the revision being deleted
*/
func (c *embeddedClient) DeleteDocumentRevision(ctx context.Context, id, revision string) error {
	callCtx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	tmp := c.table(callCtx).Where("id = ? AND rev = ?", id, revision).Delete(&DocumentEntry{})
	if tmp.Error != nil {
		return sqlFailure(fmt.Sprintf("delete document '%s'", id), tmp.Error)
	}
	if tmp.RowsAffected == 0 {
		return c.explainMiss(callCtx, id, revision)
	}
	return nil
}

// explainMiss decide why a revision guarded write matched no rows
func (c *embeddedClient) explainMiss(ctx context.Context, id, revision string) error {
	if _, err := c.getEntry(ctx, id); err != nil {
		return err
	}
	log.WithFields(c.GetLogTagsForContext(ctx)).
		WithField("document", id).
		WithField("revision", revision).
		Debug("Stale revision")
	return fmt.Errorf("document '%s' revision '%s' is stale [%w]", id, revision, models.ErrConflict)
}

/*
ListDocuments fetch every document in the database, ordered by ID

	@param ctx context.Context - execution context
	@return list of documents
*/
func (c *embeddedClient) ListDocuments(ctx context.Context) ([]Document, error) {
	callCtx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	var entries []DocumentEntry
	if tmp := c.table(callCtx).Order("id").Find(&entries); tmp.Error != nil {
		return nil, sqlFailure("list documents", tmp.Error)
	}

	result := make([]Document, 0, len(entries))
	for _, entry := range entries {
		result = append(
			result, Document{ID: entry.ID, Revision: entry.Revision, Body: []byte(entry.Body)},
		)
	}
	return result, nil
}

// nextRevision produce the revision following the given one, in `<generation>-<hex>` form
func nextRevision(current string) string {
	generation := 0
	if idx := strings.Index(current, "-"); idx > 0 {
		if parsed, err := strconv.Atoi(current[:idx]); err == nil {
			generation = parsed
		}
	}
	return fmt.Sprintf("%d-%s", generation+1, strings.ToLower(ulid.Make().String()))
}

// sqlFailure wrap a SQL level failure
func sqlFailure(op string, err error) error {
	return fmt.Errorf("embedded %s failed [%w]", op, errors.Join(models.ErrStore, err))
}
