// Package store - herb record controller
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alwitt/goutils"
	"github.com/alwitt/herbtrace/db"
	"github.com/alwitt/herbtrace/models"
	"github.com/alwitt/herbtrace/qr"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
)

// HerbStore manages herb provenance records held in the document store
type HerbStore interface {
	/*
		AddHerb define a new herb record. Defining the same name and farmer again returns the
		existing record.

			@param ctx context.Context - execution context
			@param params models.NewHerbRequest - new record parameters
			@returns the record, and whether it was newly created
	*/
	AddHerb(ctx context.Context, params models.NewHerbRequest) (models.Herb, bool, error)

	/*
		GetHerb fetch a herb record

			@param ctx context.Context - execution context
			@param id string - record ID
			@returns the record
	*/
	GetHerb(ctx context.Context, id string) (models.Herb, error)

	/*
		ListHerbs fetch every herb record

			@param ctx context.Context - execution context
			@returns the records
	*/
	ListHerbs(ctx context.Context) ([]models.Herb, error)

	/*
		UpdateHerb apply a partial update to a herb record

			@param ctx context.Context - execution context
			@param id string - record ID
			@param params models.HerbUpdateRequest - fields to change
			@returns the updated record
	*/
	UpdateHerb(ctx context.Context, id string, params models.HerbUpdateRequest) (models.Herb, error)

	/*
		DeleteHerb delete a herb record

			@param ctx context.Context - execution context
			@param id string - record ID
	*/
	DeleteHerb(ctx context.Context, id string) error

	/*
		ScanHerb fetch the herb record referenced by scanned QR text

			@param ctx context.Context - execution context
			@param scanned string - scanned text: URL, JSON, or record ID
			@returns the record
	*/
	ScanHerb(ctx context.Context, scanned string) (models.Herb, error)

	/*
		ResetStorage drop and re-create the record database

			@param ctx context.Context - execution context
	*/
	ResetStorage(ctx context.Context) error
}

// herbStore implements HerbStore
type herbStore struct {
	goutils.Component

	persistence db.Client

	validate *validator.Validate

	now func() time.Time
}

/*
NewHerbStore define new herb record controller

	@param persistence db.Client - document store client
	@param clock func() time.Time - source of record creation times; nil for wall clock
	@returns store instance
*/
func NewHerbStore(persistence db.Client, clock func() time.Time) (HerbStore, error) {
	logTags := log.Fields{
		"module": "store", "component": "herb-store", "database": persistence.DatabaseName(),
	}

	validate, err := models.NewValidator()
	if err != nil {
		return nil, err
	}

	if clock == nil {
		clock = time.Now
	}

	return &herbStore{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		persistence: persistence,
		validate:    validate,
		now:         clock,
	}, nil
}

func (s *herbStore) AddHerb(
	ctx context.Context, params models.NewHerbRequest,
) (models.Herb, bool, error) {
	logtags := s.GetLogTagsForContext(ctx)

	params.Normalize()
	if err := models.ValidateStruct(s.validate, &params); err != nil {
		return models.Herb{}, false, err
	}

	newHerb := models.Herb{
		ID:        models.HerbID(params.Name, params.Farmer),
		Name:      params.Name,
		Farmer:    params.Farmer,
		Location:  params.Location,
		CreatedAt: s.now().UTC().Truncate(time.Second),
	}
	if err := models.ValidateStruct(s.validate, &newHerb); err != nil {
		return models.Herb{}, false, err
	}

	_, putErr := db.Put(ctx, s.persistence, newHerb.ID, newHerb)
	if putErr == nil {
		log.WithFields(logtags).WithField("herb", newHerb.ID).Info("Defined new herb")
		return newHerb, true, nil
	}

	// The record may already exist
	existing, err := db.Get[models.Herb](ctx, s.persistence, newHerb.ID)
	if err != nil {
		log.
			WithError(errors.Join(putErr, err)).
			WithFields(logtags).
			WithField("herb", newHerb.ID).
			Error("Failed to define new herb")
		return models.Herb{}, false, fmt.Errorf(
			"failed to define herb '%s' [%w]", newHerb.ID, errors.Join(putErr, err),
		)
	}

	log.WithError(putErr).WithFields(logtags).WithField("herb", newHerb.ID).Debug("Herb already defined")
	return existing, false, nil
}

func (s *herbStore) GetHerb(ctx context.Context, id string) (models.Herb, error) {
	herb, err := db.Get[models.Herb](ctx, s.persistence, id)
	if err != nil {
		return models.Herb{}, fmt.Errorf("failed to read herb '%s' [%w]", id, err)
	}
	return herb, nil
}

func (s *herbStore) ListHerbs(ctx context.Context) ([]models.Herb, error) {
	herbs, err := db.ListAll[models.Herb](ctx, s.persistence)
	if err != nil {
		return nil, fmt.Errorf("failed to list herbs [%w]", err)
	}
	return herbs, nil
}

func (s *herbStore) UpdateHerb(
	ctx context.Context, id string, params models.HerbUpdateRequest,
) (models.Herb, error) {
	logtags := s.GetLogTagsForContext(ctx)

	params.Normalize()
	if err := models.ValidateStruct(s.validate, &params); err != nil {
		return models.Herb{}, err
	}

	herb, revision, err := db.GetWithRevision[models.Herb](ctx, s.persistence, id)
	if err != nil {
		return models.Herb{}, fmt.Errorf("failed to read herb '%s' [%w]", id, err)
	}

	params.ApplyTo(&herb)

	if _, err := db.Update(ctx, s.persistence, id, revision, herb); err != nil {
		log.WithError(err).WithFields(logtags).WithField("herb", id).Error("Herb update failed")
		return models.Herb{}, fmt.Errorf("failed to update herb '%s' [%w]", id, err)
	}

	log.WithFields(logtags).WithField("herb", id).Info("Updated herb")
	return herb, nil
}

func (s *herbStore) DeleteHerb(ctx context.Context, id string) error {
	if err := db.Delete(ctx, s.persistence, id); err != nil {
		return fmt.Errorf("failed to delete herb '%s' [%w]", id, err)
	}
	log.WithFields(s.GetLogTagsForContext(ctx)).WithField("herb", id).Info("Deleted herb")
	return nil
}

func (s *herbStore) ScanHerb(ctx context.Context, scanned string) (models.Herb, error) {
	id, err := qr.ResolveScannedID(scanned)
	if err != nil {
		return models.Herb{}, err
	}
	log.WithFields(s.GetLogTagsForContext(ctx)).WithField("herb", id).Debug("Resolved scanned text")
	return s.GetHerb(ctx, id)
}

func (s *herbStore) ResetStorage(ctx context.Context) error {
	if err := db.ResetDatabase(ctx, s.persistence); err != nil {
		return err
	}
	log.WithFields(s.GetLogTagsForContext(ctx)).Info("Reset herb storage")
	return nil
}
