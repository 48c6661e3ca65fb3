package models_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alwitt/herbtrace/models"
	"github.com/stretchr/testify/assert"
)

func TestHerbIDDeterminism(t *testing.T) {
	assert := assert.New(t)

	id1 := models.HerbID("Basil", "Alice")
	id2 := models.HerbID("Basil", "Alice")
	assert.Equal(id1, id2)
	assert.True(models.IsHerbID(id1))
	assert.True(strings.HasPrefix(id1, models.HerbIDPrefix))

	// Different pairs map to different IDs
	assert.NotEqual(id1, models.HerbID("Basil", "Bob"))
	assert.NotEqual(id1, models.HerbID("Mint", "Alice"))

	// Order sensitive
	assert.NotEqual(models.HerbID("a", "b"), models.HerbID("b", "a"))

	// Field boundaries matter
	assert.NotEqual(models.HerbID("ab", "c"), models.HerbID("a", "bc"))

	assert.False(models.IsHerbID("herb_"))
	assert.False(models.IsHerbID("herb_XYZ"))
	assert.False(models.IsHerbID("basil"))
}

func TestNewHerbRequestValidation(t *testing.T) {
	assert := assert.New(t)

	v, err := models.NewValidator()
	assert.Nil(err)

	type testCase struct {
		req      models.NewHerbRequest
		valid    bool
		errorMsg string
	}

	testCases := []testCase{
		{
			req:   models.NewHerbRequest{Name: "Basil", Farmer: "Alice", Location: "Field 1"},
			valid: true,
		},
		{
			req: models.NewHerbRequest{
				Name:     strings.Repeat("n", 100),
				Farmer:   strings.Repeat("f", 100),
				Location: strings.Repeat("l", 200),
			},
			valid: true,
		},
		{
			req: models.NewHerbRequest{
				Name: strings.Repeat("n", 101), Farmer: "Alice", Location: "Field 1",
			},
			errorMsg: "name too long (max 100)",
		},
		{
			req: models.NewHerbRequest{
				Name: "Basil", Farmer: strings.Repeat("f", 101), Location: "Field 1",
			},
			errorMsg: "farmer too long (max 100)",
		},
		{
			req: models.NewHerbRequest{
				Name: "Basil", Farmer: "Alice", Location: strings.Repeat("l", 201),
			},
			errorMsg: "location too long (max 200)",
		},
		{
			req:      models.NewHerbRequest{Name: "   ", Farmer: "Alice", Location: "Field 1"},
			errorMsg: "name is required",
		},
		{
			req:      models.NewHerbRequest{Name: "Basil", Farmer: "\t\n", Location: "Field 1"},
			errorMsg: "farmer is required",
		},
		{
			req:      models.NewHerbRequest{Name: "Basil", Farmer: "Alice"},
			errorMsg: "location is required",
		},
		{
			// Multi-byte characters count once each
			req: models.NewHerbRequest{
				Name: strings.Repeat("é", 100), Farmer: "Alice", Location: "Field 1",
			},
			valid: true,
		},
	}

	for idx, oneTest := range testCases {
		req := oneTest.req
		req.Normalize()
		err := models.ValidateStruct(v, &req)
		if oneTest.valid {
			assert.Nilf(err, "case %d", idx)
			continue
		}
		assert.Errorf(err, "case %d", idx)
		assert.True(errors.Is(err, models.ErrValidation))
		assert.Equalf(oneTest.errorMsg, err.Error(), "case %d", idx)
	}
}

func TestHerbUpdateRequestValidation(t *testing.T) {
	assert := assert.New(t)

	v, err := models.NewValidator()
	assert.Nil(err)

	strPtr := func(s string) *string { return &s }

	// Case 0: nothing supplied
	{
		req := models.HerbUpdateRequest{}
		req.Normalize()
		assert.Nil(models.ValidateStruct(v, &req))
	}

	// Case 1: only location supplied
	{
		req := models.HerbUpdateRequest{Location: strPtr("  Field 2  ")}
		req.Normalize()
		assert.Nil(models.ValidateStruct(v, &req))
		assert.Equal("Field 2", *req.Location)
	}

	// Case 2: blank name
	{
		req := models.HerbUpdateRequest{Name: strPtr("   ")}
		req.Normalize()
		err := models.ValidateStruct(v, &req)
		assert.True(errors.Is(err, models.ErrValidation))
		assert.Equal("name is required", err.Error())
	}

	// Case 3: oversized location
	{
		req := models.HerbUpdateRequest{Location: strPtr(strings.Repeat("l", 201))}
		req.Normalize()
		err := models.ValidateStruct(v, &req)
		assert.True(errors.Is(err, models.ErrValidation))
	}

	// Case 4: boundary farmer
	{
		req := models.HerbUpdateRequest{Farmer: strPtr(strings.Repeat("f", 100))}
		req.Normalize()
		assert.Nil(models.ValidateStruct(v, &req))
	}
}

func TestHerbUpdateApplyPreservesIdentity(t *testing.T) {
	assert := assert.New(t)

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	herb := models.Herb{
		ID:        models.HerbID("Basil", "Alice"),
		Name:      "Basil",
		Farmer:    "Alice",
		Location:  "Field 1",
		CreatedAt: created,
	}
	original := herb

	newLocation := "X"
	models.HerbUpdateRequest{Location: &newLocation}.ApplyTo(&herb)

	assert.Equal(original.ID, herb.ID)
	assert.Equal(created, herb.CreatedAt)
	assert.Equal(original.Name, herb.Name)
	assert.Equal(original.Farmer, herb.Farmer)
	assert.Equal("X", herb.Location)
}

func TestHerbDocumentValidation(t *testing.T) {
	assert := assert.New(t)

	v, err := models.NewValidator()
	assert.Nil(err)

	herb := models.Herb{
		ID:        models.HerbID("Basil", "Alice"),
		Name:      "Basil",
		Farmer:    "Alice",
		Location:  "Field 1",
		CreatedAt: time.Now().UTC(),
	}
	assert.Nil(v.Struct(&herb))

	herb.ID = "not-a-herb"
	assert.Error(v.Struct(&herb))
}
