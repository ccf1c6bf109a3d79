// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textisbeautiful/tib/services/feedback"
)

func feedbackRouter(t *testing.T) (*gin.Engine, *feedback.Store) {
	t.Helper()
	store, err := feedback.Open(feedback.Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	router := gin.New()
	router.POST("/v1/feedback", Feedback(store))
	return router, store
}

func TestFeedbackPersistsSubmission(t *testing.T) {
	router, store := feedbackRouter(t)

	w := postJSON(t, router, "/v1/feedback", map[string]string{
		"like":    "The colours",
		"dislike": "The wait",
		"name":    "Ada",
		"email":   "ada@example.com",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	records, err := store.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "The colours", records[0].Like)
	assert.Equal(t, "The wait", records[0].Dislike)
}

func TestFeedbackRequiresSomeContent(t *testing.T) {
	router, store := feedbackRouter(t)

	w := postJSON(t, router, "/v1/feedback", map[string]string{
		"name": "Ada",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	records, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFeedbackRejectsBadEmail(t *testing.T) {
	router, _ := feedbackRouter(t)

	w := postJSON(t, router, "/v1/feedback", map[string]string{
		"like":  "Everything",
		"email": "nope",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeedbackAnonymousIsFine(t *testing.T) {
	router, store := feedbackRouter(t)

	w := postJSON(t, router, "/v1/feedback", map[string]string{
		"like": "Anonymity",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	records, err := store.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Email)
}
