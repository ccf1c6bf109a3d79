// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/textisbeautiful/tib/pkg/validation"
	"github.com/textisbeautiful/tib/services/feedback"
)

type FeedbackRequest struct {
	Like    string `json:"like"`
	Dislike string `json:"dislike"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// Feedback persists a feedback submission. Name and email are optional but
// at least one of the free-text fields must be filled in.
func Feedback(store *feedback.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FeedbackRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if req.Like == "" && req.Dislike == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tell us something you liked or disliked"})
			return
		}
		if err := validation.ValidateEmail(req.Email); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		record, err := store.Save(feedback.Record{
			Like:    req.Like,
			Dislike: req.Dislike,
			Name:    req.Name,
			Email:   req.Email,
		})
		if err != nil {
			slog.Error("Failed to save feedback", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't save your feedback. Please try again later."})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": record.ID})
	}
}
