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
	"github.com/textisbeautiful/tib/services/mailer"
)

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// Contact relays a contact-form submission to the site admins.
func Contact(sender mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All contact fields are required"})
			return
		}
		if err := validation.ValidateEmail(req.Email); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := sender.SendContact(c.Request.Context(), req.Name, req.Email, req.Subject, req.Message); err != nil {
			slog.Error("Failed to relay contact message", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't send your message. Please try again later."})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
	}
}
