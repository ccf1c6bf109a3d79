// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package feedback persists site feedback submissions to a local embedded
// BadgerDB store.
package feedback

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const keyPrefix = "feedback/"

// Record is one feedback submission. Name and Email are optional.
type Record struct {
	ID        string    `json:"id"`
	Like      string    `json:"like"`
	Dislike   string    `json:"dislike"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Config holds store configuration.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is true.
	Path string

	// InMemory runs the store without disk persistence. For tests.
	InMemory bool
}

// Store is a BadgerDB-backed feedback log.
type Store struct {
	db *badger.DB
}

// Open opens (and if needed creates) the store.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for a persistent feedback store")
	}
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open feedback store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save assigns the record an id and timestamp and persists it.
func (s *Store) Save(record Record) (Record, error) {
	record.ID = uuid.NewString()
	record.CreatedAt = time.Now().UTC()

	value, err := json.Marshal(record)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode feedback record: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+record.ID), value)
	})
	if err != nil {
		return Record{}, fmt.Errorf("failed to save feedback record: %w", err)
	}
	return record, nil
}

// List returns all stored records, unordered.
func (s *Store) List() ([]Record, error) {
	var records []Record
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var r Record
				if err := json.Unmarshal(val, &r); err != nil {
					return err
				}
				records = append(records, r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback records: %w", err)
	}
	return records, nil
}
