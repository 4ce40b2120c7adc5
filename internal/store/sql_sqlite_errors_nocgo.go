// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:build !cgo

package store

// SQLiteErrorClassifier is inert without cgo: go-sqlite3 is a stub then and
// every connection attempt fails before a query can run.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

func (c *SQLiteErrorClassifier) Classify(error) ErrorClassification {
	return NonRetryable
}

func (c *SQLiteErrorClassifier) IsUniqueViolation(error) bool {
	return false
}
