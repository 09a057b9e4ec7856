// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AccessLogRecord is the structured document forwarded to the external log
// sink once a request completes.
type AccessLogRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Service    string    `json:"service"`
	Endpoint   string    `json:"endpoint"`
	Method     string    `json:"method"`
	StatusCode int       `json:"statusCode"`
	ElapsedMs  int64     `json:"elapsedMs"`
}
