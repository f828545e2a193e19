// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Lending policy values. They are published for the loan and reservation
// services; nothing in this module enforces them.
const (
	MaxRenewals       = 3
	LoanDuration      = 14 * 24 * time.Hour
	ReservationExpiry = 48 * time.Hour
	DefaultPageSize   = 10
)

// Policy is the JSON view of the lending policy.
type Policy struct {
	MaxRenewals            int `json:"max_renewals"`
	LoanDurationDays       int `json:"loan_duration_days"`
	ReservationExpiryHours int `json:"reservation_expiry_hours"`
	DefaultPageSize        int `json:"default_page_size"`
}

// DefaultPolicy returns the fixed lending policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxRenewals:            MaxRenewals,
		LoanDurationDays:       int(LoanDuration / (24 * time.Hour)),
		ReservationExpiryHours: int(ReservationExpiry / time.Hour),
		DefaultPageSize:        DefaultPageSize,
	}
}
