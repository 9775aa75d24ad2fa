package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateReservationID() string {
	return uuid.New().String()
}

// IsReservationID reports whether id looks like a generated reservation id.
func IsReservationID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ==================== KEYS ====================

// WindowKey builds the lock key for a capacity window.
func WindowKey(date, timeSlot string) string {
	return "capacity:" + date + ":" + strings.TrimSpace(timeSlot)
}
