package service

import (
	"github.com/driverdash/backend/internal/domain"
)

// ReferenceRepository is re-exported from domain for convenience
type ReferenceRepository = domain.ReferenceRepository
