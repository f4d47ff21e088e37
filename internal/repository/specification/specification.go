package specification

import "gorm.io/gorm"

// Specification is a composable query refinement applied by the GORM
// repositories.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
