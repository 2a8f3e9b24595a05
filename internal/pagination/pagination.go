// Package pagination provides offset/limit windowing for list endpoints.
package pagination

import "gorm.io/gorm"

// DefaultLimit is applied when a request does not specify a limit.
const DefaultLimit = 100

// Window holds offset/limit parameters parsed from query strings.
// The parameter names match the original skip/limit query contract.
type Window struct {
	Offset int `form:"skip" binding:"omitempty,min=0"`
	Limit  int `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// Defaults fills in the default limit when none is provided.
func (w *Window) Defaults() {
	if w.Limit == 0 {
		w.Limit = DefaultLimit
	}
}

// Scope returns a GORM scope that applies OFFSET and LIMIT for the window.
func Scope(w Window) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(w.Offset).Limit(w.Limit)
	}
}
