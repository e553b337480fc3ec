package resolvers

import (
	"gorm.io/gorm"
)

// Resolver bundles the DB handle for query resolvers.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Query returns the query resolver.
func (r *Resolver) Query() *queryResolver {
	return &queryResolver{db: r.db}
}

type queryResolver struct {
	db *gorm.DB
}
