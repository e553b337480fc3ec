package graphqlserver

import (
	"context"
	"encoding/json"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"shipshare.GO/graphql"
	gqlmodels "shipshare.GO/graphql/models"
	"shipshare.GO/graphql/registry"
	"shipshare.GO/graphql/resolvers"
	allocationRepo "shipshare.GO/model/repository/allocation"
)

// RootResolver is the root for graphql-go.
type RootResolver struct {
	DB *gorm.DB
}

// Query returns the query resolver.
func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{db: r.DB}
}

// QueryResolver implements Query fields. Delegates to resolvers package.
type QueryResolver struct {
	db *gorm.DB
}

// AllocationsArgs matches the allocations query arguments.
type AllocationsArgs struct {
	StartDate         *string
	EndDate           *string
	OrderNumbers      *[]string
	OrderNumberPrefix *string
	TrackingNumbers   *[]string
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *QueryResolver) Allocations(ctx context.Context, args AllocationsArgs) ([]*gqlmodels.Allocation, error) {
	filters := allocationRepo.ListFilters{
		StartDate:         deref(args.StartDate),
		EndDate:           deref(args.EndDate),
		OrderNumberPrefix: deref(args.OrderNumberPrefix),
	}
	if args.OrderNumbers != nil {
		filters.OrderNumbers = *args.OrderNumbers
	}
	if args.TrackingNumbers != nil {
		filters.TrackingNumbers = *args.TrackingNumbers
	}
	return resolvers.NewResolver(r.db).Query().Allocations(ctx, filters)
}

func (r *QueryResolver) Allocation(ctx context.Context, args struct{ OrderNumber string }) (*gqlmodels.Allocation, error) {
	return resolvers.NewResolver(r.db).Query().Allocation(ctx, args.OrderNumber)
}

func (r *QueryResolver) MerchantSummary(ctx context.Context, args struct {
	MerchantName *string
	StartDate    *string
	EndDate      *string
}) ([]*gqlmodels.MerchantSummary, error) {
	return resolvers.NewResolver(r.db).Query().
		MerchantSummary(ctx, deref(args.MerchantName), deref(args.StartDate), deref(args.EndDate))
}

func (r *QueryResolver) OverallStatistics(ctx context.Context, args struct {
	StartDate *string
	EndDate   *string
}) (*gqlmodels.Statistics, error) {
	return resolvers.NewResolver(r.db).Query().
		OverallStatistics(ctx, deref(args.StartDate), deref(args.EndDate))
}

func (r *QueryResolver) Search(ctx context.Context, args struct {
	Query string
	Limit *int32
}) ([]*gqlmodels.Allocation, error) {
	limit := 20
	if args.Limit != nil && *args.Limit > 0 {
		limit = int(*args.Limit)
	}
	return resolvers.NewResolver(r.db).Query().Search(ctx, args.Query, limit)
}

// ExtensionArgs for _extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{DB: db}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
