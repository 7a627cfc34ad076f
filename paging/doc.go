// Package paging provides offset-based pagination over a composed query.
//
// The paginator does not know about the database: callers hand it a count
// closure and a fetch closure built from the same query criteria, and it
// performs the boundary arithmetic.
//
//	page, err := paging.Paginate(ctx, pageNumber, paging.DefaultPageSize,
//	    func(ctx context.Context) (int, error) {
//	        return repo.Count(ctx, crit)
//	    },
//	    func(ctx context.Context, offset, limit int) ([]*models.Task, error) {
//	        return repo.List(ctx, crit, offset, limit)
//	    })
//
// The count pass never materializes entities and the fetch pass runs at
// most once, so a request costs exactly two round-trips regardless of the
// result size.
package paging
