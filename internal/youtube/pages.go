package youtube

import (
	"context"
	"iter"
)

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items     []T
	NextToken string // empty on the final page
}

// FetchPage requests the page identified by token ("" for the first page).
type FetchPage[T any] func(ctx context.Context, token string) (Page[T], error)

// Pages returns a lazy sequence over every page of a listing. Each iteration
// starts again from the first page. The sequence ends after the first page
// without a continuation token, or after yielding the first error.
func Pages[T any](ctx context.Context, fetch FetchPage[T]) iter.Seq2[Page[T], error] {
	return func(yield func(Page[T], error) bool) {
		token := ""
		for {
			page, err := fetch(ctx, token)
			if err != nil {
				yield(Page[T]{}, err)
				return
			}
			if page.NextToken != "" && page.NextToken == token {
				yield(Page[T]{}, malformed("paginate", "continuation token %q did not advance", token))
				return
			}
			if !yield(page, nil) || page.NextToken == "" {
				return
			}
			token = page.NextToken
		}
	}
}

// Collect drains every page into a single slice, preserving page order and
// item order within each page. Any page error discards the partial result.
func Collect[T any](ctx context.Context, fetch FetchPage[T]) ([]T, error) {
	var all []T
	for page, err := range Pages(ctx, fetch) {
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
	}
	return all, nil
}
