package twython

import (
	"context"
	"iter"
	"strconv"
)

// SearchGen returns a lazy, logically unbounded sequence of tweets matching
// query, fetching pages from search/tweets on demand. Tweets are yielded in
// received order (newest first); after each page the lower bound advances to
// the newest id seen plus one, unless the caller pinned since_id in params.
// The sequence ends cleanly when a page comes back without statuses.
//
// Each call returns a fresh sequence; stopping early simply abandons it.
// Every step may block on a network round trip.
func (c *Client) SearchGen(ctx context.Context, query string, params Params) iter.Seq2[map[string]any, error] {
	return func(yield func(map[string]any, error) bool) {
		cursor := Params{}
		for k, v := range params {
			cursor[k] = v
		}
		cursor["q"] = query
		_, pinned := cursor["since_id"]

		for {
			content, err := c.Get(ctx, "search/tweets", cursor)
			if err != nil {
				yield(nil, err)
				return
			}

			page, _ := content.(map[string]any)
			statuses, _ := page["statuses"].([]any)
			if len(statuses) == 0 {
				return
			}

			for _, status := range statuses {
				tweet, _ := status.(map[string]any)
				if !yield(tweet, nil) {
					return
				}
			}

			if !pinned {
				// The API returns newest-first, so the first element
				// bounds the next page.
				id, err := tweetID(statuses[0])
				if err != nil {
					yield(nil, err)
					return
				}
				cursor["since_id"] = id + 1
			}
		}
	}
}

// tweetID extracts a tweet's id_str as an integer.
func tweetID(status any) (int64, error) {
	tweet, ok := status.(map[string]any)
	if !ok {
		return 0, &APIError{Message: "unable to generate next page of search results: tweet is not an object"}
	}
	idStr, ok := tweet["id_str"].(string)
	if !ok {
		return 0, &APIError{Message: "unable to generate next page of search results: tweet id is missing"}
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, &APIError{Message: "unable to generate next page of search results: tweet id is not a number"}
	}
	return id, nil
}
