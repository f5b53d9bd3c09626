package reddit

import (
	"context"
	"log/slog"
	"time"
)

// seenCapacity bounds the remembered-ids window for the stream. Large
// enough that a full /new page cannot rotate past it between polls.
const seenCapacity = 300

// streamPageSize is how many newest submissions each poll requests.
const streamPageSize = 100

// Stream yields newly created submissions in one subreddit, oldest
// first, for the lifetime of the context. Submissions that existed
// before the stream started are skipped.
type Stream struct {
	client    *Client
	subreddit string
	interval  time.Duration
	logger    *slog.Logger
}

// NewStream creates a submission stream over the given client.
func NewStream(client *Client, subreddit string, interval time.Duration, logger *slog.Logger) *Stream {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stream{
		client:    client,
		subreddit: subreddit,
		interval:  interval,
		logger:    logger.With("component", "reddit_stream", "subreddit", subreddit),
	}
}

// Submissions starts polling and returns the delivery channel. The
// channel is closed when ctx is cancelled. A failed poll is logged and
// the next tick proceeds; one bad cycle never terminates the stream.
func (s *Stream) Submissions(ctx context.Context) <-chan Submission {
	out := make(chan Submission)

	go func() {
		defer close(out)

		seen := newSeenSet(seenCapacity)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		// Prime the seen set so pre-existing submissions are not
		// relayed. Nothing is delivered until one priming poll
		// succeeds; a failed attempt is retried on the next tick.
		for {
			existing, err := s.client.NewestSubmissions(ctx, s.subreddit, streamPageSize)
			if err == nil {
				for _, submission := range existing {
					seen.add(submission.ID)
				}
				break
			}
			if ctx.Err() != nil {
				return
			}
			s.logger.ErrorContext(ctx, "Failed to prime submission stream, retrying", "error", err)

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			page, err := s.client.NewestSubmissions(ctx, s.subreddit, streamPageSize)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.ErrorContext(ctx, "Failed to poll new submissions", "error", err)
				continue
			}

			// The listing is newest first; deliver in creation order.
			for i := len(page) - 1; i >= 0; i-- {
				submission := page[i]
				if seen.contains(submission.ID) {
					continue
				}
				seen.add(submission.ID)

				select {
				case out <- submission:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// seenSet is a bounded insertion-ordered set of submission ids. Only the
// stream goroutine touches it, so no locking is needed.
type seenSet struct {
	members  map[string]struct{}
	order    []string
	capacity int
}

func newSeenSet(capacity int) *seenSet {
	return &seenSet{
		members:  make(map[string]struct{}, capacity),
		capacity: capacity,
	}
}

func (s *seenSet) contains(id string) bool {
	_, ok := s.members[id]
	return ok
}

func (s *seenSet) add(id string) {
	if s.contains(id) {
		return
	}
	s.members[id] = struct{}{}
	s.order = append(s.order, id)

	if len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.members, oldest)
	}
}
