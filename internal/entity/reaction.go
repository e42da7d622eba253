package entity

import "time"

// Reaction is one user's emoji on one message. The (message, user, emoji)
// triple is unique; removal is a hard delete.
type Reaction struct {
	Id        uint64
	MessageId uint64
	UserId    uint64
	Emoji     string
	CreatedAt time.Time
}

// ReactionSummary is the grouped view of a message's reactions.
type ReactionSummary struct {
	Emoji   string   `json:"emoji"`
	Count   int      `json:"count"`
	UserIds []uint64 `json:"user_ids"`
}

// SummarizeReactions groups reactions by emoji, preserving first-seen
// emoji order and reaction creation order inside each group.
func SummarizeReactions(reactions []*Reaction) []ReactionSummary {
	order := make([]string, 0)
	groups := make(map[string][]uint64)
	for _, r := range reactions {
		if _, ok := groups[r.Emoji]; !ok {
			order = append(order, r.Emoji)
		}
		groups[r.Emoji] = append(groups[r.Emoji], r.UserId)
	}

	summaries := make([]ReactionSummary, 0, len(order))
	for _, emoji := range order {
		summaries = append(summaries, ReactionSummary{
			Emoji:   emoji,
			Count:   len(groups[emoji]),
			UserIds: groups[emoji],
		})
	}
	return summaries
}
