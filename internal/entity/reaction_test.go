package entity

import (
	"reflect"
	"testing"
)

func TestSummarizeReactions(t *testing.T) {
	tests := []struct {
		name      string
		reactions []*Reaction
		want      []ReactionSummary
	}{
		{
			name:      "empty input",
			reactions: nil,
			want:      []ReactionSummary{},
		},
		{
			name: "single reaction",
			reactions: []*Reaction{
				{MessageId: 1, UserId: 7, Emoji: "👍"},
			},
			want: []ReactionSummary{
				{Emoji: "👍", Count: 1, UserIds: []uint64{7}},
			},
		},
		{
			name: "groups preserve first-seen emoji order",
			reactions: []*Reaction{
				{MessageId: 1, UserId: 1, Emoji: "🎉"},
				{MessageId: 1, UserId: 2, Emoji: "👍"},
				{MessageId: 1, UserId: 3, Emoji: "🎉"},
				{MessageId: 1, UserId: 4, Emoji: "👍"},
				{MessageId: 1, UserId: 5, Emoji: "🎉"},
			},
			want: []ReactionSummary{
				{Emoji: "🎉", Count: 3, UserIds: []uint64{1, 3, 5}},
				{Emoji: "👍", Count: 2, UserIds: []uint64{2, 4}},
			},
		},
		{
			name: "same user different emojis",
			reactions: []*Reaction{
				{MessageId: 1, UserId: 1, Emoji: "👍"},
				{MessageId: 1, UserId: 1, Emoji: "❤️"},
			},
			want: []ReactionSummary{
				{Emoji: "👍", Count: 1, UserIds: []uint64{1}},
				{Emoji: "❤️", Count: 1, UserIds: []uint64{1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeReactions(tt.reactions)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SummarizeReactions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
