package core

import "context"

type InteractionsRepository interface {
	Insert(ctx context.Context, contextText, question, answer string) (int64, error)
	UpdateRating(ctx context.Context, id, rating int64) (bool, error)
	ListRecent(ctx context.Context, limit int) ([]Interaction, error)
	Delete(ctx context.Context, id int64) error
}
