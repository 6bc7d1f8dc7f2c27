package app

import "context"

// Input acquires the text of a new memo. The prompt terminal implements it,
// so memo text and prompt answers come from one reader.
type Input interface {
	ReadText(ctx context.Context) (string, error)
}
