package io

import (
	"context"
)

type Producer interface {
	Produce(ctx context.Context, work chan<- *WorkUnit) error
}

type Consumer interface {
	Consume(ctx context.Context, work <-chan *WorkUnit) error
}
