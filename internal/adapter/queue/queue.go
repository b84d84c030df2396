// Package queue holds the contract shared by the tracking job queue drivers.
//
// A job handed out by Dequeue stays owned by the consumer until it calls Ack
// or DeadLetter on the Delivery. Drivers deliver jobs in FIFO order.
package queue

import (
	"context"
	"time"

	"github.com/vadimbarashkov/qrtrack/internal/entity"
)

// Delivery is one dequeued job awaiting settlement.
type Delivery interface {
	Job() entity.TrackJob
	// Ack removes the job from the queue for good.
	Ack(ctx context.Context) error
	// DeadLetter parks the job with the reason it could not be processed.
	DeadLetter(ctx context.Context, reason error) error
}

// DeadLetter is a job that exhausted its processing attempts. Payload keeps
// the raw message when it could not be decoded into Job.
type DeadLetter struct {
	Job      entity.TrackJob `json:"job"`
	Payload  string          `json:"payload,omitempty"`
	Reason   string          `json:"reason"`
	FailedAt time.Time       `json:"failed_at"`
}
