package types

import "github.com/google/uuid"

type (
	RequestID    string
	AllocationID string
)

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func NewAllocationID() AllocationID {
	return AllocationID(uuid.NewString())
}
