package visit

import "context"

// Store is the data access contract for client partitions. Implementations
// deliver snapshots most-recent-first with backend-assigned identifiers.
//
// Subscribe callbacks run on a goroutine owned by the subscription and must
// not call the returned unsubscribe func. Once unsubscribe returns, no
// further callbacks fire. After onError the subscription is finished.
type Store interface {
	Subscribe(ctx context.Context, userID string, day Day, onData func([]Client), onError func(error)) (unsubscribe func())
	Add(ctx context.Context, userID string, day Day, data ClientData) error
	Update(ctx context.Context, userID string, day Day, id string, data ClientData) error
	SetVisited(ctx context.Context, userID string, day Day, id string, visited bool) error
	Delete(ctx context.Context, userID string, day Day, id string) error
}

// Repository persists partitions. ListPartition returns clients in
// insertion order.
type Repository interface {
	ListPartition(ctx context.Context, p Partition) ([]Client, error)
	Create(ctx context.Context, p Partition, id string, data ClientData) error
	Replace(ctx context.Context, p Partition, id string, data ClientData) error
	SetVisited(ctx context.Context, p Partition, id string, visited bool) error
	Delete(ctx context.Context, p Partition, id string) error
}
