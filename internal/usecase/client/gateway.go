package client

import (
	"context"

	"github.com/BruksfildServices01/visit-tracker/internal/audit"
	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/logging"
	"github.com/BruksfildServices01/visit-tracker/internal/realtime"
)

// Gateway is the in-process visit.Store.
type Gateway struct {
	subscribe  *SubscribeClients
	list       *ListClients
	add        *AddClient
	update     *UpdateClient
	setVisited *SetVisited
	delete     *DeleteClient
}

var _ visit.Store = (*Gateway)(nil)

func NewGateway(
	repo visit.Repository,
	broker realtime.Broker,
	audit *audit.Dispatcher,
	logger logging.Logger,
) *Gateway {
	list := NewListClients(repo)
	return &Gateway{
		subscribe:  NewSubscribeClients(list, broker, logger),
		list:       list,
		add:        NewAddClient(repo, broker, audit, logger),
		update:     NewUpdateClient(repo, broker, audit, logger),
		setVisited: NewSetVisited(repo, broker, audit, logger),
		delete:     NewDeleteClient(repo, broker, audit, logger),
	}
}

func part(userID string, day visit.Day) visit.Partition {
	return visit.Partition{UserID: userID, Day: day}
}

func (g *Gateway) Subscribe(ctx context.Context, userID string, day visit.Day, onData func([]visit.Client), onError func(error)) func() {
	return g.subscribe.Execute(ctx, part(userID, day), onData, onError)
}

func (g *Gateway) List(ctx context.Context, userID string, day visit.Day) ([]visit.Client, error) {
	return g.list.Execute(ctx, part(userID, day))
}

func (g *Gateway) Add(ctx context.Context, userID string, day visit.Day, data visit.ClientData) error {
	return g.add.Execute(ctx, part(userID, day), data)
}

func (g *Gateway) Update(ctx context.Context, userID string, day visit.Day, id string, data visit.ClientData) error {
	return g.update.Execute(ctx, part(userID, day), id, data)
}

func (g *Gateway) SetVisited(ctx context.Context, userID string, day visit.Day, id string, visited bool) error {
	return g.setVisited.Execute(ctx, part(userID, day), id, visited)
}

func (g *Gateway) Delete(ctx context.Context, userID string, day visit.Day, id string) error {
	return g.delete.Execute(ctx, part(userID, day), id)
}
