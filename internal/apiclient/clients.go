package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/httpresp"
)

// ClientStore is the remote visit.Store. The server scopes every call to
// the token's user; userID only has to name a partition.
type ClientStore struct {
	api *Client
}

var _ visit.Store = (*ClientStore)(nil)

func NewClientStore(api *Client) *ClientStore {
	return &ClientStore{api: api}
}

func clientsPath(userID string, day visit.Day) (string, error) {
	p := visit.Partition{UserID: userID, Day: day}
	if err := p.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf("/api/me/days/%s/clients", day), nil
}

func clientPath(userID string, day visit.Day, id string) (string, error) {
	base, err := clientsPath(userID, day)
	if err != nil {
		return "", err
	}
	if err := visit.ValidateID(id); err != nil {
		return "", err
	}
	return base + "/" + url.PathEscape(id), nil
}

// List fetches one snapshot, most recent first.
func (s *ClientStore) List(ctx context.Context, userID string, day visit.Day) ([]visit.Client, error) {
	path, err := clientsPath(userID, day)
	if err != nil {
		return nil, err
	}
	var resp httpresp.ListResponse[visit.Client]
	if err := s.api.do(ctx, http.MethodGet, path, nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *ClientStore) Add(ctx context.Context, userID string, day visit.Day, data visit.ClientData) error {
	path, err := clientsPath(userID, day)
	if err != nil {
		return err
	}
	data, err = data.Normalize()
	if err != nil {
		return err
	}
	return s.api.do(ctx, http.MethodPost, path, struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}{data.Name, data.Address}, nil, true)
}

func (s *ClientStore) Update(ctx context.Context, userID string, day visit.Day, id string, data visit.ClientData) error {
	path, err := clientPath(userID, day, id)
	if err != nil {
		return err
	}
	data, err = data.Normalize()
	if err != nil {
		return err
	}
	return s.api.do(ctx, http.MethodPut, path, data, nil, true)
}

func (s *ClientStore) SetVisited(ctx context.Context, userID string, day visit.Day, id string, visited bool) error {
	path, err := clientPath(userID, day, id)
	if err != nil {
		return err
	}
	return s.api.do(ctx, http.MethodPatch, path+"/visited", struct {
		Visited bool `json:"visited"`
	}{visited}, nil, true)
}

func (s *ClientStore) Delete(ctx context.Context, userID string, day visit.Day, id string) error {
	path, err := clientPath(userID, day, id)
	if err != nil {
		return err
	}
	return s.api.do(ctx, http.MethodDelete, path, nil, nil, true)
}
