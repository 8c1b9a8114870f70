package apiclient

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/httperr"
	"github.com/BruksfildServices01/visit-tracker/internal/httpresp"
)

const maxEventSize = 4 << 20

// Subscribe follows the partition's event stream. The server sends a full
// snapshot per change; the stream is not reopened after it ends.
func (s *ClientStore) Subscribe(
	ctx context.Context,
	userID string,
	day visit.Day,
	onData func([]visit.Client),
	onError func(error),
) (unsubscribe func()) {

	ctx, cancel := context.WithCancel(ctx)
	st := &stream{api: s.api, onData: onData, onError: onError}

	go st.run(ctx, userID, day)

	return func() {
		st.guard.Stop()
		cancel()
	}
}

type stream struct {
	api     *Client
	onData  func([]visit.Client)
	onError func(error)
	guard   visit.Guard
}

type sseEvent struct {
	name string
	data string
}

func (st *stream) run(ctx context.Context, userID string, day visit.Day) {
	path, err := clientsPath(userID, day)
	if err != nil {
		st.fail(err)
		return
	}

	req, err := st.api.newRequest(ctx, http.MethodGet, path+"/stream", nil, true)
	if err != nil {
		st.fail(fmt.Errorf("%w: %v", visit.ErrSubscription, err))
		return
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := st.api.stream.Do(req)
	if err != nil {
		if ctx.Err() == nil {
			st.fail(fmt.Errorf("%w: %v", visit.ErrSubscription, err))
		}
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		st.fail(st.api.fail(resp, true))
		return
	}

	st.api.logger.Debug(ctx, "stream opened", "day", day)

	err = readEvents(resp.Body, func(ev sseEvent) bool {
		switch ev.name {
		case "snapshot":
			var list httpresp.ListResponse[visit.Client]
			if err := json.Unmarshal([]byte(ev.data), &list); err != nil {
				st.fail(fmt.Errorf("%w: decode snapshot: %v", visit.ErrSubscription, err))
				return false
			}
			return st.guard.Do(func() { st.onData(list.Data) })
		case "error":
			apiErr := &APIError{Status: http.StatusOK}
			var body httperr.HTTPError
			if json.Unmarshal([]byte(ev.data), &body) == nil {
				apiErr.Code, apiErr.Message = body.Code, body.Message
			}
			st.fail(fmt.Errorf("%w: %w", visit.ErrSubscription, apiErr))
			return false
		}
		return true
	})

	if ctx.Err() != nil {
		return
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	st.fail(fmt.Errorf("%w: stream ended: %v", visit.ErrSubscription, err))
}

func (st *stream) fail(err error) {
	st.guard.Finish(func() { st.onError(err) })
}

// readEvents parses a text/event-stream body, calling fn per event until fn
// returns false or the body ends. A clean end of body returns nil.
func readEvents(r io.Reader, fn func(sseEvent) bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxEventSize)

	var (
		ev   sseEvent
		data []string
	)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			if ev.name != "" || len(data) > 0 {
				ev.data = strings.Join(data, "\n")
				if !fn(ev) {
					return nil
				}
			}
			ev, data = sseEvent{}, nil
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			ev.name = value
		case "data":
			data = append(data, value)
		}
	}
	if err := sc.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
