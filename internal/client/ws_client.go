package client

// ws_client.go = websocket subscription to the owner's change feed.

import (
	"context"
	"net/http"

	"caseflow/internal/changefeed"

	"github.com/gorilla/websocket"
)

// SubscribeFeed connects to the change feed and invokes onEvent for
// every delivered event until the connection drops or ctx is
// cancelled. Events may be redundant or reordered; the consumer is
// expected to treat each one as a resync trigger.
func SubscribeFeed(ctx context.Context, wsURL, token string, onEvent func(changefeed.Event)) error {
	header := http.Header{}
	header.Add("Authorization", "Bearer "+token)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		var event changefeed.Event
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		onEvent(event)
	}
}
