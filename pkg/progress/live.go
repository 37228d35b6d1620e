package progress

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/evalctl/pkg/pipeline"
)

// LiveChannel is one websocket progress connection, scoped to a single
// job's session id. It is not reused: once a terminal event arrives the
// channel closes itself.
type LiveChannel struct {
	url  string
	conn *websocket.Conn
	emit func(pipeline.Event)

	closeOnce sync.Once
	closing   chan struct{}
	done      chan struct{}
}

// OpenLiveChannel dials the progress endpoint and starts the read loop.
// Events are delivered through emit in arrival order from a single
// goroutine. Malformed payloads are logged and dropped; a bad push must
// not fail the job.
//
// A Connected event is emitted before the read loop starts. The backend
// flushes buffered events the moment the socket opens, so the reset has to
// go out ahead of anything the loop can deliver.
func OpenLiveChannel(ctx context.Context, url string, emit func(pipeline.Event)) (*LiveChannel, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, resp, err := dialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, errors.Wrapf(err, "dial progress channel %s", url)
	}

	c := &LiveChannel{
		url:     url,
		conn:    conn,
		emit:    emit,
		closing: make(chan struct{}),
		done:    make(chan struct{}),
	}
	emit(pipeline.Connected{})
	go c.readLoop()
	return c, nil
}

func (c *LiveChannel) readLoop() {
	defer close(c.done)
	defer c.Close()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.closing:
				// Expected teardown after Close.
				return
			default:
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Str("url", c.url).Msg("progress channel closed")
			} else {
				// Abnormal closure is only a soft warning; the simulator
				// fallback may still be driving the display.
				log.Warn().Err(err).Str("url", c.url).Msg("progress channel closed abnormally")
			}
			return
		}

		ev, err := pipeline.ParseEvent(data)
		if err != nil {
			log.Warn().Err(err).Str("url", c.url).Msg("dropping malformed progress event")
			continue
		}

		c.emit(ev)

		switch ev.(type) {
		case pipeline.Completed, pipeline.Failed:
			// Terminal event; no further pushes expected.
			return
		}
	}
}

// Close tears the connection down. Idempotent and safe on every exit path.
// The read loop may still be delivering an in-flight event when Close
// returns; wait on Done for full shutdown.
func (c *LiveChannel) Close() {
	c.closeOnce.Do(func() {
		close(c.closing)
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		_ = c.conn.Close()
	})
}

// Done is closed once the read loop has exited. After that no further
// events are emitted.
func (c *LiveChannel) Done() <-chan struct{} {
	return c.done
}
