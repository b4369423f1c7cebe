package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/example/launchdash/internal/binding"
	"github.com/example/launchdash/internal/chart"
	"github.com/example/launchdash/internal/selection"
)

// selectionFrame is what the browser sends when a control moves. Absent
// fields keep their previous value.
type selectionFrame struct {
	Site    *selection.SiteFilter `json:"site"`
	Payload []float64             `json:"payload"`
}

// session is one websocket connection's view of the dashboard. Frames from
// a connection are handled in order on its read goroutine.
type session struct {
	server *Server
	client *client
	binder *binding.Binder
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error(err, "upgrade dashboard websocket")
		return
	}
	c := newClient(conn, s.logger)
	s.hub.Register(c)
	s.metrics.clients.Inc()
	go c.writeLoop()

	sess := &session{
		server: s,
		client: c,
		binder: binding.NewDashboardBinder(s.ds),
	}
	s.logger.V(1).Info("dashboard client connected", "remote", r.RemoteAddr)
	sess.publish(selection.DefaultState(s.ds.Bounds()))
	c.readLoop(sess.handle, func() {
		s.hub.Unregister(c)
		s.metrics.clients.Dec()
		s.logger.V(1).Info("dashboard client disconnected", "remote", r.RemoteAddr)
	})
}

func (sess *session) handle(msg []byte) {
	var frame selectionFrame
	if err := json.Unmarshal(msg, &frame); err != nil {
		sess.send(errorResponse{Error: "invalid selection frame: " + err.Error()})
		return
	}
	if frame.Payload != nil && len(frame.Payload) != 2 {
		sess.send(errorResponse{Error: fmt.Sprintf("invalid selection frame: payload needs [low, high], got %d values", len(frame.Payload))})
		return
	}
	next, ok := sess.binder.Last()
	if !ok {
		next = selection.DefaultState(sess.server.ds.Bounds())
	}
	if frame.Site != nil {
		next.Site = *frame.Site
		if next.Site.IsAll() {
			next.Site = selection.AllSites
		}
	}
	if frame.Payload != nil {
		next.Payload = sess.server.settings.Range.Clamp(selection.PayloadRange{
			Low:  frame.Payload[0],
			High: frame.Payload[1],
		})
	}
	sess.publish(next)
}

// publish recomputes the figures affected by state; the binder keeps it as
// the session's current selection.
func (sess *session) publish(state selection.State) {
	updates := sess.binder.Publish(state)
	m := sess.server.metrics
	for _, u := range updates {
		m.figureBuilt(u.Slot)
		if sc, ok := u.Figure.(chart.Scatter); ok {
			m.observeSelection(sc.PointCount())
		}
		if !sess.send(u) {
			return
		}
	}
}

func (sess *session) send(v any) bool {
	payload, err := json.Marshal(v)
	if err != nil {
		sess.server.logger.Error(err, "encode dashboard frame")
		return false
	}
	if !sess.client.enqueue(payload) {
		sess.server.logger.Info("dropping dashboard frame for closed or slow client")
		return false
	}
	return true
}
