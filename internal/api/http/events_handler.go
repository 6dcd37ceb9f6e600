package http

import (
	"fmt"
	"net/http"

	"schoolfees-backend/internal/events"
)

// EventsHandler bridges the in-process notification bus onto an SSE stream so
// independent browser views can stay consistent. Events carry the topic name
// only; clients are expected to re-fetch, not to parse payloads.
type EventsHandler struct {
	bus *events.Bus
}

func NewEventsHandler(bus *events.Bus) *EventsHandler {
	return &EventsHandler{bus: bus}
}

func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch, cancel := h.bus.Subscribe(
		events.TopicCollectionsUpdated,
		events.TopicDiscountsUpdated,
		events.TopicFeeTypesUpdated,
		events.TopicFeesUpdated,
		events.TopicStudentsUpdated,
	)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case topic := <-ch:
			fmt.Fprintf(w, "event: %s\ndata: {}\n\n", topic)
			flusher.Flush()
		}
	}
}
