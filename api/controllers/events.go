package controllers

import (
	"fmt"
	"net/http"

	"github.com/threadline/storefront/api/responses"
	"github.com/threadline/storefront/internal/state"
	pkgerrors "github.com/threadline/storefront/pkg/errors"
	"github.com/threadline/storefront/pkg/events"
	"github.com/threadline/storefront/pkg/logger"
)

// EventsStream exposes the change notifier as a server-sent event stream.
// Each event names the collection that changed and carries no body: clients
// re-fetch the collection they care about. Signals coalesce while the client
// is slow, which matches the notifier contract of "something changed", not
// "here is every change".
// An optional ?namespace= query narrows the stream to one collection.
func EventsStream(broker *events.Broker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "streaming unsupported"))
			return
		}

		namespaces := []string{state.NamespaceCart, state.NamespaceWishlist}
		switch filter := r.URL.Query().Get("namespace"); filter {
		case "":
		case state.NamespaceCart, state.NamespaceWishlist:
			namespaces = []string{filter}
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown namespace"))
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		signals := make(chan string, len(namespaces))
		cancels := make([]func(), 0, len(namespaces))
		for _, namespace := range namespaces {
			ns := namespace
			cancels = append(cancels, broker.Subscribe(ns, func() {
				select {
				case signals <- ns:
				default:
				}
			}))
		}
		defer func() {
			for _, cancel := range cancels {
				cancel()
			}
		}()

		fmt.Fprint(w, ": connected\n\n")
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				return
			case namespace := <-signals:
				fmt.Fprintf(w, "event: %s\ndata: {}\n\n", namespace)
				flusher.Flush()
			}
		}
	}
}
