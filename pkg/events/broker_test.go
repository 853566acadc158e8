package events

import "testing"

func TestPublishDeliversInSubscriptionOrder(t *testing.T) {
	t.Parallel()

	broker := NewBroker()
	var order []string
	broker.Subscribe("cart", func() { order = append(order, "badge") })
	broker.Subscribe("cart", func() { order = append(order, "page") })

	broker.Publish("cart")

	if len(order) != 2 || order[0] != "badge" || order[1] != "page" {
		t.Fatalf("unexpected delivery order: %v", order)
	}
}

func TestPublishIsScopedToNamespace(t *testing.T) {
	t.Parallel()

	broker := NewBroker()
	cartHits, wishlistHits := 0, 0
	broker.Subscribe("cart", func() { cartHits++ })
	broker.Subscribe("wishlist", func() { wishlistHits++ })

	broker.Publish("cart")

	if cartHits != 1 {
		t.Fatalf("expected one cart notification, got %d", cartHits)
	}
	if wishlistHits != 0 {
		t.Fatalf("wishlist observer should not fire, got %d", wishlistHits)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()

	broker := NewBroker()
	hits := 0
	cancel := broker.Subscribe("cart", func() { hits++ })

	broker.Publish("cart")
	cancel()
	broker.Publish("cart")
	cancel() // second cancel is a no-op

	if hits != 1 {
		t.Fatalf("expected delivery only while subscribed, got %d", hits)
	}
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	t.Parallel()

	broker := NewBroker()
	broker.Publish("cart")

	hits := 0
	broker.Subscribe("cart", func() { hits++ })
	if hits != 0 {
		t.Fatal("missed events must not replay on subscribe")
	}
}
