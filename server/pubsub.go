package main

import (
	"sync"

	"github.com/pdbogen/mkelem/types"
)

// subscriptionBuffer is how many snippets may queue for a slow subscriber before it starts missing them.
const subscriptionBuffer = 16

type Subscription struct {
	Id   int
	Chan chan *types.Snippet
}

var Subscriptions = map[int]Subscription{}
var SubscriptionsMu = &sync.RWMutex{}
var nextSubscriptionId int

// shuttingDown is set by UnsubscribeAll; no subscriptions are accepted after it.
var shuttingDown bool

// Publish offers s to every subscriber without blocking.
func Publish(s *types.Snippet) {
	SubscriptionsMu.RLock()
	defer SubscriptionsMu.RUnlock()
	for _, sub := range Subscriptions {
		select {
		case sub.Chan <- s:
		default:
			log.Warningf("subscription %d is full; dropping snippet %q", sub.Id, s.Id)
		}
	}
}

// Subscribe registers a new subscription. When active is not nil, it is incremented under the same lock that
// UnsubscribeAll takes, so a caller waiting on active after UnsubscribeAll returns sees every subscriber; the
// subscriber calls active.Done when it finishes. Subscribe returns false once UnsubscribeAll has been called.
func Subscribe(active *sync.WaitGroup) (Subscription, bool) {
	SubscriptionsMu.Lock()
	defer SubscriptionsMu.Unlock()

	if shuttingDown {
		return Subscription{}, false
	}
	if active != nil {
		active.Add(1)
	}
	nextSubscriptionId++
	sub := Subscription{Id: nextSubscriptionId, Chan: make(chan *types.Snippet, subscriptionBuffer)}
	Subscriptions[sub.Id] = sub
	return sub, true
}

// Unsubscribe closes the subscription's channel. It is safe to call more than once.
func (s Subscription) Unsubscribe() {
	SubscriptionsMu.Lock()
	defer SubscriptionsMu.Unlock()
	if _, ok := Subscriptions[s.Id]; ok {
		close(s.Chan)
		delete(Subscriptions, s.Id)
	}
}

// UnsubscribeAll ends every subscription, which ends every feed, and refuses new ones.
func UnsubscribeAll() {
	SubscriptionsMu.Lock()
	defer SubscriptionsMu.Unlock()
	shuttingDown = true
	for id, sub := range Subscriptions {
		close(sub.Chan)
		delete(Subscriptions, id)
	}
}
