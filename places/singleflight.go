package places

import (
	"sync"

	"travelog/models"

	cmap "github.com/orcaman/concurrent-map/v2"
)

type flightCall struct {
	wg    sync.WaitGroup
	place *models.Place
	err   error
}

// flightGroup makes sure only one resolve is in flight per place ID;
// concurrent callers for the same key wait for and share its result.
type flightGroup struct {
	calls cmap.ConcurrentMap[string, *flightCall]
}

func newFlightGroup() flightGroup {
	return flightGroup{calls: cmap.New[*flightCall]()}
}

func (g *flightGroup) Do(key string, fn func() (*models.Place, error)) (*models.Place, error) {
	for {
		call := &flightCall{}
		call.wg.Add(1)
		if g.calls.SetIfAbsent(key, call) {
			call.place, call.err = fn()
			g.calls.Remove(key)
			call.wg.Done()
			return call.place, call.err
		}
		if existing, ok := g.calls.Get(key); ok {
			existing.wg.Wait()
			return existing.place, existing.err
		}
		// The in-flight call completed between the two lookups; start over
	}
}
