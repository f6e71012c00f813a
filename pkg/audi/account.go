package audi

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Account caches the vehicles and status snapshots of one signed-in account.
type Account struct {
	client Client

	mu       sync.Mutex
	vehicles []Vehicle
	statuses map[string]*VehicleStatus
}

// NewAccount creates an Account backed by the given service client.
func NewAccount(client Client) *Account {
	return &Account{
		client:   client,
		statuses: make(map[string]*VehicleStatus),
	}
}

// Update refreshes the vehicle list and the status snapshots of the given
// VINs. An empty vins slice refreshes every vehicle of the account. Status
// fetches run concurrently, one per vehicle.
func (a *Account) Update(ctx context.Context, vins []string) error {
	vehicles, err := a.client.Vehicles(ctx)
	if err != nil {
		return fmt.Errorf("fetching vehicle list: %w", err)
	}

	a.mu.Lock()
	a.vehicles = vehicles
	a.mu.Unlock()

	wanted := make(map[string]bool, len(vins))
	for _, vin := range vins {
		wanted[strings.ToLower(vin)] = true
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, v := range vehicles {
		if len(wanted) > 0 && !wanted[strings.ToLower(v.VIN)] {
			continue
		}

		v := v
		g.Go(func() error {
			status, err := a.client.VehicleStatus(gctx, v.VIN)
			if err != nil {
				return fmt.Errorf("fetching status for %s: %w", v.VIN, err)
			}

			a.mu.Lock()
			a.statuses[strings.ToLower(v.VIN)] = status
			a.mu.Unlock()
			return nil
		})
	}

	return g.Wait()
}

// Vehicles returns the cached vehicle list.
func (a *Account) Vehicles() []Vehicle {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.vehicles
}

// Vehicle looks up a cached vehicle by VIN, case-insensitively.
func (a *Account) Vehicle(vin string) (Vehicle, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, v := range a.vehicles {
		if strings.EqualFold(v.VIN, vin) {
			return v, true
		}
	}
	return Vehicle{}, false
}

// Status returns the cached status snapshot for a VIN, if one was fetched.
func (a *Account) Status(vin string) (*VehicleStatus, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.statuses[strings.ToLower(vin)]
	return s, ok
}
