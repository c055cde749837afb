package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"orderlink/internal/core/application/actions"
	"orderlink/internal/core/domain/model/kernel"
	"orderlink/internal/core/domain/model/order"
	"orderlink/internal/core/ports"
	"orderlink/internal/pkg/errs"
)

// ActionKind identifies the in-flight action on an order. At most one action
// kind is in flight per order id at any time.
type ActionKind string

const (
	ActionNone     ActionKind = ""
	ActionClaim    ActionKind = "claim"
	ActionStatus   ActionKind = "status"
	ActionEta      ActionKind = "eta"
	ActionLocation ActionKind = "location"
)

// Snapshot is a read-only copy of the collections handed to presentation
// code. Mine is partitioned on read into active (non-terminal) and done
// (completed); cancelled orders appear in neither partition.
type Snapshot struct {
	Open       []order.Order
	MineActive []order.Order
	MineDone   []order.Order
	Busy       map[string]ActionKind
}

// Synchronizer owns the in-memory order collections and applies the
// optimistic mutation protocol described in the package documentation.
type Synchronizer struct {
	client     *actions.Client
	identity   ports.Identity
	geolocator ports.Geolocator
	logger     *slog.Logger

	mu           sync.Mutex
	open         []order.Order
	mine         []order.Order
	busy         map[string]ActionKind
	issuedGen    uint64
	committedGen uint64
}

// NewSynchronizer creates a Synchronizer with empty collections.
// geolocator may be nil; SetDeviceLocation then always falls back to an error
// and callers use manually entered coordinates instead.
func NewSynchronizer(client *actions.Client, identity ports.Identity, geolocator ports.Geolocator, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{
		client:     client,
		identity:   identity,
		geolocator: geolocator,
		logger:     logger.With("component", "synchronizer"),
		busy:       make(map[string]ActionKind),
	}
}

// Snapshot returns copies of the current collections and busy state.
func (s *Synchronizer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := Snapshot{
		Open: append([]order.Order(nil), s.open...),
		Busy: make(map[string]ActionKind, len(s.busy)),
	}
	for id, kind := range s.busy {
		snapshot.Busy[id] = kind
	}
	for _, o := range s.mine {
		switch {
		case o.Status == order.Completed:
			snapshot.MineDone = append(snapshot.MineDone, o)
		case !o.Status.Terminal():
			snapshot.MineActive = append(snapshot.MineActive, o)
		}
	}
	return snapshot
}

// Busy returns the in-flight action kind for the order, or ActionNone.
func (s *Synchronizer) Busy(orderID string) ActionKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[orderID]
}

// Claim claims the order for the acting courier. On success the order moves
// from the open pool into mine with status claimed and the acting identity as
// assigned courier. A failed claim leaves the open pool unchanged; if another
// actor won the race, the next reload drops the order from the pool once the
// server reflects their ownership.
func (s *Synchronizer) Claim(ctx context.Context, orderID string) error {
	if err := s.begin(orderID, ActionClaim); err != nil {
		return err
	}

	err := s.client.ClaimOrder(ctx, orderID)
	if err != nil {
		s.fail(ctx, orderID, err)
		return err
	}

	s.mu.Lock()
	claimed := order.Order{ID: orderID, Status: order.Claimed, AssignedCourier: s.identity.Username()}
	if found, ok := findOrder(s.open, orderID); ok {
		claimed = found
		claimed.Status = order.Claimed
		claimed.AssignedCourier = s.identity.Username()
	}
	s.open = removeOrder(s.open, orderID)
	s.mine = upsertOrder(s.mine, claimed)
	delete(s.busy, orderID)
	s.mu.Unlock()
	return nil
}

// Advance moves the order to its single successor state.
func (s *Synchronizer) Advance(ctx context.Context, orderID string) error {
	s.mu.Lock()
	current, ok := findOrder(s.mine, orderID)
	if !ok {
		current, ok = findOrder(s.open, orderID)
	}
	s.mu.Unlock()
	if !ok {
		return errs.NewObjectNotFoundError("orderID", orderID)
	}

	return s.SetStatus(ctx, orderID, current.Status.Next())
}

// SetStatus changes the order's status to any canonical target state, not
// only the successor; real-world handling may skip steps. On success the
// status is updated in whichever collection currently holds the id.
func (s *Synchronizer) SetStatus(ctx context.Context, orderID string, target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if err := s.begin(orderID, ActionStatus); err != nil {
		return err
	}

	err := s.client.SetStatus(ctx, orderID, target)
	if err != nil {
		s.fail(ctx, orderID, err)
		return err
	}

	s.mu.Lock()
	s.open = updateStatus(s.open, orderID, target)
	s.mine = updateStatus(s.mine, orderID, target)
	delete(s.busy, orderID)
	s.mu.Unlock()
	return nil
}

// SetEta reports the estimated arrival in minutes from now. Validation
// happens before the busy marker is taken so a rejected input never blocks
// the order. On success only the order's local eta field changes; collection
// membership does not.
func (s *Synchronizer) SetEta(ctx context.Context, orderID string, minutes int) error {
	if minutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("eta minutes",
			fmt.Errorf("%d is negative", minutes))
	}
	if err := s.begin(orderID, ActionEta); err != nil {
		return err
	}

	err := s.client.SetEta(ctx, orderID, minutes)
	if err != nil {
		s.fail(ctx, orderID, err)
		return err
	}

	eta := time.Now().Add(time.Duration(minutes) * time.Minute)
	s.mu.Lock()
	s.open = updateEta(s.open, orderID, eta)
	s.mine = updateEta(s.mine, orderID, eta)
	delete(s.busy, orderID)
	s.mu.Unlock()
	return nil
}

// SetLocation reports the courier's position for the order using manually
// entered coordinates. The point carries its own validation; no local order
// fields change on success.
func (s *Synchronizer) SetLocation(ctx context.Context, orderID string, point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	if err := s.begin(orderID, ActionLocation); err != nil {
		return err
	}

	err := s.client.SetLocation(ctx, orderID, point)
	if err != nil {
		s.fail(ctx, orderID, err)
		return err
	}

	s.mu.Lock()
	delete(s.busy, orderID)
	s.mu.Unlock()
	return nil
}

// SetDeviceLocation reports the position obtained from the device
// geolocation capability. A positioning failure is resolved locally and
// never reaches the network.
func (s *Synchronizer) SetDeviceLocation(ctx context.Context, orderID string) error {
	if s.geolocator == nil {
		return errs.NewValueIsRequiredError("geolocation capability")
	}
	point, err := s.geolocator.CurrentPosition(ctx)
	if err != nil {
		return errs.NewValueIsRequiredErrorWithCause("device position", err)
	}
	return s.SetLocation(ctx, orderID, point)
}

// Reload fetches both collections and replaces them wholesale. A reload only
// fails when neither collection could be fetched; a single failed fetch
// yields an empty collection, trusting the next reload to heal it. Stale
// reloads (finishing after a newer one committed) are discarded.
func (s *Synchronizer) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.issuedGen++
	generation := s.issuedGen
	s.mu.Unlock()

	open, openErr := s.client.ListOpen(ctx)
	mine, mineErr := s.client.ListMine(ctx)
	if openErr != nil && mineErr != nil {
		s.logger.WarnContext(ctx, "Reload failed for both collections",
			"open_error", openErr, "mine_error", mineErr)
		return openErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation < s.committedGen {
		s.logger.DebugContext(ctx, "Discarding stale reload", "generation", generation)
		return nil
	}
	s.committedGen = generation
	s.open = open
	s.mine = mine
	return nil
}

// begin takes the busy marker for the order, rejecting the action without
// any network contact when another action is already in flight.
func (s *Synchronizer) begin(orderID string, kind ActionKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current := s.busy[orderID]; current != ActionNone {
		return errs.NewOrderBusyError(orderID, string(current))
	}
	s.busy[orderID] = kind
	return nil
}

// fail clears the busy marker, applies no mutation, and triggers a full
// reload so the local view resynchronizes with server truth. Local state is
// not trusted after an unexplained failure.
func (s *Synchronizer) fail(ctx context.Context, orderID string, cause error) {
	s.mu.Lock()
	delete(s.busy, orderID)
	s.mu.Unlock()

	s.logger.WarnContext(ctx, "Action failed, resynchronizing",
		"order_id", orderID, "error", cause)
	if err := s.Reload(ctx); err != nil {
		s.logger.WarnContext(ctx, "Resynchronizing reload failed", "error", err)
	}
}

func findOrder(list []order.Order, orderID string) (order.Order, bool) {
	for _, o := range list {
		if o.ID == orderID {
			return o, true
		}
	}
	return order.Order{}, false
}

func removeOrder(list []order.Order, orderID string) []order.Order {
	out := list[:0]
	for _, o := range list {
		if o.ID != orderID {
			out = append(out, o)
		}
	}
	return out
}

// upsertOrder replaces the order in place or prepends it.
func upsertOrder(list []order.Order, o order.Order) []order.Order {
	for i := range list {
		if list[i].ID == o.ID {
			list[i] = o
			return list
		}
	}
	return append([]order.Order{o}, list...)
}

func updateStatus(list []order.Order, orderID string, status order.Status) []order.Order {
	for i := range list {
		if list[i].ID == orderID {
			list[i].Status = status
		}
	}
	return list
}

func updateEta(list []order.Order, orderID string, eta time.Time) []order.Order {
	for i := range list {
		if list[i].ID == orderID {
			list[i].EtaAt = &eta
		}
	}
	return list
}
