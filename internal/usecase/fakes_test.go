package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"hotel-management/internal/data/entity"
	"hotel-management/internal/data/repository"
	"hotel-management/internal/gateway"
	"hotel-management/pkg/apperror"
	"hotel-management/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// store is an in-memory stand-in for the PostgreSQL tables, enforcing the
// same unique constraints and the confirm transaction.
type store struct {
	mu           sync.Mutex
	rooms        map[uuid.UUID]*entity.Room
	users        map[uuid.UUID]*entity.User
	sessions     map[uuid.UUID]*entity.Session
	reservations map[uuid.UUID]*entity.Reservation
	payments     map[string]*entity.Payment
	outbox       []*entity.OutboxEvent
}

func newStore() *store {
	return &store{
		rooms:        make(map[uuid.UUID]*entity.Room),
		users:        make(map[uuid.UUID]*entity.User),
		sessions:     make(map[uuid.UUID]*entity.Session),
		reservations: make(map[uuid.UUID]*entity.Reservation),
		payments:     make(map[string]*entity.Payment),
	}
}

func (s *store) repository() *repository.Repository {
	return &repository.Repository{
		Room:        &fakeRoomRepo{s},
		User:        &fakeUserRepo{s},
		Session:     &fakeSessionRepo{s},
		Reservation: &fakeReservationRepo{s},
		Payment:     &fakePaymentRepo{s},
	}
}

func (s *store) addRoom(price, tax float64) *entity.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	room := &entity.Room{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: time.Now()},
		RoomNumber: uuid.NewString()[:6],
		Type:       entity.RoomTypeDouble,
		Size:       30,
		BedSize:    entity.BedSizeQueen,
		View:       "sea",
		Price:      price,
		Tax:        tax,
		Status:     entity.RoomStatusAvailable,
		Thumbnail:  "/uploads/images/thumb.png",
		Pictures:   []string{"/uploads/images/a.png", "/uploads/images/b.png"},
		MaxGuests:  2,
	}
	s.rooms[room.ID] = room
	return room
}

// ---- rooms ----

type fakeRoomRepo struct{ s *store }

func (f *fakeRoomRepo) Create(_ context.Context, room *entity.Room) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, r := range f.s.rooms {
		if r.RoomNumber == room.RoomNumber {
			return apperror.AlreadyExists(apperror.TypeRoomExists, "Room already exists")
		}
	}
	cp := *room
	f.s.rooms[room.ID] = &cp
	return nil
}

func (f *fakeRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	r, ok := f.s.rooms[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	cp.Pictures = append([]string(nil), r.Pictures...)
	return &cp, nil
}

func (f *fakeRoomRepo) FindAll(_ context.Context, filter entity.RoomFilter) ([]*entity.Room, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := make([]*entity.Room, 0)
	for _, r := range f.s.rooms {
		if filter.Status != "" && string(r.Status) != filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRoomRepo) FindAvailable(_ context.Context, checkIn, checkOut time.Time) ([]*entity.Room, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := make([]*entity.Room, 0)
	for _, r := range f.s.rooms {
		busy := false
		for _, res := range f.s.reservations {
			if res.RoomID == r.ID && !res.CheckInDate.After(checkOut) && !res.CheckOutDate.Before(checkIn) {
				busy = true
				break
			}
		}
		if !busy {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

func (f *fakeRoomRepo) Update(_ context.Context, room *entity.Room) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.rooms[room.ID]; !ok {
		return apperror.NotFound(apperror.TypeRoomNotFound, "Room not found")
	}
	cp := *room
	f.s.rooms[room.ID] = &cp
	return nil
}

func (f *fakeRoomRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.RoomStatus) (*entity.Room, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	r, ok := f.s.rooms[id]
	if !ok {
		return nil, nil
	}
	r.Status = status
	cp := *r
	return &cp, nil
}

func (f *fakeRoomRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, res := range f.s.reservations {
		if res.RoomID == id {
			return false, apperror.Conflict(apperror.TypeRoomHasReservations, "Room has reservations and cannot be deleted")
		}
	}
	_, ok := f.s.rooms[id]
	delete(f.s.rooms, id)
	return ok, nil
}

func (f *fakeRoomRepo) Count(context.Context) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return int64(len(f.s.rooms)), nil
}

func (f *fakeRoomRepo) CountByStatus(_ context.Context, status entity.RoomStatus) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, r := range f.s.rooms {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}

// ---- users ----

type fakeUserRepo struct{ s *store }

func sameOptional(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if sameOptional(u.Email, user.Email) || sameOptional(u.Phone, user.Phone) || sameOptional(u.CNIC, user.CNIC) {
			return apperror.AlreadyExists(apperror.TypeUserExists, "User already exists")
		}
	}
	cp := *user
	f.s.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.Email != nil && *u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) list(filter entity.UserFilter) []*entity.User {
	out := make([]*entity.User, 0)
	for _, u := range f.s.users {
		if filter.ActiveOnly && !u.IsActive {
			continue
		}
		out = append(out, u)
	}
	return out
}

func (f *fakeUserRepo) FindAll(_ context.Context, filter entity.UserFilter, limit, offset int) ([]*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	all := f.list(filter)
	if offset >= len(all) {
		return []*entity.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeUserRepo) Count(_ context.Context, filter entity.UserFilter) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return int64(len(f.list(filter))), nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role entity.UserRole) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, u := range f.s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[user.ID]; !ok {
		return apperror.NotFound(apperror.TypeUserNotFound, "User not found")
	}
	cp := *user
	f.s.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, id uuid.UUID, active bool) (*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[id]
	if !ok {
		return nil, nil
	}
	u.IsActive = active
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	_, ok := f.s.users[id]
	delete(f.s.users, id)
	return ok, nil
}

// ---- sessions ----

type fakeSessionRepo struct{ s *store }

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *session
	f.s.sessions[session.Token] = &cp
	return nil
}

func (f *fakeSessionRepo) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	sess, ok := f.s.sessions[token]
	if !ok || sess.RevokedAt != nil || sess.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, token uuid.UUID) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	sess, ok := f.s.sessions[token]
	if !ok || sess.RevokedAt != nil {
		return false, nil
	}
	now := time.Now()
	sess.RevokedAt = &now
	return true, nil
}

func (f *fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	now := time.Now()
	for _, sess := range f.s.sessions {
		if sess.UserID == userID && sess.RevokedAt == nil {
			sess.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeSessionRepo) CleanExpiredSessions(context.Context) (int64, error) {
	return 0, nil
}

func (s *store) liveSessions(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sess := range s.sessions {
		if sess.UserID == userID && sess.RevokedAt == nil {
			n++
		}
	}
	return n
}

// ---- reservations & payments ----

type fakeReservationRepo struct{ s *store }

func (f *fakeReservationRepo) Create(_ context.Context, res *entity.Reservation) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *res
	f.s.reservations[res.ID] = &cp
	return nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	res, ok := f.s.reservations[id]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

func (f *fakeReservationRepo) CountByStatus(_ context.Context, status entity.ReservationStatus) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, res := range f.s.reservations {
		if res.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeReservationRepo) ConfirmWithPayment(_ context.Context, id uuid.UUID, payment *entity.Payment, event *entity.OutboxEvent) (*entity.Reservation, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	res, ok := f.s.reservations[id]
	if !ok {
		return nil, apperror.NotFound(apperror.TypeReservationNotFound, "Reservation not found")
	}
	switch res.Status {
	case entity.ReservationStatusPending:
	case entity.ReservationStatusConfirmed:
		return nil, apperror.Conflict(apperror.TypeAlreadyConfirmed, "Reservation already confirmed")
	default:
		return nil, apperror.Conflict(apperror.TypeReservationNotPending, "Reservation is not awaiting payment")
	}
	if _, dup := f.s.payments[payment.PaymentIntentID]; dup {
		return nil, apperror.Conflict(apperror.TypeAlreadyConfirmed, "Payment already recorded")
	}

	cp := *payment
	f.s.payments[payment.PaymentIntentID] = &cp
	res.Status = entity.ReservationStatusConfirmed
	res.PaymentID = &cp.ID
	f.s.outbox = append(f.s.outbox, event)

	out := *res
	return &out, nil
}

type fakePaymentRepo struct{ s *store }

func (f *fakePaymentRepo) FindByIntentID(_ context.Context, intentID string) (*entity.Payment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.payments[intentID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentRepo) SumByStatus(_ context.Context, status string) (float64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var total float64
	for _, p := range f.s.payments {
		if p.Status == status {
			total += p.Amount
		}
	}
	return total, nil
}

// ---- gateway ----

type fakeGateway struct {
	mu        sync.Mutex
	intents   map[string]*gateway.Intent
	created    []gateway.CreateIntentInput
	createErr  error
	retrievals int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{intents: make(map[string]*gateway.Intent)}
}

func (g *fakeGateway) CreateIntent(_ context.Context, in gateway.CreateIntentInput) (*gateway.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.created = append(g.created, in)
	intent := &gateway.Intent{
		ID:           "pi_" + uuid.NewString(),
		ClientSecret: "secret_" + uuid.NewString(),
		Status:       "requires_payment_method",
		Amount:       in.Amount,
		Currency:     in.Currency,
		Metadata:     in.Metadata,
	}
	g.intents[intent.ID] = intent
	return intent, nil
}

func (g *fakeGateway) RetrieveIntent(_ context.Context, id string) (*gateway.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.retrievals++
	intent, ok := g.intents[id]
	if !ok {
		return nil, errors.New("no such payment_intent")
	}
	cp := *intent
	return &cp, nil
}

func (g *fakeGateway) settle(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.intents[id].Status = gateway.StatusSucceeded
}

// ---- media ----

type fakeMedia struct {
	removed []string
}

func (m *fakeMedia) Remove(paths ...string) {
	m.removed = append(m.removed, paths...)
}

func testConfig() *utils.Config {
	return &utils.Config{
		JWT:    utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		Stripe: utils.StripeConfig{Currency: "usd"},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }
