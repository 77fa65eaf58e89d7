package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- product repository fake ---

type fakeProductRepo struct {
	products  map[uuid.UUID]*entity.Product
	createErr error
	updateErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *fakeProductRepo) put(p *entity.Product) *entity.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	clone := *p
	r.products[p.ID] = &clone

	return p
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	clone := *p

	return &clone, nil
}

func (r *fakeProductRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (r *fakeProductRepo) Search(_ context.Context, query string) ([]*entity.Product, error) {
	needle := strings.ToLower(query)
	out := make([]*entity.Product, 0)
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			clone := *p
			out = append(out, &clone)
		}
	}

	return out, nil
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.put(product)

	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	clone := *product
	r.products[product.ID] = &clone

	return nil
}

func (r *fakeProductRepo) UpdateQuantity(_ context.Context, id uuid.UUID, quantity int) error {
	p, ok := r.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.Quantity = quantity

	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)

	return nil
}

// --- category repository fake ---

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	clone := *c

	return &clone, nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.categories))
	for _, c := range r.categories {
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	clone := *category
	r.categories[category.ID] = &clone

	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return repository.ErrCategoryNotFound
	}
	clone := *category
	r.categories[category.ID] = &clone

	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(r.categories, id)

	return nil
}

// --- user repository fake ---

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) put(u *entity.User) *entity.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	clone := *u
	r.users[u.ID] = &clone

	return u
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u

	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}

	return out, nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role entity.Role) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}

	return count, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domainerrors.ErrDuplicateEmail
		}
	}
	r.put(user)

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)

	return nil
}

// --- order repository fake ---

type fakeOrderRepo struct {
	orders    map[uuid.UUID]*entity.Order
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func cloneOrder(o *entity.Order) *entity.Order {
	clone := *o
	clone.Items = append([]entity.OrderItem(nil), o.Items...)

	return &clone
}

func (r *fakeOrderRepo) put(o *entity.Order) *entity.Order {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.orders[o.ID] = cloneOrder(o)

	return o
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	return cloneOrder(o), nil
}

func (r *fakeOrderRepo) FindByTrackingNumber(_ context.Context, trackingNumber string) (*entity.Order, error) {
	for _, o := range r.orders {
		if o.TrackingNumber == trackingNumber {
			return cloneOrder(o), nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) ListByEmail(_ context.Context, email string) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0)
	for _, o := range r.orders {
		if strings.EqualFold(o.CustomerEmail, email) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })

	return out, nil
}

func (r *fakeOrderRepo) List(_ context.Context) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })

	return out, nil
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.put(order)

	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *entity.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return repository.ErrOrderNotFound
	}
	r.orders[order.ID] = cloneOrder(order)

	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(r.orders, id)

	return nil
}

// --- session repository fake ---

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.Session
	saveErr  error
	saves    int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *fakeSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	s, ok := r.sessions[id]
	if !ok || s.Expired(time.Now()) {
		return nil, repository.ErrSessionNotFound
	}
	clone := *s

	return &clone, nil
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	clone := *session
	r.sessions[session.ID] = &clone

	return nil
}

func (r *fakeSessionRepo) Save(_ context.Context, session *entity.Session) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.sessions[session.ID]; !ok {
		return repository.ErrSessionNotFound
	}
	clone := *session
	r.sessions[session.ID] = &clone
	r.saves++

	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sessions, id)

	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	var purged int64
	now := time.Now()
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			purged++
		}
	}

	return purged, nil
}

// --- transaction manager fake ---

// fakeTxManager hands the callback a factory over the shared fakes, and rolls
// product and order state back when the callback errors, mirroring the
// all-or-nothing behavior of a real transaction.
type fakeTxManager struct {
	productRepo *fakeProductRepo
	userRepo    *fakeUserRepo
	orderRepo   *fakeOrderRepo
}

type fakeRepoFactory struct {
	tx *fakeTxManager
}

func (f *fakeRepoFactory) ProductRepo() repository.ProductRepository   { return f.tx.productRepo }
func (f *fakeRepoFactory) CategoryRepo() repository.CategoryRepository { return newFakeCategoryRepo() }
func (f *fakeRepoFactory) UserRepo() repository.UserRepository         { return f.tx.userRepo }
func (f *fakeRepoFactory) OrderRepo() repository.OrderRepository       { return f.tx.orderRepo }
func (f *fakeRepoFactory) SessionRepo() repository.SessionRepository   { return newFakeSessionRepo() }

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	productSnapshot := make(map[uuid.UUID]*entity.Product, len(m.productRepo.products))
	for id, p := range m.productRepo.products {
		clone := *p
		productSnapshot[id] = &clone
	}
	orderSnapshot := make(map[uuid.UUID]*entity.Order, len(m.orderRepo.orders))
	for id, o := range m.orderRepo.orders {
		orderSnapshot[id] = cloneOrder(o)
	}
	userSnapshot := make(map[uuid.UUID]*entity.User, len(m.userRepo.users))
	for id, u := range m.userRepo.users {
		clone := *u
		userSnapshot[id] = &clone
	}

	if err := fn(&fakeRepoFactory{tx: m}); err != nil {
		m.productRepo.products = productSnapshot
		m.orderRepo.orders = orderSnapshot
		m.userRepo.users = userSnapshot

		return err
	}

	return nil
}

// --- service fakes ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Check(password, hash string) bool     { return hash == "hashed:"+password }

type fakeTokenService struct {
	ttl time.Duration
}

func (s fakeTokenService) IssueSessionToken(sessionID uuid.UUID) (string, error) {
	return "tok-" + sessionID.String(), nil
}

func (s fakeTokenService) ParseSessionToken(token string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimPrefix(token, "tok-"))
}

func (s fakeTokenService) SessionTTL() time.Duration {
	if s.ttl == 0 {
		return time.Hour
	}

	return s.ttl
}

type fakeImageStore struct {
	saved   int
	deleted []string
	saveErr error
}

func (s *fakeImageStore) Save(_ context.Context, originalFilename string, contents io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	_, _ = io.Copy(io.Discard, contents)
	s.saved++

	return fmt.Sprintf("/images/img-%d-%s", s.saved, originalFilename), nil
}

func (s *fakeImageStore) Delete(_ context.Context, path string) error {
	s.deleted = append(s.deleted, path)

	return nil
}

type fakePublisher struct {
	events []*service.OrderEvent
	err    error
}

func (p *fakePublisher) PublishOrderEvent(_ context.Context, event *service.OrderEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)

	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeQRCodeService struct{}

func (fakeQRCodeService) GenerateTrackingQR(trackingNumber string) ([]byte, error) {
	return []byte("png:" + trackingNumber), nil
}
