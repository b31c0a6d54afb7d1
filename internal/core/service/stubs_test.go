package service

import (
	"context"
	"sync"

	"github.com/fintrack/finance-system/internal/core/domain"
	"github.com/fintrack/finance-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := []domain.User{}
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) CountVerified(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.EmailVerified {
			n++
		}
	}
	return n, nil
}

// stubTokenRepo mirrors the Mongo implementation's atomicity: Consume holds
// the lock across the find and the delete, so racing consumers see exactly
// one success.
type stubTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*domain.VerificationToken // by token value
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: make(map[string]*domain.VerificationToken)}
}

func (r *stubTokenRepo) Replace(_ context.Context, token *domain.VerificationToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for value, t := range r.tokens {
		if t.UserID == token.UserID && t.Kind == token.Kind {
			delete(r.tokens, value)
		}
	}
	clone := *token
	r.tokens[token.Token] = &clone
	return nil
}

func (r *stubTokenRepo) Consume(_ context.Context, token string, kind domain.TokenKind) (*domain.VerificationToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok || t.Kind != kind {
		return nil, domain.ErrTokenNotFound
	}
	delete(r.tokens, token)
	clone := *t
	return &clone, nil
}

func (r *stubTokenRepo) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for value, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, value)
		}
	}
	return nil
}

// byUser returns the stored token for (user, kind), or nil.
func (r *stubTokenRepo) byUser(userID string, kind domain.TokenKind) *domain.VerificationToken {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.UserID == userID && t.Kind == kind {
			clone := *t
			return &clone
		}
	}
	return nil
}

type stubCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*domain.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id, userID string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok || c.UserID != userID {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) FindByUser(_ context.Context, userID string) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	categories := []domain.Category{}
	for _, c := range r.categories {
		if c.UserID == userID {
			categories = append(categories, *c)
		}
	}
	return categories, nil
}

func (r *stubCategoryRepo) FindAll(_ context.Context) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	categories := []domain.Category{}
	for _, c := range r.categories {
		categories = append(categories, *c)
	}
	return categories, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok || c.UserID != userID {
		return domain.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.categories {
		if c.UserID == userID {
			delete(r.categories, id)
		}
	}
	return nil
}

func (r *stubCategoryRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.categories)), nil
}

type stubTransactionRepo struct {
	mu           sync.Mutex
	transactions map[string]*domain.Transaction
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{transactions: make(map[string]*domain.Transaction)}
}

func (r *stubTransactionRepo) Create(_ context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *tx
	r.transactions[tx.ID] = &clone
	return nil
}

func (r *stubTransactionRepo) FindByID(_ context.Context, id, userID string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok || (userID != "" && t.UserID != userID) {
		return nil, domain.ErrTransactionNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTransactionRepo) FindByUser(_ context.Context, userID string) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	transactions := []domain.Transaction{}
	for _, t := range r.transactions {
		if userID == "" || t.UserID == userID {
			transactions = append(transactions, *t)
		}
	}
	return transactions, nil
}

func (r *stubTransactionRepo) Update(_ context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[tx.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	clone := *tx
	r.transactions[tx.ID] = &clone
	return nil
}

func (r *stubTransactionRepo) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok || t.UserID != userID {
		return domain.ErrTransactionNotFound
	}
	delete(r.transactions, id)
	return nil
}

func (r *stubTransactionRepo) DeleteByCategory(_ context.Context, categoryID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, t := range r.transactions {
		if t.CategoryID == categoryID {
			delete(r.transactions, id)
			removed++
		}
	}
	return removed, nil
}

func (r *stubTransactionRepo) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.transactions {
		if t.UserID == userID {
			delete(r.transactions, id)
		}
	}
	return nil
}

func (r *stubTransactionRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.transactions)), nil
}

// stubNotifier records scheduled messages synchronously.
type stubNotifier struct {
	mu       sync.Mutex
	messages []ports.Message
}

func (n *stubNotifier) Send(msg ports.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *stubNotifier) sent() []ports.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]ports.Message, len(n.messages))
	copy(out, n.messages)
	return out
}

// nopCache satisfies StatsCache with no storage: every read is a miss.
type nopCache struct{}

func (nopCache) Get(context.Context, string) (*domain.Statistics, bool) { return nil, false }
func (nopCache) Set(context.Context, string, *domain.Statistics)        {}
func (nopCache) Invalidate(context.Context, string)                     {}
