package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"careercraft_backend/internal/genai"
	"careercraft_backend/internal/models"
	"careercraft_backend/internal/repositories"

	"gorm.io/gorm"
)

// fakeStore backs both repository fakes with one mutex so concurrent
// commits contend the way rows in one database would.
type fakeStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	txs      []models.CreditTransaction
	receipts map[string]*models.GenerationReceipt
	reports  []models.CommunicationReport
	nextID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*models.User),
		receipts: make(map[string]*models.GenerationReceipt),
	}
}

func (s *fakeStore) addUser(id string, plan models.PlanType, balance int) *models.User {
	user := &models.User{
		Email:         id + "@example.com",
		Role:          models.UserRoleUser,
		Status:        models.UserStatusActive,
		Plan:          plan,
		CreditBalance: balance,
	}
	user.ID = id
	s.users[id] = user
	return user
}

func (s *fakeStore) genID() string {
	s.nextID++
	return fmt.Sprintf("artifact-%d", s.nextID)
}

func (s *fakeStore) ledgerSum(userID string) int {
	sum := 0
	for _, tx := range s.txs {
		if tx.UserID == userID {
			sum += tx.Amount
		}
	}
	return sum
}

// --- user repository fake ---

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByReferralCode(code string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.ReferralCode == code {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = r.store.genID()
	}
	copied := *user
	r.store.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.store.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdatePlan(userID string, plan models.PlanType) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Plan = plan
	return nil
}

func (r *fakeUserRepo) Delete(userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.store.users, userID)
	return nil
}

func (r *fakeUserRepo) FindAll(limit, offset int) ([]models.User, error) { return nil, nil }
func (r *fakeUserRepo) CountAll() (int64, error)                         { return 0, nil }

func (r *fakeUserRepo) CreateRefreshToken(token *models.RefreshToken) error { return nil }
func (r *fakeUserRepo) FindRefreshToken(token string) (*models.RefreshToken, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeUserRepo) DeleteRefreshToken(token string) error       { return nil }
func (r *fakeUserRepo) DeleteUserRefreshTokens(userID string) error { return nil }
func (r *fakeUserRepo) CleanExpiredRefreshTokens() error            { return nil }

// --- credit repository fake ---

type fakeCreditRepo struct {
	store *fakeStore
}

func (r *fakeCreditRepo) GetBalance(userID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[userID]
	if !ok {
		return 0, repositories.ErrUserNotFound
	}
	return user.CreditBalance, nil
}

func (r *fakeCreditRepo) appendTx(tx models.CreditTransaction) *models.CreditTransaction {
	tx.ID = r.store.genID()
	tx.CreatedAt = time.Now()
	r.store.txs = append(r.store.txs, tx)
	return &r.store.txs[len(r.store.txs)-1]
}

func (r *fakeCreditRepo) Credit(userID string, amount int, txType models.CreditTransactionType, description, reference string) (*models.CreditTransaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if reference != "" {
		for _, tx := range r.store.txs {
			if tx.Reference == reference {
				return nil, repositories.ErrDuplicateReference
			}
		}
	}

	user, ok := r.store.users[userID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	user.CreditBalance += amount
	user.LifetimeEarned += amount

	return r.appendTx(models.CreditTransaction{
		UserID:       userID,
		Amount:       amount,
		Type:         txType,
		Description:  description,
		BalanceAfter: user.CreditBalance,
		Reference:    reference,
	}), nil
}

func (r *fakeCreditRepo) Adjust(userID string, amount int, description, reference string) (*models.CreditTransaction, error) {
	if amount >= 0 {
		return r.Credit(userID, amount, models.TxAdjustment, description, reference)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[userID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	if user.CreditBalance < -amount {
		return nil, repositories.ErrInsufficientBalance
	}
	user.CreditBalance += amount

	return r.appendTx(models.CreditTransaction{
		UserID:       userID,
		Amount:       amount,
		Type:         models.TxAdjustment,
		Description:  description,
		BalanceAfter: user.CreditBalance,
		Reference:    reference,
	}), nil
}

func (r *fakeCreditRepo) CommitGeneration(p repositories.CommitParams, persist func(tx *gorm.DB) (string, error)) (*repositories.CommitResult, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	artifactID, err := persist(nil)
	if err != nil {
		// Rollback: nothing below happened.
		return nil, err
	}

	user, ok := r.store.users[p.UserID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}

	amount := 0
	if !p.Unlimited && p.Cost > 0 {
		if user.CreditBalance < p.Cost {
			return nil, repositories.ErrInsufficientBalance
		}
		user.CreditBalance -= p.Cost
		user.LifetimeUsed += p.Cost
		amount = -p.Cost
	}

	row := r.appendTx(models.CreditTransaction{
		UserID:        p.UserID,
		Amount:        amount,
		Type:          models.TxUsage,
		Description:   p.Description,
		OperationKind: p.Kind,
		BalanceAfter:  user.CreditBalance,
	})

	if p.RequestKey != "" {
		receipt := &models.GenerationReceipt{
			UserID:         p.UserID,
			RequestKey:     p.RequestKey,
			OperationKind:  p.Kind,
			ArtifactID:     artifactID,
			CreditsCharged: -amount,
		}
		receipt.ID = r.store.genID()
		r.store.receipts[p.UserID+"|"+p.RequestKey] = receipt
	}

	return &repositories.CommitResult{
		ArtifactID:   artifactID,
		BalanceAfter: user.CreditBalance,
		Transaction:  row,
	}, nil
}

func (r *fakeCreditRepo) FindReceipt(userID, requestKey string) (*models.GenerationReceipt, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	receipt, ok := r.store.receipts[userID+"|"+requestKey]
	if !ok {
		return nil, repositories.ErrReceiptNotFound
	}
	copied := *receipt
	return &copied, nil
}

func (r *fakeCreditRepo) History(userID string, limit, offset int) ([]models.CreditTransaction, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var rows []models.CreditTransaction
	for i := len(r.store.txs) - 1; i >= 0; i-- {
		if r.store.txs[i].UserID == userID {
			rows = append(rows, r.store.txs[i])
		}
	}
	total := int64(len(rows))
	if offset > len(rows) {
		offset = len(rows)
	}
	rows = rows[offset:]
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, total, nil
}

func (r *fakeCreditRepo) AuditBalances(since time.Time) ([]repositories.AuditRow, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var rows []repositories.AuditRow
	for id, user := range r.store.users {
		sum := 0
		for _, tx := range r.store.txs {
			if tx.UserID == id {
				sum += tx.Amount
			}
		}
		rows = append(rows, repositories.AuditRow{UserID: id, Balance: user.CreditBalance, Sum: sum})
	}
	return rows, nil
}

// --- analysis repository fake ---

type fakeAnalysisRepo struct {
	store *fakeStore
}

func (r *fakeAnalysisRepo) CreateReportTx(tx *gorm.DB, report *models.CommunicationReport) error {
	// Caller already holds the store lock via CommitGeneration.
	report.ID = r.store.genID()
	r.store.reports = append(r.store.reports, *report)
	return nil
}

func (r *fakeAnalysisRepo) FindReportByID(id, userID string) (*models.CommunicationReport, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.reports {
		if r.store.reports[i].ID == id && r.store.reports[i].UserID == userID {
			copied := r.store.reports[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrReportNotFound
}

func (r *fakeAnalysisRepo) FindReportsByUser(userID string, limit, offset int) ([]models.CommunicationReport, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var rows []models.CommunicationReport
	for i := len(r.store.reports) - 1; i >= 0; i-- {
		if r.store.reports[i].UserID == userID {
			rows = append(rows, r.store.reports[i])
		}
	}
	total := int64(len(rows))
	if offset > len(rows) {
		offset = len(rows)
	}
	rows = rows[offset:]
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, total, nil
}

// --- generation client fake ---

type fakeGenClient struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
}

func (c *fakeGenClient) Generate(ctx context.Context, profile genai.ModelProfile, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func (c *fakeGenClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
