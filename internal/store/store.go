package store

import (
	"context" // Context for query cancellation
	"errors"  // Sentinel error handling
	"strings" // Driver error message matching
	"time"    // Month range computation

	"finance_tracker/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// Sentinel errors returned by store operations
var (
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrNotFound        = errors.New("record not found")
	ErrInvalidCategory = errors.New("category does not exist for this user")
)

// Store is the typed persistence layer over the relational database.
// It is constructed once and passed down to handlers; every operation
// filters by the owning user's ID.
type Store struct {
	db *gorm.DB // GORM database handle (connection pool)
}

// New creates a Store around an open GORM handle
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateUser inserts a new user, failing with ErrDuplicateEmail if the email is taken
func (s *Store) CreateUser(ctx context.Context, email, name, passwordHash string) (*domain.User, error) {
	user := domain.User{
		Email:    email,        // Unique email address
		Name:     name,         // Display name
		Password: passwordHash, // Already-hashed password
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// Detect unique constraint violation across drivers
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateErr(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail returns the user with the given email, or ErrNotFound
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateDefaultCategories inserts the four starter categories for a new user
func (s *Store) CreateDefaultCategories(ctx context.Context, userID uint) error {
	categories := make([]domain.Category, len(domain.DefaultCategories))
	for i, c := range domain.DefaultCategories {
		categories[i] = domain.Category{
			UserID: userID, // Owning user
			Name:   c.Name,
			Color:  c.Color,
		}
	}
	return s.db.WithContext(ctx).Create(&categories).Error
}

// ListCategories returns the user's categories ordered by name
func (s *Store) ListCategories(ctx context.Context, userID uint) ([]domain.Category, error) {
	categories := []domain.Category{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

// ListTransactions returns all of the user's transactions with their
// category names, newest date first
func (s *Store) ListTransactions(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	err := s.db.WithContext(ctx).Model(&domain.Transaction{}).
		Select("transactions.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ?", userID).
		Order("transactions.date DESC, transactions.id DESC").
		Find(&transactions).Error
	return transactions, err
}

// ListTransactionsForPeriod returns the user's transactions within the
// given calendar month, with category names
func (s *Store) ListTransactionsForPeriod(ctx context.Context, userID uint, month, year int) ([]domain.Transaction, error) {
	start, end := monthRange(month, year)
	transactions := []domain.Transaction{}
	err := s.db.WithContext(ctx).Model(&domain.Transaction{}).
		Select("transactions.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.date >= ? AND transactions.date < ?", userID, start, end).
		Order("transactions.date DESC, transactions.id DESC").
		Find(&transactions).Error
	return transactions, err
}

// CreateTransaction inserts a transaction for the user. A category
// reference must point at one of the user's own categories.
func (s *Store) CreateTransaction(ctx context.Context, userID uint, t *domain.Transaction) (*domain.Transaction, error) {
	t.UserID = userID // Ownership is set here, never taken from the request body
	if t.CategoryID != nil {
		category, err := s.userCategory(ctx, userID, *t.CategoryID)
		if err != nil {
			return nil, err
		}
		t.CategoryName = &category.Name // Joined name for the response
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTransaction replaces the mutable fields of the user's transaction.
// Ownership is enforced in the query itself: a row owned by another user
// behaves exactly like a missing row (ErrNotFound).
func (s *Store) UpdateTransaction(ctx context.Context, id, userID uint, upd *domain.Transaction) (*domain.Transaction, error) {
	var existing domain.Transaction
	// Fetch scoped to the owner so foreign rows are indistinguishable from absent ones
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var categoryName *string
	if upd.CategoryID != nil {
		category, err := s.userCategory(ctx, userID, *upd.CategoryID)
		if err != nil {
			return nil, err
		}
		categoryName = &category.Name
	}
	// Map update so a nil category ID clears the column
	updates := map[string]any{
		"amount":      upd.Amount,
		"category_id": upd.CategoryID,
		"description": upd.Description,
		"type":        upd.Type,
		"date":        upd.Date,
	}
	err := s.db.WithContext(ctx).Model(&domain.Transaction{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates).Error
	if err != nil {
		return nil, err
	}
	existing.Amount = upd.Amount
	existing.CategoryID = upd.CategoryID
	existing.Description = upd.Description
	existing.Type = upd.Type
	existing.Date = upd.Date
	existing.CategoryName = categoryName
	return &existing, nil
}

// DeleteTransaction removes the user's transaction. Deleting an absent or
// foreign row, or the same row twice, yields ErrNotFound.
func (s *Store) DeleteTransaction(ctx context.Context, id, userID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Transaction{})
	if res.Error != nil {
		return res.Error
	}
	// Ownership failures are detected by the affected-row count
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MonthlySummary sums the user's amounts grouped by transaction type for
// the given calendar month. An empty month returns an empty slice.
func (s *Store) MonthlySummary(ctx context.Context, userID uint, month, year int) ([]domain.TypeSummary, error) {
	start, end := monthRange(month, year)
	rows := []domain.TypeSummary{}
	err := s.db.WithContext(ctx).Model(&domain.Transaction{}).
		Select("type, SUM(amount) AS total, COUNT(*) AS count").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Group("type").
		Order("type ASC").
		Scan(&rows).Error
	return rows, err
}

// CategorySummary sums the user's expenses grouped by category for the
// given calendar month, largest total first. Transactions without a
// category are reported as "Uncategorized".
func (s *Store) CategorySummary(ctx context.Context, userID uint, month, year int) ([]domain.CategorySummary, error) {
	start, end := monthRange(month, year)
	rows := []domain.CategorySummary{}
	err := s.db.WithContext(ctx).Model(&domain.Transaction{}).
		Select("COALESCE(categories.name, 'Uncategorized') AS category, SUM(transactions.amount) AS total, COUNT(*) AS count").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.type = ? AND transactions.date >= ? AND transactions.date < ?",
			userID, domain.TypeExpense, start, end).
		Group("categories.id, categories.name").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

// userCategory fetches one of the user's categories, mapping absence
// (including another user's category) to ErrInvalidCategory
func (s *Store) userCategory(ctx context.Context, userID, categoryID uint) (*domain.Category, error) {
	var category domain.Category
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", categoryID, userID).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCategory
		}
		return nil, err
	}
	return &category, nil
}

// monthRange returns the [first day, first day of next month) bounds as
// YYYY-MM-DD strings, which compare correctly against DATE columns on
// both MySQL and SQLite
func monthRange(month, year int) (string, string) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return start.Format(domain.DateLayout), end.Format(domain.DateLayout)
}

// isDuplicateErr matches unique violation messages from the MySQL and
// SQLite drivers for setups without GORM error translation
func isDuplicateErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
